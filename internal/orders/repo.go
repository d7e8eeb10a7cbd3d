package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/barcodegenpro/barcodegen-backend/pkg/db/models"
	"github.com/barcodegenpro/barcodegen-backend/pkg/enums"
)

// Repository persists barcode orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.BarcodeOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.BarcodeOrder, error)
	List(ctx context.Context, limit int) ([]models.BarcodeOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a gorm-backed orders repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.BarcodeOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.BarcodeOrder, error) {
	var order models.BarcodeOrder
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, limit int) ([]models.BarcodeOrder, error) {
	var out []models.BarcodeOrder
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.BarcodeOrder{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"order_status": status,
			"updated_at":   time.Now().UTC(),
		}).Error
}
