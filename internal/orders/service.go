package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/barcodegenpro/barcodegen-backend/internal/pricing"
	"github.com/barcodegenpro/barcodegen-backend/pkg/db/models"
	"github.com/barcodegenpro/barcodegen-backend/pkg/enums"
	pkgerrors "github.com/barcodegenpro/barcodegen-backend/pkg/errors"
	"github.com/barcodegenpro/barcodegen-backend/pkg/metrics"
	"github.com/barcodegenpro/barcodegen-backend/pkg/types"
)

const (
	// MaxQuantity bounds a single order; mirrors the client-side clamp.
	MaxQuantity = 10000

	// DefaultListLimit applies when the caller does not pass one.
	DefaultListLimit = 50
)

// CreateInput is the draft submitted at commit time.
type CreateInput struct {
	BarcodeType     string
	Quantity        int
	CustomerDetails types.CustomerDetails
}

// CreateResult returns the persisted order plus the tax breakdown used to
// price it. The amounts on the order are authoritative from this point on.
type CreateResult struct {
	Order      *models.BarcodeOrder `json:"order"`
	TaxDetails pricing.TaxBreakdown `json:"tax_details"`
	Currency   string               `json:"currency"`
}

// Service owns order creation and lookups.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*CreateResult, error)
	Get(ctx context.Context, id uuid.UUID) (*models.BarcodeOrder, error)
	List(ctx context.Context, limit int) ([]models.BarcodeOrder, error)
	SetStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
}

type service struct {
	repo    Repository
	pricing pricing.Service
	metrics *metrics.OrderMetrics
}

// ServiceParams collects the order service dependencies. Metrics are optional.
type ServiceParams struct {
	Repo    Repository
	Pricing pricing.Service
	Metrics *metrics.OrderMetrics
}

// NewService builds the orders service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Pricing == nil {
		return nil, fmt.Errorf("pricing service required")
	}
	return &service{
		repo:    params.Repo,
		pricing: params.Pricing,
		metrics: params.Metrics,
	}, nil
}

// Create prices the draft server-side and persists the order snapshot. Each
// call creates a new order; re-submitting a draft after back-navigation
// intentionally produces a fresh order rather than voiding the prior one.
func (s *service) Create(ctx context.Context, input CreateInput) (*CreateResult, error) {
	if !input.CustomerDetails.HasMinimumContact() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name and email are required")
	}
	if input.Quantity > MaxQuantity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("quantity must be at most %d", MaxQuantity))
	}

	quote, err := s.pricing.Quote(ctx, input.BarcodeType, input.Quantity, input.CustomerDetails.State)
	if err != nil {
		s.countOrder("failure")
		return nil, err
	}

	order := &models.BarcodeOrder{
		ID:              uuid.New(),
		CustomerDetails: input.CustomerDetails,
		BarcodeType:     quote.BarcodeType,
		Quantity:        input.Quantity,
		TotalAmount:     quote.Pricing.BaseAmount,
		TaxAmount:       quote.Pricing.TaxAmount,
		FinalAmount:     quote.Pricing.TotalAmount,
		TaxRegime:       quote.Pricing.TaxRegime,
		OrderStatus:     enums.OrderStatusPending,
		PaymentStatus:   enums.PaymentStatusPending,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		s.countOrder("failure")
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}

	s.countOrder("success")
	return &CreateResult{
		Order:      order,
		TaxDetails: quote.Pricing,
		Currency:   quote.Currency,
	}, nil
}

// Get loads one order by id.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.BarcodeOrder, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

// List returns the newest orders up to limit.
func (s *service) List(ctx context.Context, limit int) ([]models.BarcodeOrder, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	out, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return out, nil
}

// SetStatus transitions the order lifecycle status.
func (s *service) SetStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("unknown order status %q", status))
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	return nil
}

func (s *service) countOrder(result string) {
	if s.metrics != nil {
		s.metrics.IncOrder(result)
	}
}
