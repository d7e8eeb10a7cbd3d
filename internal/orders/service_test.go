package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/barcodegenpro/barcodegen-backend/internal/catalog"
	"github.com/barcodegenpro/barcodegen-backend/internal/pricing"
	"github.com/barcodegenpro/barcodegen-backend/pkg/db/models"
	"github.com/barcodegenpro/barcodegen-backend/pkg/enums"
	pkgerrors "github.com/barcodegenpro/barcodegen-backend/pkg/errors"
	"github.com/barcodegenpro/barcodegen-backend/pkg/types"
)

func newTestOrdersService(t *testing.T, repo Repository) Service {
	t.Helper()
	pricingService, err := pricing.NewService(pricing.ServiceParams{
		Catalog:   catalog.NewService("INR"),
		Evaluator: pricing.NewEvaluator("gujarat", decimal.NewFromFloat(0.18)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc, err := NewService(ServiceParams{Repo: repo, Pricing: pricingService})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func validInput() CreateInput {
	return CreateInput{
		BarcodeType: "qr_code",
		Quantity:    10,
		CustomerDetails: types.CustomerDetails{
			Name:  "Asha",
			Email: "asha@example.com",
			State: "Gujarat",
		},
	}
}

func TestCreateRequiresContact(t *testing.T) {
	t.Parallel()

	svc := newTestOrdersService(t, &stubRepo{})
	input := validInput()
	input.CustomerDetails.Email = "   "

	_, err := svc.Create(context.Background(), input)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsOversizedQuantity(t *testing.T) {
	t.Parallel()

	svc := newTestOrdersService(t, &stubRepo{})
	input := validInput()
	input.Quantity = MaxQuantity + 1

	_, err := svc.Create(context.Background(), input)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateSnapshotsPricing(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	svc := newTestOrdersService(t, repo)

	result, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order := result.Order
	if order.ID == uuid.Nil {
		t.Fatal("expected order id assigned")
	}
	if !order.TotalAmount.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("unexpected base %s", order.TotalAmount)
	}
	if !order.TaxAmount.Equal(decimal.NewFromInt(270)) {
		t.Fatalf("unexpected tax %s", order.TaxAmount)
	}
	if !order.FinalAmount.Equal(decimal.NewFromInt(1770)) {
		t.Fatalf("unexpected final %s", order.FinalAmount)
	}
	if order.TaxRegime != enums.TaxRegimeCGSTSGST {
		t.Fatalf("unexpected regime %s", order.TaxRegime)
	}
	if order.OrderStatus != enums.OrderStatusPending || order.PaymentStatus != enums.PaymentStatusPending {
		t.Fatalf("unexpected statuses %s/%s", order.OrderStatus, order.PaymentStatus)
	}
	if repo.created == nil || repo.created.ID != order.ID {
		t.Fatal("expected order persisted")
	}
}

func TestCreateEachCallMakesNewOrder(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	svc := newTestOrdersService(t, repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Order.ID == second.Order.ID {
		t.Fatal("expected distinct order ids")
	}
}

func TestGetNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestOrdersService(t, &stubRepo{findErr: gorm.ErrRecordNotFound})
	_, err := svc.Get(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListDefaultsLimit(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	svc := newTestOrdersService(t, repo)
	if _, err := svc.List(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.listLimit != DefaultListLimit {
		t.Fatalf("expected default limit, got %d", repo.listLimit)
	}
}

func TestSetStatusRejectsUnknown(t *testing.T) {
	t.Parallel()

	svc := newTestOrdersService(t, &stubRepo{})
	err := svc.SetStatus(context.Background(), uuid.New(), enums.OrderStatus("shipped"))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

type stubRepo struct {
	created   *models.BarcodeOrder
	findErr   error
	listLimit int
	statuses  []enums.OrderStatus
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, order *models.BarcodeOrder) error {
	s.created = order
	return nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.BarcodeOrder, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.created != nil && s.created.ID == id {
		return s.created, nil
	}
	return &models.BarcodeOrder{ID: id}, nil
}

func (s *stubRepo) List(ctx context.Context, limit int) ([]models.BarcodeOrder, error) {
	s.listLimit = limit
	return []models.BarcodeOrder{}, nil
}

func (s *stubRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	s.statuses = append(s.statuses, status)
	return nil
}
