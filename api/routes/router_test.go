package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/barcodegenpro/barcodegen-backend/internal/catalog"
	"github.com/barcodegenpro/barcodegen-backend/internal/generation"
	"github.com/barcodegenpro/barcodegen-backend/internal/orders"
	"github.com/barcodegenpro/barcodegen-backend/internal/pricing"
	"github.com/barcodegenpro/barcodegen-backend/pkg/config"
	"github.com/barcodegenpro/barcodegen-backend/pkg/db/models"
	"github.com/barcodegenpro/barcodegen-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

func TestRouterServesPublicEndpoints(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	cases := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/health/live", http.StatusOK},
		{http.MethodGet, "/health/ready", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/api/barcode-types", http.StatusOK},
		{http.MethodPost, "/api/calculate-price?barcode_type=qr_code&quantity=3", http.StatusOK},
		{http.MethodGet, "/api/orders", http.StatusOK},
		{http.MethodGet, "/api/order/not-a-uuid", http.StatusBadRequest},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != tc.status {
			t.Fatalf("%s %s: expected %d, got %d: %s", tc.method, tc.path, tc.status, rec.Code, rec.Body.String())
		}
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Env = "test"

	catalogService := catalog.NewService("INR")
	evaluator := pricing.NewEvaluator("gujarat", decimal.NewFromFloat(0.18))

	pricingService, err := pricing.NewService(pricing.ServiceParams{
		Catalog:   catalogService,
		Evaluator: evaluator,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ordersService, err := orders.NewService(orders.ServiceParams{
		Repo:    &stubOrdersRepo{},
		Pricing: pricingService,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	generationService, err := generation.NewService(generation.ServiceParams{
		Orders:    ordersService,
		Catalog:   catalogService,
		Evaluator: evaluator,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return NewRouter(cfg, nil, nil, nil, catalogService, pricingService, ordersService, generationService)
}

type stubOrdersRepo struct{}

func (s *stubOrdersRepo) WithTx(tx *gorm.DB) orders.Repository { return s }
func (s *stubOrdersRepo) Create(ctx context.Context, order *models.BarcodeOrder) error {
	return nil
}
func (s *stubOrdersRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.BarcodeOrder, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubOrdersRepo) List(ctx context.Context, limit int) ([]models.BarcodeOrder, error) {
	return []models.BarcodeOrder{}, nil
}
func (s *stubOrdersRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	return nil
}

var _ orders.Repository = (*stubOrdersRepo)(nil)
