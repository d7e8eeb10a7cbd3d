package generation

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/barcodegenpro/barcodegen-backend/internal/catalog"
	internalorders "github.com/barcodegenpro/barcodegen-backend/internal/orders"
	"github.com/barcodegenpro/barcodegen-backend/internal/pricing"
	"github.com/barcodegenpro/barcodegen-backend/pkg/db/models"
	"github.com/barcodegenpro/barcodegen-backend/pkg/enums"
	"github.com/barcodegenpro/barcodegen-backend/pkg/types"
)

func newTestGenerationService(t *testing.T, orders internalorders.Service) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Orders:    orders,
		Catalog:   catalog.NewService("INR"),
		Evaluator: pricing.NewEvaluator("gujarat", decimal.NewFromFloat(0.18)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func testOrder(barcodeType string, quantity int) *models.BarcodeOrder {
	return &models.BarcodeOrder{
		ID: uuid.New(),
		CustomerDetails: types.CustomerDetails{
			Name:  "Asha",
			Email: "asha@example.com",
			State: "Gujarat",
		},
		BarcodeType: barcodeType,
		Quantity:    quantity,
		TotalAmount: decimal.NewFromInt(450),
		TaxAmount:   decimal.NewFromInt(81),
		FinalAmount: decimal.NewFromInt(531),
		TaxRegime:   enums.TaxRegimeCGSTSGST,
		OrderStatus: enums.OrderStatusPending,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestGenerateBuildsPackage(t *testing.T) {
	t.Parallel()

	order := testOrder("qr_code", 3)
	orders := &stubOrderStore{order: order}
	svc := newTestGenerationService(t, orders)

	payload, err := svc.Generate(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reader, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var pngs int
	var sawWorkbook, sawInvoice bool
	var invoiceRaw []byte
	for _, file := range reader.File {
		switch {
		case file.Name == "barcode_data.xlsx":
			sawWorkbook = true
		case file.Name == "invoice.json":
			sawInvoice = true
			rc, err := file.Open()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			invoiceRaw, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		case strings.HasPrefix(file.Name, "barcodes/") && strings.HasSuffix(file.Name, ".png"):
			pngs++
		default:
			t.Fatalf("unexpected entry %q", file.Name)
		}
	}
	if !sawWorkbook || !sawInvoice {
		t.Fatalf("missing core entries: workbook=%v invoice=%v", sawWorkbook, sawInvoice)
	}
	if pngs != 3 {
		t.Fatalf("expected 3 images, got %d", pngs)
	}

	var invoice Invoice
	if err := json.Unmarshal(invoiceRaw, &invoice); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if invoice.OrderID != order.ID.String() {
		t.Fatalf("unexpected invoice order id %q", invoice.OrderID)
	}
	if !invoice.Total.Equal(order.FinalAmount) {
		t.Fatalf("invoice total %s != order final %s", invoice.Total, order.FinalAmount)
	}
	if len(invoice.Items) != 1 || invoice.Items[0].Quantity != 3 {
		t.Fatalf("unexpected invoice items %+v", invoice.Items)
	}

	if got := orders.statuses; len(got) != 2 ||
		got[0] != enums.OrderStatusProcessing || got[1] != enums.OrderStatusCompleted {
		t.Fatalf("unexpected status transitions %v", got)
	}
}

func TestGenerateFailureMarksOrderFailed(t *testing.T) {
	t.Parallel()

	order := testOrder("pdf417", 2) // not in the catalog
	orders := &stubOrderStore{order: order}
	svc := newTestGenerationService(t, orders)

	if _, err := svc.Generate(context.Background(), order.ID); err == nil {
		t.Fatal("expected generation failure")
	}

	if got := orders.statuses; len(got) != 2 ||
		got[0] != enums.OrderStatusProcessing || got[1] != enums.OrderStatusFailed {
		t.Fatalf("unexpected status transitions %v", got)
	}
}

func TestGenerateUnknownOrder(t *testing.T) {
	t.Parallel()

	svc := newTestGenerationService(t, &stubOrderStore{getErr: context.DeadlineExceeded})
	if _, err := svc.Generate(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error")
	}
}

type stubOrderStore struct {
	order    *models.BarcodeOrder
	getErr   error
	statuses []enums.OrderStatus
}

func (s *stubOrderStore) Create(ctx context.Context, input internalorders.CreateInput) (*internalorders.CreateResult, error) {
	return nil, nil
}

func (s *stubOrderStore) Get(ctx context.Context, id uuid.UUID) (*models.BarcodeOrder, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.order, nil
}

func (s *stubOrderStore) List(ctx context.Context, limit int) ([]models.BarcodeOrder, error) {
	return nil, nil
}

func (s *stubOrderStore) SetStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	s.statuses = append(s.statuses, status)
	return nil
}

var _ internalorders.Service = (*stubOrderStore)(nil)
