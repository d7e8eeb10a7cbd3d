package orderapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/barcodegenpro/barcodegen-backend/pkg/errors"
	"github.com/barcodegenpro/barcodegen-backend/pkg/types"
)

func TestListStandards(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/barcode-types" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"barcode_types":{"qr_code":{"key":"qr_code","name":"QR Code","price":"150"}},"currency":"INR"}}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	standards, err := client.ListStandards(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	standard, ok := standards["qr_code"]
	if !ok {
		t.Fatalf("missing qr_code: %+v", standards)
	}
	if standard.Name != "QR Code" || standard.UnitPrice.String() != "150" {
		t.Fatalf("unexpected standard: %+v", standard)
	}
}

func TestQuotePriceSendsTriple(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		query := r.URL.Query()
		if query.Get("barcode_type") != "ean13" || query.Get("quantity") != "25" || query.Get("state") != "Gujarat" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"barcode_type":"ean13","quantity":25,"unit_price":"140","pricing":{"base_amount":"3500","tax_regime":"CGST_SGST","tax_amount":"630","total_amount":"4130"},"currency":"INR"}}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	quote, err := client.QuotePrice(context.Background(), "ean13", 25, "Gujarat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.TotalAmount.String() != "4130" || string(quote.TaxRegime) != "CGST_SGST" {
		t.Fatalf("unexpected quote: %+v", quote)
	}
}

func TestCreateOrderMapsAPIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"VALIDATION_ERROR","message":"validation failed"}}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = client.CreateOrder(context.Background(), "qr_code", 5, types.CustomerDetails{Name: "Asha", Email: "asha@example.com"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGeneratePackageReturnsPayload(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/process-order/order-1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write([]byte("zip-bytes"))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload, err := client.GeneratePackage(context.Background(), "order-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != "zip-bytes" {
		t.Fatalf("unexpected payload %q", payload)
	}
}
