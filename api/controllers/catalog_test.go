package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/barcodegenpro/barcodegen-backend/internal/catalog"
)

func TestBarcodeTypesListsCatalog(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/barcode-types", nil)
	rec := httptest.NewRecorder()

	BarcodeTypes(catalog.NewService("INR"), nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var envelope struct {
		Data struct {
			BarcodeTypes map[string]struct {
				Name  string `json:"name"`
				Price string `json:"price"`
			} `json:"barcode_types"`
			Currency string `json:"currency"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if envelope.Data.Currency != "INR" {
		t.Fatalf("unexpected currency %q", envelope.Data.Currency)
	}
	entry, ok := envelope.Data.BarcodeTypes["qr_code"]
	if !ok {
		t.Fatalf("missing qr_code: %s", rec.Body.String())
	}
	if entry.Name != "QR Code" || entry.Price != "150" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}
