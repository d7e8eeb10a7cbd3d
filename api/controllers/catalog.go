package controllers

import (
	"net/http"

	"github.com/barcodegenpro/barcodegen-backend/api/responses"
	"github.com/barcodegenpro/barcodegen-backend/internal/catalog"
	"github.com/barcodegenpro/barcodegen-backend/pkg/logger"
)

// BarcodeTypes lists the sellable standards keyed by their catalog key.
func BarcodeTypes(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standards := svc.List()

		keyed := make(map[string]catalog.Standard, len(standards))
		for _, standard := range standards {
			keyed[standard.Key] = standard
		}

		responses.WriteSuccess(w, map[string]any{
			"barcode_types": keyed,
			"currency":      svc.Currency(),
		})
	}
}
