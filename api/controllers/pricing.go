package controllers

import (
	"net/http"
	"strings"

	"github.com/barcodegenpro/barcodegen-backend/api/responses"
	"github.com/barcodegenpro/barcodegen-backend/api/validators"
	"github.com/barcodegenpro/barcodegen-backend/internal/orders"
	"github.com/barcodegenpro/barcodegen-backend/internal/pricing"
	pkgerrors "github.com/barcodegenpro/barcodegen-backend/pkg/errors"
	"github.com/barcodegenpro/barcodegen-backend/pkg/logger"
)

// CalculatePrice quotes a (barcode_type, quantity, state) triple. The state is
// optional; an absent or unrecognized state prices under the interstate regime.
func CalculatePrice(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		barcodeType := strings.TrimSpace(r.URL.Query().Get("barcode_type"))
		if barcodeType == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "barcode_type is required"))
			return
		}

		quantity, err := validators.ParseQueryInt(r, "quantity", 1, 1, orders.MaxQuantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state := r.URL.Query().Get("state")

		quote, err := svc.Quote(r.Context(), barcodeType, quantity, state)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}
