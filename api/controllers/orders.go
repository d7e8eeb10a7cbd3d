package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/barcodegenpro/barcodegen-backend/api/responses"
	"github.com/barcodegenpro/barcodegen-backend/api/validators"
	"github.com/barcodegenpro/barcodegen-backend/internal/generation"
	internalorders "github.com/barcodegenpro/barcodegen-backend/internal/orders"
	pkgerrors "github.com/barcodegenpro/barcodegen-backend/pkg/errors"
	"github.com/barcodegenpro/barcodegen-backend/pkg/logger"
	"github.com/barcodegenpro/barcodegen-backend/pkg/types"
)

const maxListLimit = 200

type createOrderRequest struct {
	BarcodeType     string                `json:"barcode_type" validate:"required"`
	Quantity        int                   `json:"quantity" validate:"required,min=1,max=10000"`
	CustomerDetails types.CustomerDetails `json:"customer_details"`
}

// CreateOrder commits a priced draft into a persisted order.
func CreateOrder(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Create(r.Context(), internalorders.CreateInput{
			BarcodeType:     req.BarcodeType,
			Quantity:        req.Quantity,
			CustomerDetails: req.CustomerDetails,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// OrderDetail returns one order by id.
func OrderDetail(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// OrdersList returns the newest orders up to an optional limit.
func OrdersList(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", internalorders.DefaultListLimit, 1, maxListLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"orders": list,
			"count":  len(list),
		})
	}
}

// ProcessOrder generates the deliverable package and streams it back as a
// zip download.
func ProcessOrder(svc generation.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload, err := svc.Generate(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filename := generation.PackageFilename(orderID)
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		if _, err := w.Write(payload); err != nil && logg != nil {
			logg.Error(r.Context(), "stream package failed", err)
		}
	}
}

func parseOrderID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "orderId"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	orderID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id")
	}
	return orderID, nil
}
