package generation

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/barcodegenpro/barcodegen-backend/internal/catalog"
	"github.com/barcodegenpro/barcodegen-backend/internal/orders"
	"github.com/barcodegenpro/barcodegen-backend/internal/pricing"
	"github.com/barcodegenpro/barcodegen-backend/pkg/db/models"
	"github.com/barcodegenpro/barcodegen-backend/pkg/enums"
	pkgerrors "github.com/barcodegenpro/barcodegen-backend/pkg/errors"
	"github.com/barcodegenpro/barcodegen-backend/pkg/logger"
	"github.com/barcodegenpro/barcodegen-backend/pkg/metrics"
)

const (
	workbookEntry = "barcode_data.xlsx"
	invoiceEntry  = "invoice.json"
	imageDir      = "barcodes"
)

// PackageFilename is the deterministic download name for an order's package.
func PackageFilename(orderID uuid.UUID) string {
	return fmt.Sprintf("barcodes_%s.zip", orderID)
}

// Service produces the downloadable deliverable package for a committed order.
type Service interface {
	Generate(ctx context.Context, orderID uuid.UUID) ([]byte, error)
}

type service struct {
	orders    orders.Service
	catalog   catalog.Service
	evaluator *pricing.Evaluator
	sheet     string
	metrics   *metrics.OrderMetrics
	logg      *logger.Logger
}

// ServiceParams collects the generation dependencies. Metrics and logger are
// optional.
type ServiceParams struct {
	Orders    orders.Service
	Catalog   catalog.Service
	Evaluator *pricing.Evaluator
	Sheet     string
	Metrics   *metrics.OrderMetrics
	Logger    *logger.Logger
}

// NewService builds the generation service.
func NewService(params ServiceParams) (Service, error) {
	if params.Orders == nil {
		return nil, fmt.Errorf("orders service required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if params.Evaluator == nil {
		return nil, fmt.Errorf("evaluator required")
	}
	return &service{
		orders:    params.Orders,
		catalog:   params.Catalog,
		evaluator: params.Evaluator,
		sheet:     params.Sheet,
		metrics:   params.Metrics,
		logg:      params.Logger,
	}, nil
}

// Generate walks the order through processing -> completed (failed on error)
// and returns the zip payload: workbook, one PNG per unit, and the invoice.
func (s *service) Generate(ctx context.Context, orderID uuid.UUID) ([]byte, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.orders.SetStatus(ctx, order.ID, enums.OrderStatusProcessing); err != nil {
		return nil, err
	}

	started := time.Now()
	payload, err := s.buildArchive(ctx, order)
	if err != nil {
		s.countPackage("failure")
		// Best effort; the original failure still surfaces to the caller.
		err = multierr.Append(err, s.orders.SetStatus(ctx, order.ID, enums.OrderStatusFailed))
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate package")
	}

	if err := s.orders.SetStatus(ctx, order.ID, enums.OrderStatusCompleted); err != nil {
		s.countPackage("failure")
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ObserveGeneration(order.BarcodeType, time.Since(started))
	}
	s.countPackage("success")

	if s.logg != nil {
		ctx = s.logg.WithOrderID(ctx, order.ID.String())
		s.logg.Info(ctx, "package generated")
	}
	return payload, nil
}

func (s *service) buildArchive(ctx context.Context, order *models.BarcodeOrder) (_ []byte, err error) {
	standard, err := s.catalog.Get(order.BarcodeType)
	if err != nil {
		return nil, err
	}

	records := GenerateCodes(standard.Key, order.Quantity)

	workbook, err := BuildWorkbook(s.sheet, records)
	if err != nil {
		return nil, err
	}

	tax := s.evaluator.Evaluate(standard.UnitPrice, order.Quantity, order.CustomerDetails.State)
	invoice, err := BuildInvoice(order, standard, tax, s.catalog.Currency())
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	defer func() {
		if zw != nil {
			err = multierr.Append(err, zw.Close())
		}
	}()

	if err := writeEntry(zw, workbookEntry, workbook); err != nil {
		return nil, err
	}

	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		image, err := RenderPNG(record.Type, record.Data)
		if err != nil {
			return nil, err
		}
		if err := writeEntry(zw, fmt.Sprintf("%s/%s.png", imageDir, record.ID), image); err != nil {
			return nil, err
		}
	}

	if err := writeEntry(zw, invoiceEntry, invoice); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		zw = nil
		return nil, fmt.Errorf("close archive: %w", err)
	}
	zw = nil

	return buf.Bytes(), nil
}

func writeEntry(zw *zip.Writer, name string, payload []byte) error {
	entry, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := entry.Write(payload); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (s *service) countPackage(result string) {
	if s.metrics != nil {
		s.metrics.IncPackage(result)
	}
}
