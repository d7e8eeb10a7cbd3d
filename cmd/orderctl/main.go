package main

import (
	"context"
	"flag"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/barcodegenpro/barcodegen-backend/internal/orderapi"
	"github.com/barcodegenpro/barcodegen-backend/internal/workflow"
	"github.com/barcodegenpro/barcodegen-backend/pkg/config"
	"github.com/barcodegenpro/barcodegen-backend/pkg/logger"
)

// orderctl walks one order through the full workflow against a running API:
// select a standard, price it, commit, then download the package zip.
func main() {
	logg := logger.New(logger.Options{ServiceName: "orderctl"})
	ctx := context.Background()

	_ = godotenv.Load()

	barcodeType := flag.String("type", "qr_code", "barcode standard key")
	quantity := flag.Int("quantity", 1, "number of codes to order")
	name := flag.String("name", "", "customer name (required)")
	email := flag.String("email", "", "customer email (required)")
	state := flag.String("state", "", "customer state, drives the tax regime")
	organization := flag.String("organization", "", "customer organization")
	phone := flag.String("phone", "", "customer phone")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "orderctl",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	client, err := orderapi.NewClient(cfg.Client.BaseURL,
		orderapi.WithHTTPClient(&http.Client{Timeout: cfg.Client.Timeout}))
	if err != nil {
		logg.Error(ctx, "failed to build api client", err)
		os.Exit(1)
	}

	sess, err := workflow.NewSession(workflow.SessionParams{
		Catalog:      client,
		Pricing:      client,
		Orders:       client,
		Generation:   client,
		Saver:        workflow.DirSaver{Dir: cfg.Client.DownloadDir},
		Logger:       logg,
		QuoteRetries: cfg.Client.QuoteRetries,
		QuoteBackoff: cfg.Client.QuoteBackoff,
	})
	if err != nil {
		logg.Error(ctx, "failed to build session", err)
		os.Exit(1)
	}

	if err := sess.Start(ctx); err != nil {
		logg.Error(ctx, "catalog unavailable", err)
		os.Exit(1)
	}

	if err := sess.SelectStandard(*barcodeType); err != nil {
		logg.Error(ctx, "invalid barcode type", err)
		os.Exit(1)
	}
	if err := sess.Advance(); err != nil {
		logg.Error(ctx, "cannot enter configuration", err)
		os.Exit(1)
	}

	clamped := sess.SetQuantity(ctx, *quantity)
	if clamped != *quantity {
		logg.Warn(logg.WithField(ctx, "quantity", clamped), "quantity clamped")
	}
	if err := sess.Advance(); err != nil {
		logg.Error(ctx, "cannot enter details", err)
		os.Exit(1)
	}

	fields := map[string]string{
		"name":         *name,
		"email":        *email,
		"state":        *state,
		"organization": *organization,
		"phone":        *phone,
	}
	for field, value := range fields {
		if value == "" {
			continue
		}
		if err := sess.SetCustomerField(ctx, field, value); err != nil {
			logg.Error(ctx, "invalid customer field", err)
			os.Exit(1)
		}
	}

	sess.WaitQuotes()
	if quote := sess.Quote(); quote != nil {
		ctx = logg.WithFields(ctx, map[string]any{
			"base_amount":  quote.BaseAmount.String(),
			"tax_amount":   quote.TaxAmount.String(),
			"total_amount": quote.TotalAmount.String(),
			"tax_regime":   string(quote.TaxRegime),
		})
		logg.Info(ctx, "quote")
	}

	if err := sess.CommitOrder(ctx); err != nil {
		logg.Error(ctx, "order commit failed", err)
		os.Exit(1)
	}
	order := sess.Order()
	ctx = logg.WithOrderID(ctx, order.ID)
	logg.Info(ctx, "order created")

	if err := sess.GenerateAndDownload(ctx); err != nil {
		logg.Error(ctx, "package download failed", err)
		os.Exit(1)
	}
	logg.Info(logg.WithField(ctx, "dir", cfg.Client.DownloadDir), "package saved")
}
