package workflow

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/barcodegenpro/barcodegen-backend/pkg/enums"
	"github.com/barcodegenpro/barcodegen-backend/pkg/types"
)

// Standard is a catalog entry as seen by the session.
type Standard struct {
	Key       string
	Name      string
	UnitPrice decimal.Decimal
}

// Quote is the displayed price for one pricing triple. The embedded Triple
// records the inputs that produced it; a quote is only valid while the draft
// still matches.
type Quote struct {
	Triple
	BaseAmount  decimal.Decimal
	TaxRegime   enums.TaxRegime
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

// Triple is the set of pricing-relevant draft fields.
type Triple struct {
	BarcodeType string
	Quantity    int
	State       string
}

// Order is the committed order snapshot returned by the backend. The amounts
// here are authoritative; the last displayed quote is not.
type Order struct {
	ID          string
	TotalAmount decimal.Decimal
	TaxAmount   decimal.Decimal
	FinalAmount decimal.Decimal
}

// CatalogClient fetches the read-only standards catalog once per session.
type CatalogClient interface {
	ListStandards(ctx context.Context) (map[string]Standard, error)
}

// PricingClient quotes one pricing triple.
type PricingClient interface {
	QuotePrice(ctx context.Context, standardKey string, quantity int, buyerState string) (*Quote, error)
}

// OrderClient commits a draft, creating a persisted order.
type OrderClient interface {
	CreateOrder(ctx context.Context, standardKey string, quantity int, details types.CustomerDetails) (*Order, error)
}

// GenerationClient produces the binary deliverable package for an order.
type GenerationClient interface {
	GeneratePackage(ctx context.Context, orderID string) ([]byte, error)
}

// Saver hands a downloaded payload to the platform's file-save mechanism.
type Saver interface {
	Save(filename string, payload []byte) error
}
