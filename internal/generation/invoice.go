package generation

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/barcodegenpro/barcodegen-backend/internal/catalog"
	"github.com/barcodegenpro/barcodegen-backend/internal/pricing"
	"github.com/barcodegenpro/barcodegen-backend/pkg/db/models"
	"github.com/barcodegenpro/barcodegen-backend/pkg/types"
)

// InvoiceLine is one billed position on the invoice.
type InvoiceLine struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// Invoice is the summary document shipped inside the deliverable package.
type Invoice struct {
	OrderID    string                `json:"order_id"`
	Customer   types.CustomerDetails `json:"customer"`
	Items      []InvoiceLine         `json:"items"`
	TaxDetails pricing.TaxBreakdown  `json:"tax_details"`
	Total      decimal.Decimal       `json:"total_amount"`
	Currency   string                `json:"currency"`
	Date       string                `json:"date"`
}

// BuildInvoice assembles the invoice JSON for an order.
func BuildInvoice(order *models.BarcodeOrder, standard catalog.Standard, tax pricing.TaxBreakdown, currency string) ([]byte, error) {
	invoice := Invoice{
		OrderID:  order.ID.String(),
		Customer: order.CustomerDetails,
		Items: []InvoiceLine{
			{
				Description: fmt.Sprintf("%s Barcode", standard.DisplayName),
				Quantity:    order.Quantity,
				UnitPrice:   standard.UnitPrice,
				Total:       standard.UnitPrice.Mul(decimal.NewFromInt(int64(order.Quantity))),
			},
		},
		TaxDetails: tax,
		Total:      order.FinalAmount,
		Currency:   currency,
		Date:       order.CreatedAt.Format("2006-01-02"),
	}
	return json.MarshalIndent(invoice, "", "  ")
}
