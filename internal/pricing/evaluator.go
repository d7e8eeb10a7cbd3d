package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/barcodegenpro/barcodegen-backend/pkg/enums"
)

var two = decimal.NewFromInt(2)

// TaxBreakdown is the computed price for one (unitPrice, quantity, state)
// triple. BaseAmount is exact (no rounding before the multiplication) and
// TotalAmount always equals BaseAmount + TaxAmount.
type TaxBreakdown struct {
	BaseAmount  decimal.Decimal  `json:"base_amount"`
	TaxRegime   enums.TaxRegime  `json:"tax_regime"`
	TaxAmount   decimal.Decimal  `json:"tax_amount"`
	CGST        *decimal.Decimal `json:"cgst,omitempty"`
	SGST        *decimal.Decimal `json:"sgst,omitempty"`
	IGST        *decimal.Decimal `json:"igst,omitempty"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
}

// Evaluator applies the jurisdiction rule. It is deterministic and free of
// side effects so results can be cached and replayed.
type Evaluator struct {
	homeState string
	rate      decimal.Decimal
}

// NewEvaluator builds an evaluator for the configured home jurisdiction and
// tax rate expressed as a fraction (0.18 for 18%).
func NewEvaluator(homeState string, rate decimal.Decimal) *Evaluator {
	return &Evaluator{
		homeState: normalizeState(homeState),
		rate:      rate,
	}
}

// Evaluate prices quantity units at unitPrice for a buyer in buyerState.
// A buyer in the home state gets the split CGST+SGST regime; everyone else,
// including buyers with no state, gets IGST.
func (e *Evaluator) Evaluate(unitPrice decimal.Decimal, quantity int, buyerState string) TaxBreakdown {
	base := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	tax := base.Mul(e.rate)

	breakdown := TaxBreakdown{
		BaseAmount:  base,
		TaxAmount:   tax,
		TotalAmount: base.Add(tax),
	}

	if normalizeState(buyerState) == e.homeState {
		breakdown.TaxRegime = enums.TaxRegimeCGSTSGST
		half := tax.Div(two)
		breakdown.CGST = &half
		breakdown.SGST = &half
		return breakdown
	}

	breakdown.TaxRegime = enums.TaxRegimeIGST
	breakdown.IGST = &tax
	return breakdown
}

func normalizeState(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
