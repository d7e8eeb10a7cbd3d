package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/barcodegenpro/barcodegen-backend/pkg/enums"
)

func newTestEvaluator() *Evaluator {
	return NewEvaluator("gujarat", decimal.NewFromFloat(0.18))
}

func TestEvaluateBaseAmount(t *testing.T) {
	t.Parallel()

	got := newTestEvaluator().Evaluate(decimal.RequireFromString("5.00"), 100, "")
	if !got.BaseAmount.Equal(decimal.RequireFromString("500.00")) {
		t.Fatalf("unexpected base amount %s", got.BaseAmount)
	}
}

func TestEvaluateHomeStateSplitsTax(t *testing.T) {
	t.Parallel()

	ev := newTestEvaluator()
	for _, state := range []string{"gujarat", "Gujarat", "GUJARAT", "  gujarat  "} {
		got := ev.Evaluate(decimal.NewFromInt(150), 10, state)
		if got.TaxRegime != enums.TaxRegimeCGSTSGST {
			t.Fatalf("state %q: expected split regime, got %s", state, got.TaxRegime)
		}
		if got.CGST == nil || got.SGST == nil || got.IGST != nil {
			t.Fatalf("state %q: unexpected components %+v", state, got)
		}
		if !got.CGST.Add(*got.SGST).Equal(got.TaxAmount) {
			t.Fatalf("state %q: CGST+SGST != tax: %s + %s != %s", state, got.CGST, got.SGST, got.TaxAmount)
		}
	}
}

func TestEvaluateOtherStatesUseIGST(t *testing.T) {
	t.Parallel()

	ev := newTestEvaluator()
	for _, state := range []string{"", "maharashtra", "kerala", "  "} {
		got := ev.Evaluate(decimal.NewFromInt(120), 3, state)
		if got.TaxRegime != enums.TaxRegimeIGST {
			t.Fatalf("state %q: expected IGST, got %s", state, got.TaxRegime)
		}
		if got.IGST == nil || got.CGST != nil || got.SGST != nil {
			t.Fatalf("state %q: unexpected components %+v", state, got)
		}
		if !got.IGST.Equal(got.TaxAmount) {
			t.Fatalf("state %q: IGST != tax amount", state)
		}
	}
}

func TestEvaluateTotalIsBasePlusTax(t *testing.T) {
	t.Parallel()

	ev := newTestEvaluator()
	got := ev.Evaluate(decimal.RequireFromString("140"), 25, "gujarat")

	if !got.TotalAmount.Equal(got.BaseAmount.Add(got.TaxAmount)) {
		t.Fatalf("total %s != base %s + tax %s", got.TotalAmount, got.BaseAmount, got.TaxAmount)
	}
	if !got.BaseAmount.Equal(decimal.NewFromInt(3500)) {
		t.Fatalf("unexpected base %s", got.BaseAmount)
	}
	if !got.TaxAmount.Equal(decimal.NewFromInt(630)) {
		t.Fatalf("unexpected tax %s", got.TaxAmount)
	}
}

func TestEvaluateZeroRate(t *testing.T) {
	t.Parallel()

	ev := NewEvaluator("gujarat", decimal.Zero)
	got := ev.Evaluate(decimal.NewFromInt(150), 2, "kerala")
	if !got.TaxAmount.IsZero() || !got.TotalAmount.Equal(got.BaseAmount) {
		t.Fatalf("unexpected breakdown %+v", got)
	}
}
