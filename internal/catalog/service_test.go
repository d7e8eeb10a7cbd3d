package catalog

import (
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/barcodegenpro/barcodegen-backend/pkg/errors"
)

func TestListIsSortedAndComplete(t *testing.T) {
	t.Parallel()

	standards := NewService("").List()
	if len(standards) != 6 {
		t.Fatalf("expected 6 standards, got %d", len(standards))
	}
	for i := 1; i < len(standards); i++ {
		if standards[i-1].Key >= standards[i].Key {
			t.Fatalf("list not sorted at %d: %s >= %s", i, standards[i-1].Key, standards[i].Key)
		}
	}
}

func TestGetKnownStandard(t *testing.T) {
	t.Parallel()

	svc := NewService("INR")
	standard, err := svc.Get("datamatrix")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if standard.DisplayName != "Data Matrix" {
		t.Fatalf("unexpected name %q", standard.DisplayName)
	}
	if !standard.UnitPrice.Equal(decimal.NewFromInt(180)) {
		t.Fatalf("unexpected price %s", standard.UnitPrice)
	}
}

func TestGetUnknownStandard(t *testing.T) {
	t.Parallel()

	_, err := NewService("INR").Get("pdf417")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCurrencyDefaultsToINR(t *testing.T) {
	t.Parallel()

	if got := NewService("  ").Currency(); got != "INR" {
		t.Fatalf("unexpected currency %q", got)
	}
	if got := NewService("USD").Currency(); got != "USD" {
		t.Fatalf("unexpected currency %q", got)
	}
}
