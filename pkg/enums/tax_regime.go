package enums

import "fmt"

// TaxRegime identifies how GST is split for an order.
type TaxRegime string

const (
	// TaxRegimeIGST applies the full rate as integrated GST (inter-state buyers).
	TaxRegimeIGST TaxRegime = "IGST"
	// TaxRegimeCGSTSGST splits the rate evenly between central and state GST
	// (buyers in the home state).
	TaxRegimeCGSTSGST TaxRegime = "CGST_SGST"
)

var validTaxRegimes = []TaxRegime{
	TaxRegimeIGST,
	TaxRegimeCGSTSGST,
}

// String implements fmt.Stringer.
func (t TaxRegime) String() string {
	return string(t)
}

// IsValid reports whether the regime is recognized.
func (t TaxRegime) IsValid() bool {
	for _, candidate := range validTaxRegimes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTaxRegime converts a raw string into a TaxRegime.
func ParseTaxRegime(value string) (TaxRegime, error) {
	for _, candidate := range validTaxRegimes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tax regime %q", value)
}
