package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/barcodegenpro/barcodegen-backend/pkg/errors"
)

// Standard is one sellable barcode symbology with its unit price.
type Standard struct {
	Key         string          `json:"key"`
	DisplayName string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"price"`
}

// Service exposes the read-only standards catalog.
type Service interface {
	List() []Standard
	Get(key string) (Standard, error)
	Currency() string
}

type service struct {
	standards map[string]Standard
	currency  string
}

// Unit prices in INR per generated code.
var defaultStandards = map[string]Standard{
	"qr_code":    {Key: "qr_code", DisplayName: "QR Code", UnitPrice: decimal.NewFromInt(150)},
	"code128":    {Key: "code128", DisplayName: "Code 128", UnitPrice: decimal.NewFromInt(120)},
	"ean13":      {Key: "ean13", DisplayName: "EAN-13", UnitPrice: decimal.NewFromInt(140)},
	"upc":        {Key: "upc", DisplayName: "UPC-A", UnitPrice: decimal.NewFromInt(140)},
	"code39":     {Key: "code39", DisplayName: "Code 39", UnitPrice: decimal.NewFromInt(120)},
	"datamatrix": {Key: "datamatrix", DisplayName: "Data Matrix", UnitPrice: decimal.NewFromInt(180)},
}

// NewService builds the catalog with the built-in standards.
func NewService(currency string) Service {
	if strings.TrimSpace(currency) == "" {
		currency = "INR"
	}
	return &service{standards: defaultStandards, currency: currency}
}

// List returns the standards sorted by key.
func (s *service) List() []Standard {
	out := make([]Standard, 0, len(s.standards))
	for _, standard := range s.standards {
		out = append(out, standard)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Get resolves a standard by key.
func (s *service) Get(key string) (Standard, error) {
	standard, ok := s.standards[strings.TrimSpace(key)]
	if !ok {
		return Standard{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid barcode type")
	}
	return standard, nil
}

// Currency returns the catalog currency code.
func (s *service) Currency() string {
	return s.currency
}
