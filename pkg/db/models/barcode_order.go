package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/barcodegenpro/barcodegen-backend/pkg/enums"
	"github.com/barcodegenpro/barcodegen-backend/pkg/types"
)

// BarcodeOrder is the persisted snapshot of a committed order. Amounts are
// frozen at commit time; TotalAmount is the pre-tax base, FinalAmount includes
// tax.
type BarcodeOrder struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CustomerDetails types.CustomerDetails `gorm:"embedded;embeddedPrefix:customer_" json:"customer_details"`
	BarcodeType     string                `gorm:"column:barcode_type;not null" json:"barcode_type"`
	Quantity        int                   `gorm:"column:quantity;not null" json:"quantity"`
	TotalAmount     decimal.Decimal       `gorm:"column:total_amount;type:numeric(14,2);not null" json:"total_amount"`
	TaxAmount       decimal.Decimal       `gorm:"column:tax_amount;type:numeric(14,2);not null" json:"tax_amount"`
	FinalAmount     decimal.Decimal       `gorm:"column:final_amount;type:numeric(14,2);not null" json:"final_amount"`
	TaxRegime       enums.TaxRegime       `gorm:"column:tax_regime;not null" json:"tax_regime"`
	OrderStatus     enums.OrderStatus     `gorm:"column:order_status;not null;default:'pending'" json:"order_status"`
	PaymentStatus   enums.PaymentStatus   `gorm:"column:payment_status;not null;default:'pending'" json:"payment_status"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName pins the table used by goose migrations.
func (BarcodeOrder) TableName() string {
	return "barcode_orders"
}
