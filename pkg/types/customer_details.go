package types

import "strings"

// CustomerDetails is the buyer record captured on the details step and
// snapshotted onto the order at commit time.
type CustomerDetails struct {
	Name         string `json:"name" gorm:"column:name" validate:"required"`
	Surname      string `json:"surname" gorm:"column:surname"`
	Organization string `json:"organization" gorm:"column:organization"`
	Country      string `json:"country" gorm:"column:country"`
	Address      string `json:"address" gorm:"column:address"`
	Phone        string `json:"phone" gorm:"column:phone"`
	Email        string `json:"email" gorm:"column:email" validate:"required,email"`
	GSTNumber    string `json:"gst_number,omitempty" gorm:"column:gst_number"`
	State        string `json:"state,omitempty" gorm:"column:state"`
}

// HasMinimumContact reports whether the record satisfies the
// minimum-viable-contact rule required before an order may be committed.
func (c CustomerDetails) HasMinimumContact() bool {
	return strings.TrimSpace(c.Name) != "" && strings.TrimSpace(c.Email) != ""
}
