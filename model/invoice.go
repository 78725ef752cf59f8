package model

import "time"

type Invoice struct {
	DTO
	InvoiceNumber  string     `gorm:"size:24;uniqueIndex;not null" json:"invoiceNumber"` // INV-XXXXXXXX
	Subtotal       float64    `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	DiscountAmount float64    `gorm:"type:decimal(10,2);default:0" json:"discountAmount"`
	TaxAmount      float64    `gorm:"type:decimal(10,2);not null" json:"taxAmount"`
	TotalAmount    float64    `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	Status         string     `gorm:"default:'draft';not null" json:"status"` // draft, issued, paid, cancelled, refunded
	PaymentMethod  string     `gorm:"size:20" json:"paymentMethod"`           // cash, card, transfer
	PaymentDate    *time.Time `json:"paymentDate,omitempty"`
	CustomerName   string     `json:"customerName"`
	CustomerEmail  string     `json:"customerEmail"`
	Notes          string     `gorm:"type:text" json:"notes"`

	UserId *uint `json:"userId,omitempty"`
	User   *User `gorm:"foreignKey:UserId;constraint:OnDelete:SET NULL" json:"user,omitempty"`
}

type UpdateInvoiceStatusInput struct {
	Status        string `json:"status" validate:"required,oneof=draft issued paid cancelled refunded"`
	PaymentMethod string `json:"paymentMethod" validate:"omitempty,oneof=cash card transfer"`
}

type FilterInvoiceInput struct {
	Pagination
	Status    string `query:"status" validate:"omitempty,oneof=draft issued paid cancelled refunded"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}
