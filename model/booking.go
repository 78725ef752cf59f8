package model

import "time"

type Booking struct {
	DTO
	PublicCode   string   `gorm:"unique;size:20" json:"publicCode"`      // ORD-XXXXXXXX
	TicketNumber string   `gorm:"size:24;uniqueIndex" json:"ticketNumber"` // TKT-XXXXXXXXXX
	Seats        SeatList `gorm:"type:jsonb;not null" json:"seats"`
	TotalPrice   float64  `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	Status       string   `gorm:"default:'confirmed';not null" json:"status"` // confirmed, cancelled, used
	QRCode       string   `gorm:"type:text" json:"qrCode,omitempty"`          // data URI, sinh khi cần

	CustomerName string `json:"customerName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`

	UserId      *uint      `json:"userId,omitempty"` // null nếu khách vãng lai
	ShowtimeId  uint       `gorm:"not null;index" json:"showtimeId"`
	InvoiceId   *uint      `json:"invoiceId,omitempty"`
	PromotionId *uint      `json:"promotionId,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`

	User      *User      `gorm:"foreignKey:UserId;constraint:OnDelete:SET NULL" json:"user,omitempty"`
	Showtime  Showtime   `gorm:"foreignKey:ShowtimeId" json:"showtime"`
	Invoice   *Invoice   `gorm:"foreignKey:InvoiceId" json:"invoice,omitempty"`
	Promotion *Promotion `gorm:"foreignKey:PromotionId;constraint:OnDelete:SET NULL" json:"promotion,omitempty"`
}

type CreateBookingInput struct {
	ShowtimeId    uint     `json:"showtimeId" validate:"required,gt=0"`
	Seats         []string `json:"seats" validate:"required,min=1,dive,required"`
	PromotionCode string   `json:"promotionCode" validate:"omitempty"`
	PaymentMethod string   `json:"paymentMethod" validate:"omitempty,oneof=cash card transfer"`
	CustomerName  string   `json:"customerName"`
	Email         string   `json:"email" validate:"omitempty,email"`
	Phone         string   `json:"phone"`
	SessionId     string   `json:"sessionId"`
}

type FilterBookingInput struct {
	Pagination
	Status     string `query:"status" validate:"omitempty,oneof=confirmed cancelled used"`
	ShowtimeId uint   `query:"showtimeId" validate:"omitempty,gt=0"`
}
