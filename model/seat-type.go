package model

type SeatType struct {
	DTO
	Name            string  `gorm:"unique;not null;size:50" validate:"required" json:"name"` // standard, vip, couple
	Description     string  `gorm:"type:text" json:"description"`
	PriceMultiplier float64 `gorm:"type:decimal(5,2);default:1.0;not null" json:"priceMultiplier"`
}
