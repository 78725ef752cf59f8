package model

import "time"

type Promotion struct {
	DTO
	Code        string    `gorm:"unique;not null;size:32" validate:"required" json:"code"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Type        string    `gorm:"not null" validate:"required,oneof=percentage fixed bogo" json:"type"`
	Value       float64   `gorm:"type:decimal(10,2);not null" json:"value"`
	MinPurchase float64   `gorm:"type:decimal(10,2);default:0" json:"minPurchase"`
	MaxDiscount *float64  `gorm:"type:decimal(10,2)" json:"maxDiscount,omitempty"`
	ValidFrom   time.Time `gorm:"not null" json:"validFrom"`
	ValidUntil  time.Time `gorm:"not null" json:"validUntil"`
	UsageLimit  int       `gorm:"default:0" json:"usageLimit"` // 0 = không giới hạn
	UsedCount   int       `gorm:"default:0" json:"usedCount"`
	IsActive    bool      `gorm:"default:true" json:"isActive"`
}
type Promotions []Promotion

type CreatePromotionInput struct {
	Code        string    `json:"code" validate:"required,min=3,max=32"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	Type        string    `json:"type" validate:"required,oneof=percentage fixed bogo"`
	Value       float64   `json:"value" validate:"required,gte=0"`
	MinPurchase float64   `json:"minPurchase" validate:"omitempty,gte=0"`
	MaxDiscount *float64  `json:"maxDiscount" validate:"omitempty,gt=0"`
	ValidFrom   time.Time `json:"validFrom" validate:"required"`
	ValidUntil  time.Time `json:"validUntil" validate:"required,gtfield=ValidFrom"`
	UsageLimit  int       `json:"usageLimit" validate:"omitempty,gte=0"`
}

type UpdatePromotionInput struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Value       *float64   `json:"value" validate:"omitempty,gte=0"`
	MinPurchase *float64   `json:"minPurchase" validate:"omitempty,gte=0"`
	MaxDiscount *float64   `json:"maxDiscount" validate:"omitempty,gt=0"`
	ValidFrom   *time.Time `json:"validFrom"`
	ValidUntil  *time.Time `json:"validUntil"`
	UsageLimit  *int       `json:"usageLimit" validate:"omitempty,gte=0"`
	IsActive    *bool      `json:"isActive"`
}

type ValidatePromotionInput struct {
	Code     string  `json:"code" validate:"required"`
	Subtotal float64 `json:"subtotal" validate:"required,gt=0"`
}
