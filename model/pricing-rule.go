package model

import "time"

// PricingRule điều chỉnh giá vé theo phạm vi: loại phòng bắt buộc,
// các điều kiện còn lại là tùy chọn. Rule càng nhiều điều kiện khớp càng ưu tiên.
type PricingRule struct {
	DTO
	Name       string `gorm:"not null" validate:"required" json:"name"`
	RoomTypeId uint   `gorm:"not null;index" validate:"required" json:"roomTypeId"`

	SeatTypeId *uint   `json:"seatTypeId,omitempty"`
	AudioType  *string `gorm:"size:20" json:"audioType,omitempty"` // doblada, subtitulada, original
	Format     *string `gorm:"size:10" json:"format,omitempty"`    // 2D, 3D, IMAX, 4DX
	DayOfWeek  *int    `json:"dayOfWeek,omitempty"`                // 0=Chủ nhật ... 6=Thứ bảy
	StartTime  *string `gorm:"size:8" json:"startTime,omitempty"`  // "HH:MM"
	EndTime    *string `gorm:"size:8" json:"endTime,omitempty"`

	Multiplier *float64   `gorm:"type:decimal(5,2)" json:"multiplier,omitempty"`
	FixedPrice *float64   `gorm:"type:decimal(10,2)" json:"fixedPrice,omitempty"`
	IsActive   bool       `gorm:"default:true" json:"isActive"`
	ValidFrom  *time.Time `json:"validFrom,omitempty"`
	ValidUntil *time.Time `json:"validUntil,omitempty"`

	RoomType RoomType  `gorm:"foreignKey:RoomTypeId" json:"roomType"`
	SeatType *SeatType `gorm:"foreignKey:SeatTypeId" json:"seatType,omitempty"`
}

type CreatePricingRuleInput struct {
	Name       string     `json:"name" validate:"required"`
	RoomTypeId uint       `json:"roomTypeId" validate:"required,gt=0"`
	SeatTypeId *uint      `json:"seatTypeId" validate:"omitempty,gt=0"`
	AudioType  *string    `json:"audioType" validate:"omitempty,oneof=doblada subtitulada original"`
	Format     *string    `json:"format" validate:"omitempty,oneof=2D 3D IMAX 4DX"`
	DayOfWeek  *int       `json:"dayOfWeek" validate:"omitempty,min=0,max=6"`
	StartTime  *string    `json:"startTime"`
	EndTime    *string    `json:"endTime"`
	Multiplier *float64   `json:"multiplier" validate:"omitempty,gt=0"`
	FixedPrice *float64   `json:"fixedPrice" validate:"omitempty,gt=0"`
	ValidFrom  *time.Time `json:"validFrom"`
	ValidUntil *time.Time `json:"validUntil"`
}

type UpdatePricingRuleInput struct {
	Name       *string    `json:"name"`
	Multiplier *float64   `json:"multiplier" validate:"omitempty,gt=0"`
	FixedPrice *float64   `json:"fixedPrice" validate:"omitempty,gt=0"`
	IsActive   *bool      `json:"isActive"`
	ValidFrom  *time.Time `json:"validFrom"`
	ValidUntil *time.Time `json:"validUntil"`
}

type CalculatePriceInput struct {
	ShowtimeId uint     `json:"showtimeId" validate:"required,gt=0"`
	Seats      []string `json:"seats" validate:"required,min=1,dive,required"`
}
