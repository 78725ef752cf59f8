package model

type User struct {
	DTO
	Name     string `gorm:"not null" validate:"required" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" validate:"required,email" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Phone    string `gorm:"size:20" json:"phone"`
	Role     string `gorm:"default:'customer';not null" json:"role"` // customer, admin

	Bookings []Booking `gorm:"foreignKey:UserId" json:"bookings,omitempty"`
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
