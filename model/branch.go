package model

type Branch struct {
	DTO
	Name    string `gorm:"not null" validate:"required" json:"name"`
	Address string `gorm:"type:text" json:"address"`
	City    string `gorm:"size:100;index" json:"city"`
	Phone   string `gorm:"size:20" json:"phone"`
	Slug    string `gorm:"uniqueIndex" json:"slug"`

	Rooms []Room `gorm:"foreignKey:BranchId" json:"rooms,omitempty"`
}
