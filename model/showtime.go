package model

import "time"

type Showtime struct {
	DTO
	PublicCode     string    `gorm:"size:16;uniqueIndex" json:"publicCode"` // SHW-XXXXXXXX
	StartTime      time.Time `gorm:"not null;index" validate:"required" json:"startTime"`
	EndTime        time.Time `gorm:"not null" validate:"required" json:"endTime"`
	Status         string    `gorm:"default:'scheduled';not null" json:"status"` // scheduled, active, completed, cancelled
	Format         string    `gorm:"size:10" json:"format"`                      // 2D, 3D, IMAX, 4DX
	AudioType      string    `gorm:"size:20" json:"audioType"`                   // doblada, subtitulada, original
	SeatsAvailable int       `gorm:"not null" json:"seatsAvailable"`
	MovieId        uint      `gorm:"not null" json:"movieId"`
	RoomId         uint      `gorm:"not null" json:"roomId"`

	Movie Movie `gorm:"foreignKey:MovieId;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"movie"`
	Room  Room  `gorm:"foreignKey:RoomId;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"room"`
}

type CreateShowtimeInput struct {
	MovieId   uint      `json:"movieId" validate:"required,gt=0"`
	RoomId    uint      `json:"roomId" validate:"required,gt=0"`
	StartTime time.Time `json:"startTime" validate:"required"`
	Format    string    `json:"format" validate:"omitempty,oneof=2D 3D IMAX 4DX"`
	AudioType string    `json:"audioType" validate:"omitempty,oneof=doblada subtitulada original"`
}

type FilterShowtimeInput struct {
	Pagination
	MovieId   uint   `query:"movieId" validate:"omitempty,gt=0"`
	RoomId    uint   `query:"roomId" validate:"omitempty,gt=0"`
	BranchId  uint   `query:"branchId" validate:"omitempty,gt=0"`
	Date      string `query:"date"` // YYYY-MM-DD
	Status    string `query:"status" validate:"omitempty,oneof=scheduled active completed cancelled"`
	Format    string `query:"format"`
	AudioType string `query:"audioType"`
}
