package model

type Movie struct {
	DTO
	Title       string `gorm:"not null;index" validate:"required" json:"title"` //Tên phim
	Genre       string `gorm:"index" json:"genre"`                              // Thể loại
	Duration    int    `gorm:"not null" validate:"required,gt=0" json:"duration"`
	Rating      string `gorm:"size:10" json:"rating"` // G, PG, PG-13, R
	Synopsis    string `gorm:"type:text" json:"synopsis"`
	PosterUrl   string `gorm:"type:varchar(255)" json:"posterUrl"`
	Slug        string `gorm:"uniqueIndex" json:"slug"`
	IsShowing   bool   `gorm:"default:true" json:"isShowing"`
	ReleaseYear int    `json:"releaseYear"`

	Showtimes []Showtime `gorm:"foreignKey:MovieId" json:"showtimes,omitempty"`
}
type Movies []Movie

type CreateMovieInput struct {
	Title       string `json:"title" validate:"required"`
	Genre       string `json:"genre"`
	Duration    int    `json:"duration" validate:"required,gt=0"`
	Rating      string `json:"rating" validate:"omitempty,oneof=G PG PG-13 R"`
	Synopsis    string `json:"synopsis"`
	PosterUrl   string `json:"posterUrl" validate:"omitempty,url"`
	ReleaseYear int    `json:"releaseYear"`
}
