package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// SeatList lưu danh sách mã ghế dạng JSONB: ["A1","A2"]
type SeatList []string

func (sl SeatList) Value() (driver.Value, error) {
	if sl == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(sl)
}

func (sl *SeatList) Scan(value any) error {
	if value == nil {
		*sl = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("seatList: unsupported column type")
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, sl)
}

// SeatReservation là lượt giữ ghế tạm thời, hết hạn sau 15 phút
type SeatReservation struct {
	DTO
	ShowtimeId uint      `gorm:"not null;index" json:"showtimeId"`
	Seats      SeatList  `gorm:"type:jsonb;not null" json:"seats"`
	HeldBy     string    `gorm:"size:64;not null;index" json:"heldBy"` // USER_<id> hoặc session id
	ExpiresAt  time.Time `gorm:"not null;index" json:"expiresAt"`

	Showtime Showtime `gorm:"foreignKey:ShowtimeId" json:"-"`
}

type ReserveSeatsInput struct {
	ShowtimeId uint     `json:"showtimeId" validate:"required,gt=0"`
	Seats      []string `json:"seats" validate:"required,min=1,dive,required"`
	SessionId  string   `json:"sessionId"`
}

type ReleaseSeatsInput struct {
	ShowtimeId uint   `json:"showtimeId" validate:"required,gt=0"`
	SessionId  string `json:"sessionId"`
}
