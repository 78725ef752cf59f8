package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

type RoomType struct {
	DTO
	Name        string  `gorm:"unique;not null;size:50" validate:"required" json:"name"` // Standard, VIP, IMAX, 4DX
	Description string  `gorm:"type:text" json:"description"`
	BasePrice   float64 `gorm:"type:decimal(10,2);not null" validate:"required,gt=0" json:"basePrice"`

	Rooms []Room `gorm:"foreignKey:RoomTypeId" json:"rooms,omitempty"`
}

// SeatSpec mô tả 1 ghế trong sơ đồ phòng: loại ghế và giá niêm yết (nếu có)
type SeatSpec struct {
	Type  string   `json:"type"` // standard, vip, couple...
	Price *float64 `json:"price,omitempty"`
}

// SeatMap lưu sơ đồ ghế dạng JSONB: {"A1": {"type": "vip", "price": 50}}
type SeatMap map[string]SeatSpec

func (sm SeatMap) Value() (driver.Value, error) {
	if sm == nil {
		return nil, nil
	}
	return json.Marshal(sm)
}

func (sm *SeatMap) Scan(value any) error {
	if value == nil {
		*sm = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("seatMap: unsupported column type")
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, sm)
}

type Room struct {
	DTO
	Name       string  `gorm:"not null" validate:"required" json:"name"`
	Capacity   int     `gorm:"not null" validate:"required,min=1" json:"capacity"`
	Status     string  `gorm:"default:'active';not null" json:"status"` // active, maintenance, closed
	SeatMap    SeatMap `gorm:"type:jsonb" json:"seatMap"`
	RoomTypeId uint    `gorm:"not null" validate:"required" json:"roomTypeId"`
	BranchId   uint    `gorm:"not null" validate:"required" json:"branchId"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeId;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"roomType"`
	Branch   Branch   `gorm:"foreignKey:BranchId;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"branch"`
}

type CreateRoomInput struct {
	Name       string  `json:"name" validate:"required"`
	Capacity   int     `json:"capacity" validate:"required,min=1"`
	RoomTypeId uint    `json:"roomTypeId" validate:"required"`
	BranchId   uint    `json:"branchId" validate:"required"`
	SeatMap    SeatMap `json:"seatMap"`
	Rows       string  `json:"rows"`    // "A,B,C" hoặc "A-H", dùng khi không gửi seatMap
	Columns    int     `json:"columns"` // số ghế mỗi hàng
}

type UpdateRoomInput struct {
	Name     *string  `json:"name"`
	Capacity *int     `json:"capacity" validate:"omitempty,min=1"`
	Status   *string  `json:"status" validate:"omitempty,oneof=active maintenance closed"`
	SeatMap  *SeatMap `json:"seatMap"`
}

// ParseSeatID tách "A12" thành hàng "A" và số 12. Trả lỗi nếu sai định dạng.
func ParseSeatID(id string) (row string, number int, err error) {
	i := 0
	for i < len(id) && unicode.IsLetter(rune(id[i])) {
		i++
	}
	if i == 0 || i == len(id) {
		return "", 0, fmt.Errorf("seat %q: expected format like A12", id)
	}
	n, err := strconv.Atoi(id[i:])
	if err != nil || n < 1 {
		return "", 0, fmt.Errorf("seat %q: expected format like A12", id)
	}
	return id[:i], n, nil
}
