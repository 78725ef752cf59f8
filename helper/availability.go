package helper

import (
	"time"

	"github.com/ecoradom4/cine-backend/model"
	"gorm.io/gorm"
)

// CombineOccupied gộp ghế đã bán và ghế đang giữ thành một tập duy nhất
func CombineOccupied(bookingSeats []model.SeatList, reservationSeats []model.SeatList) map[string]struct{} {
	occupied := make(map[string]struct{})
	for _, seats := range bookingSeats {
		for _, s := range seats {
			occupied[s] = struct{}{}
		}
	}
	for _, seats := range reservationSeats {
		for _, s := range seats {
			occupied[s] = struct{}{}
		}
	}
	return occupied
}

// FirstUnavailable trả về ghế đầu tiên trong requested đã nằm trong occupied
func FirstUnavailable(requested []string, occupied map[string]struct{}) (string, bool) {
	for _, s := range requested {
		if _, ok := occupied[s]; ok {
			return s, true
		}
	}
	return "", false
}

// FirstInvalidSeat trả về ghế đầu tiên không tồn tại trong sơ đồ phòng
func FirstInvalidSeat(requested []string, sm model.SeatMap) (string, bool) {
	for _, s := range requested {
		if _, _, err := model.ParseSeatID(s); err != nil {
			return s, true
		}
		if _, ok := sm[s]; !ok {
			return s, true
		}
	}
	return "", false
}

// HasDuplicateSeat trả về ghế bị lặp trong cùng một yêu cầu
func HasDuplicateSeat(requested []string) (string, bool) {
	seen := make(map[string]struct{}, len(requested))
	for _, s := range requested {
		if _, ok := seen[s]; ok {
			return s, true
		}
		seen[s] = struct{}{}
	}
	return "", false
}

// Vé đã soát ("used") vẫn chiếm ghế như vé confirmed
func confirmedBookingSeats(tx *gorm.DB, showtimeID uint) ([]model.SeatList, error) {
	var bookings []model.Booking
	if err := tx.Select("seats").
		Where("showtime_id = ? AND status IN ?", showtimeID, []string{"confirmed", "used"}).
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	result := make([]model.SeatList, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, b.Seats)
	}
	return result, nil
}

func activeReservationSeats(tx *gorm.DB, showtimeID uint, excludeHolder string) ([]model.SeatList, error) {
	q := tx.Select("seats").
		Where("showtime_id = ? AND expires_at > ?", showtimeID, time.Now().UTC())
	if excludeHolder != "" {
		q = q.Where("held_by <> ?", excludeHolder)
	}
	var reservations []model.SeatReservation
	if err := q.Find(&reservations).Error; err != nil {
		return nil, err
	}
	result := make([]model.SeatList, 0, len(reservations))
	for _, r := range reservations {
		result = append(result, r.Seats)
	}
	return result, nil
}

// OccupiedSeats trả về tập ghế không còn trống của một suất chiếu:
// ghế của booking confirmed cộng ghế đang được giữ chưa hết hạn
func OccupiedSeats(tx *gorm.DB, showtimeID uint) (map[string]struct{}, error) {
	return OccupiedSeatsExcluding(tx, showtimeID, "")
}

// OccupiedSeatsExcluding như OccupiedSeats nhưng bỏ qua lượt giữ của chính holder,
// để người giữ ghế mua được ghế mình đang giữ
func OccupiedSeatsExcluding(tx *gorm.DB, showtimeID uint, holder string) (map[string]struct{}, error) {
	booked, err := confirmedBookingSeats(tx, showtimeID)
	if err != nil {
		return nil, err
	}
	reserved, err := activeReservationSeats(tx, showtimeID, holder)
	if err != nil {
		return nil, err
	}
	return CombineOccupied(booked, reserved), nil
}

// SeatStatuses trả về trạng thái từng ghế: "occupied" (đã bán) hoặc "reserved" (đang giữ).
// Ghế bán đè lên ghế giữ nếu trùng.
func SeatStatuses(tx *gorm.DB, showtimeID uint) (map[string]string, error) {
	statuses := make(map[string]string)
	reserved, err := activeReservationSeats(tx, showtimeID, "")
	if err != nil {
		return nil, err
	}
	for _, seats := range reserved {
		for _, s := range seats {
			statuses[s] = "reserved"
		}
	}
	booked, err := confirmedBookingSeats(tx, showtimeID)
	if err != nil {
		return nil, err
	}
	for _, seats := range booked {
		for _, s := range seats {
			statuses[s] = "occupied"
		}
	}
	return statuses, nil
}
