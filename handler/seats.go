package handler

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ecoradom4/cine-backend/constants"
	"github.com/ecoradom4/cine-backend/database"
	"github.com/ecoradom4/cine-backend/helper"
	"github.com/ecoradom4/cine-backend/model"
	"github.com/ecoradom4/cine-backend/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Thời gian giữ ghế mặc định
const ReservationTTL = 15 * time.Minute

// resolveHolder xác định danh tính người giữ ghế: user đăng nhập,
// session của guest, hoặc sinh mới cho guest chưa có session
func resolveHolder(c *fiber.Ctx, sessionId string) string {
	if claim, ok := helper.GetInfoUserFromToken(c); ok {
		return fmt.Sprintf("USER_%d", claim.UserId)
	}
	if sessionId != "" {
		return sessionId
	}
	return "GUEST_" + uuid.New().String()[:8]
}

// BuildSeatUpdateMessage gom trạng thái ghế hiện tại của suất chiếu
func BuildSeatUpdateMessage(showtimeId uint) (*SeatUpdateMessage, error) {
	db := database.DB

	var showtime model.Showtime
	if err := db.First(&showtime, showtimeId).Error; err != nil {
		return nil, err
	}
	statuses, err := helper.SeatStatuses(db, showtimeId)
	if err != nil {
		return nil, err
	}
	return &SeatUpdateMessage{
		ShowtimeId: showtimeId,
		Seats:      statuses,
		Available:  showtime.SeatsAvailable,
	}, nil
}

// GetShowtimeSeats trả về sơ đồ ghế kèm trạng thái từng ghế
func GetShowtimeSeats(c *fiber.Ctx) error {
	db := database.DB
	showtimeId := uint(c.Locals("inputId").(int))

	var showtime model.Showtime
	if err := db.Preload("Room").Preload("Room.RoomType").Preload("Movie").
		First(&showtime, showtimeId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.SHOWTIME_NOT_FOUND, err, constants.ERR_NOT_FOUND)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	statuses, err := helper.SeatStatuses(db, showtime.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	type SeatUI struct {
		Seat   string `json:"seat"`
		Type   string `json:"type"`
		Status string `json:"status"` // available, reserved, occupied
	}
	seats := make([]SeatUI, 0, len(showtime.Room.SeatMap))
	for seat, spec := range showtime.Room.SeatMap {
		status := "available"
		if s, ok := statuses[seat]; ok {
			status = s
		}
		seats = append(seats, SeatUI{Seat: seat, Type: spec.Type, Status: status})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Sơ đồ ghế suất chiếu", fiber.Map{
		"showtime":       showtime,
		"seats":          seats,
		"seatsAvailable": showtime.SeatsAvailable,
	})
}

// ReserveSeats giữ ghế tạm thời trong 15 phút. Mỗi holder chỉ có một
// lượt giữ trên mỗi suất chiếu, giữ mới thay thế giữ cũ.
func ReserveSeats(c *fiber.Ctx) error {
	db := database.DB
	input := c.Locals("input").(model.ReserveSeatsInput)
	holder := resolveHolder(c, input.SessionId)

	if seat, dup := helper.HasDuplicateSeat(input.Seats); dup {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.INVALID_INPUT,
			fmt.Errorf("ghế %s bị lặp", seat), constants.ERR_INVALID_INPUT)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, tx.Error)
	}

	// Khóa row suất chiếu để serialize các request cùng showtime
	var showtime model.Showtime
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Room").
		First(&showtime, input.ShowtimeId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.SHOWTIME_NOT_FOUND, err, constants.ERR_NOT_FOUND)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if showtime.Status != "scheduled" && showtime.Status != "active" {
		tx.Rollback()
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.SHOWTIME_NOT_BOOKABLE,
			fmt.Errorf("trạng thái: %s", showtime.Status), constants.ERR_CONFLICT)
	}

	if seat, bad := helper.FirstInvalidSeat(input.Seats, showtime.Room.SeatMap); bad {
		tx.Rollback()
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.SEAT_NOT_IN_ROOM,
			fmt.Errorf("ghế %s", seat), constants.ERR_INVALID_INPUT)
	}

	// Ghế phải trống so với mọi booking và mọi lượt giữ còn hạn,
	// kể cả lượt giữ cũ của chính holder
	occupied, err := helper.OccupiedSeats(tx, showtime.ID)
	if err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if seat, taken := helper.FirstUnavailable(input.Seats, occupied); taken {
		tx.Rollback()
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.SEAT_UNAVAILABLE,
			fmt.Errorf("ghế %s", seat), constants.ERR_CONFLICT)
	}

	// Giữ mới thay thế lượt giữ cũ của cùng holder
	if err := tx.Where("showtime_id = ? AND held_by = ?", showtime.ID, holder).
		Delete(&model.SeatReservation{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	reservation := model.SeatReservation{
		ShowtimeId: showtime.ID,
		Seats:      model.SeatList(input.Seats),
		HeldBy:     holder,
		ExpiresAt:  time.Now().UTC().Add(ReservationTTL),
	}
	if err := tx.Create(&reservation).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	go PublishSeatChange(showtime.ID)

	return utils.SuccessResponse(c, fiber.StatusCreated, "Giữ ghế thành công", fiber.Map{
		"reservationId": reservation.ID,
		"seats":         reservation.Seats,
		"heldBy":        holder,
		"expiresAt":     reservation.ExpiresAt,
	})
}

// ReleaseSeats trả ghế đang giữ của holder
func ReleaseSeats(c *fiber.Ctx) error {
	db := database.DB
	input := c.Locals("input").(model.ReleaseSeatsInput)
	holder := resolveHolder(c, input.SessionId)

	result := db.Where("showtime_id = ? AND held_by = ?", input.ShowtimeId, holder).
		Delete(&model.SeatReservation{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}

	if result.RowsAffected > 0 {
		go PublishSeatChange(input.ShowtimeId)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, constants.SEATS_RELEASED, fiber.Map{
		"released": result.RowsAffected > 0,
	})
}

// ExpireReservations dọn các lượt giữ ghế đã quá hạn
func ExpireReservations() {
	db := database.DB
	now := time.Now().UTC()

	var expired []model.SeatReservation
	if err := db.Where("expires_at <= ?", now).Find(&expired).Error; err != nil {
		return
	}
	if len(expired) == 0 {
		return
	}

	affectedShowtimes := make(map[uint]bool)
	ids := make([]uint, 0, len(expired))
	for _, r := range expired {
		ids = append(ids, r.ID)
		affectedShowtimes[r.ShowtimeId] = true
	}

	if err := db.Where("id IN ?", ids).Delete(&model.SeatReservation{}).Error; err != nil {
		log.Printf("Lỗi dọn lượt giữ ghế hết hạn: %v", err)
		return
	}

	log.Printf("Đã dọn %d lượt giữ ghế hết hạn", len(ids))

	// Broadcast cho từng showtime bị ảnh hưởng
	for showtimeId := range affectedShowtimes {
		PublishSeatChange(showtimeId)
	}
}

func StartExpireReservationWorker() {
	ticker := time.NewTicker(30 * time.Second)
	go func() {
		for range ticker.C {
			ExpireReservations()
		}
	}()
}
