package handler

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/ecoradom4/cine-backend/constants"
	"github.com/ecoradom4/cine-backend/database"
	"github.com/ecoradom4/cine-backend/model"
	"github.com/ecoradom4/cine-backend/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetTicketByNumber tra cứu vé theo mã TKT-. QR chỉ sinh khi được hỏi
// lần đầu rồi lưu lại.
func GetTicketByNumber(c *fiber.Ctx) error {
	db := database.DB
	ticketNumber := c.Params("ticketNumber")

	var booking model.Booking
	if err := db.Preload("Showtime").Preload("Showtime.Movie").Preload("Showtime.Room").
		Where("ticket_number = ?", ticketNumber).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.TICKET_NOT_FOUND, err, constants.ERR_NOT_FOUND)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if booking.QRCode == "" {
		dataURI, err := utils.GenerateQRCodeDataURI(booking.TicketNumber, 256)
		if err != nil {
			log.Printf("Lỗi sinh QR cho vé %s: %v", booking.TicketNumber, err)
		} else {
			booking.QRCode = dataURI
			if err := db.Model(&booking).Update("qr_code", dataURI).Error; err != nil {
				log.Printf("Lỗi lưu QR cho vé %s: %v", booking.TicketNumber, err)
			}
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Thông tin vé", booking)
}

// ValidateTicket soát vé ở cửa: vé confirmed của suất chưa kết thúc
// được chấp nhận và đánh dấu đã dùng
func ValidateTicket(c *fiber.Ctx) error {
	db := database.DB
	ticketNumber := c.Params("ticketNumber")

	var booking model.Booking
	if err := db.Preload("Showtime").Preload("Showtime.Movie").
		Where("ticket_number = ?", ticketNumber).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.TICKET_NOT_FOUND, err, constants.ERR_NOT_FOUND)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if booking.Status != "confirmed" {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.TICKET_NOT_CONFIRMED,
			errors.New("trạng thái: "+booking.Status), constants.ERR_CONFLICT)
	}
	if time.Now().UTC().After(booking.Showtime.EndTime) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.SHOWTIME_ALREADY_RUN,
			errors.New("showtime ended"), constants.ERR_CONFLICT)
	}

	if err := db.Model(&booking).Update("status", "used").Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Vé hợp lệ", fiber.Map{
		"ticketNumber": booking.TicketNumber,
		"movie":        booking.Showtime.Movie.Title,
		"seats":        booking.Seats,
		"startTime":    booking.Showtime.StartTime,
	})
}

// ResendTicketEmail gửi lại email vé kèm QR
func ResendTicketEmail(c *fiber.Ctx) error {
	db := database.DB
	ticketNumber := c.Params("ticketNumber")

	var booking model.Booking
	if err := db.Preload("Showtime").Preload("Showtime.Movie").Preload("Showtime.Room").
		Where("ticket_number = ?", ticketNumber).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.TICKET_NOT_FOUND, err, constants.ERR_NOT_FOUND)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if booking.Email == "" {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Vé không có email",
			errors.New("no email on booking"), constants.ERR_INVALID_INPUT)
	}

	qrBytes, err := utils.GenerateQRCode(booking.TicketNumber, 256)
	if err != nil {
		qrBytes = nil
	}
	if err := utils.SendTicketEmail(booking.Email, utils.TicketEmailData{
		TicketNumber: booking.TicketNumber,
		CustomerName: booking.CustomerName,
		MovieTitle:   booking.Showtime.Movie.Title,
		RoomName:     booking.Showtime.Room.Name,
		Showtime:     booking.Showtime.StartTime.Format("02/01/2006 15:04"),
		Seats:        strings.Join(booking.Seats, ", "),
	}, qrBytes); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Gửi email thất bại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Đã gửi lại vé", fiber.Map{
		"ticketNumber": booking.TicketNumber,
		"email":        booking.Email,
	})
}
