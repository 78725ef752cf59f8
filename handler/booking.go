package handler

import (
	"errors"
	"fmt"
	"log"
	"strings"
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

// Hạn chót hủy vé trước giờ chiếu
const CancelCutoff = time.Hour

// CreateBooking bán ghế: toàn bộ kiểm tra và ghi chạy trong một transaction,
// row suất chiếu bị khóa FOR UPDATE để serialize các đơn cùng suất
func CreateBooking(c *fiber.Ctx) error {
	db := database.DB
	input := c.Locals("input").(model.CreateBookingInput)
	holder := resolveHolder(c, input.SessionId)

	claim, loggedIn := helper.GetInfoUserFromToken(c)

	if seat, dup := helper.HasDuplicateSeat(input.Seats); dup {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.INVALID_INPUT,
			fmt.Errorf("ghế %s bị lặp", seat), constants.ERR_INVALID_INPUT)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, tx.Error)
	}

	var showtime model.Showtime
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Room").Preload("Room.RoomType").Preload("Movie").
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

	if showtime.SeatsAvailable < len(input.Seats) {
		tx.Rollback()
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.INSUFFICIENT_SEATS,
			fmt.Errorf("còn %d ghế", showtime.SeatsAvailable), constants.ERR_CONFLICT)
	}

	if seat, bad := helper.FirstInvalidSeat(input.Seats, showtime.Room.SeatMap); bad {
		tx.Rollback()
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.SEAT_NOT_IN_ROOM,
			fmt.Errorf("ghế %s", seat), constants.ERR_INVALID_INPUT)
	}

	// Ghế mình đang giữ vẫn mua được, ghế của người khác thì không
	occupied, err := helper.OccupiedSeatsExcluding(tx, showtime.ID, holder)
	if err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if seat, taken := helper.FirstUnavailable(input.Seats, occupied); taken {
		tx.Rollback()
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.SEAT_UNAVAILABLE,
			fmt.Errorf("ghế %s", seat), constants.ERR_CONFLICT)
	}

	// Tính giá từng ghế, lỗi dữ liệu giá thì fallback basePrice cho cả đơn
	priceDetails, subtotal, err := helper.ResolvePricing(tx, &showtime, input.Seats)
	if err != nil {
		log.Printf("Lỗi tính giá, fallback basePrice: %v", err)
		subtotal = showtime.Room.RoomType.BasePrice * float64(len(input.Seats))
		priceDetails = nil
	}

	// Khuyến mãi lỗi không chặn đơn, chỉ bỏ qua và báo lại cho client
	var promo *model.Promotion
	var promoWarning string
	discount := 0.0
	if input.PromotionCode != "" {
		// Mã lưu dạng in hoa, tra cứu phải khớp
		promo, err = helper.FindValidPromotion(tx, strings.ToUpper(input.PromotionCode), subtotal)
		if err != nil {
			if errors.Is(err, helper.ErrPromotionNotFound) || errors.Is(err, helper.ErrMinimumPurchase) {
				promoWarning = constants.PROMOTION_NOT_FOUND
				if errors.Is(err, helper.ErrMinimumPurchase) {
					promoWarning = constants.PROMOTION_MIN_PURCHASE
				}
				promo = nil
			} else {
				tx.Rollback()
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
			}
		}

		if promo != nil {
			ok, err := helper.ConsumePromotion(tx, promo.ID)
			if err != nil {
				tx.Rollback()
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
			}
			if !ok {
				// Promo vừa chạm trần ở đơn khác
				promoWarning = constants.PROMOTION_NOT_FOUND
				promo = nil
			} else {
				discount = helper.PromotionDiscount(*promo, subtotal)
			}
		}
	}

	taxable := subtotal - discount
	taxAmount := taxable * constants.TAX_RATE
	totalAmount := taxable + taxAmount

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}
	now := time.Now().UTC()

	var userId *uint
	if loggedIn {
		userId = &claim.UserId
	}

	invoice := model.Invoice{
		InvoiceNumber:  "INV-" + uuid.New().String()[:8],
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      taxAmount,
		TotalAmount:    totalAmount,
		Status:         "paid",
		PaymentMethod:  paymentMethod,
		PaymentDate:    &now,
		CustomerName:   input.CustomerName,
		CustomerEmail:  input.Email,
		UserId:         userId,
	}
	if err := tx.Create(&invoice).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	booking := model.Booking{
		PublicCode:   "ORD-" + uuid.New().String()[:8],
		TicketNumber: "TKT-" + uuid.New().String()[:10],
		Seats:        model.SeatList(input.Seats),
		TotalPrice:   totalAmount,
		Status:       "confirmed",
		CustomerName: input.CustomerName,
		Email:        input.Email,
		Phone:        input.Phone,
		UserId:       userId,
		ShowtimeId:   showtime.ID,
		InvoiceId:    &invoice.ID,
	}
	if promo != nil {
		booking.PromotionId = &promo.ID
	}
	if err := tx.Create(&booking).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// Trừ quầy ghế có điều kiện chặn âm ngay trong câu UPDATE
	result := tx.Model(&model.Showtime{}).
		Where("id = ? AND seats_available >= ?", showtime.ID, len(input.Seats)).
		Update("seats_available", gorm.Expr("seats_available - ?", len(input.Seats)))
	if result.Error != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.INSUFFICIENT_SEATS,
			errors.New("seats_available guard"), constants.ERR_CONFLICT)
	}

	// Xóa các lượt giữ dính tới ghế vừa bán
	if err := releaseReservationsCovering(tx, showtime.ID, input.Seats); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	go PublishSeatChange(showtime.ID)

	// Email chỉ chạy sau commit, lỗi email không làm hỏng đơn
	invoiceEmailSent := false
	ticketEmailSent := false
	if input.Email != "" {
		seatsJoined := strings.Join(input.Seats, ", ")
		showtimeStr := showtime.StartTime.Format("02/01/2006 15:04")

		if err := utils.SendInvoiceEmail(input.Email, utils.InvoiceEmailData{
			InvoiceNumber: invoice.InvoiceNumber,
			CustomerName:  input.CustomerName,
			MovieTitle:    showtime.Movie.Title,
			Showtime:      showtimeStr,
			Seats:         seatsJoined,
			Subtotal:      subtotal,
			TaxAmount:     taxAmount,
			TotalAmount:   totalAmount,
			PaymentMethod: paymentMethod,
		}); err != nil {
			log.Printf("Lỗi gửi email hóa đơn: %v", err)
		} else {
			invoiceEmailSent = true
		}

		qrBytes, qrErr := utils.GenerateQRCode(booking.TicketNumber, 256)
		if qrErr != nil {
			qrBytes = nil
		}
		if err := utils.SendTicketEmail(input.Email, utils.TicketEmailData{
			TicketNumber: booking.TicketNumber,
			CustomerName: input.CustomerName,
			MovieTitle:   showtime.Movie.Title,
			RoomName:     showtime.Room.Name,
			Showtime:     showtimeStr,
			Seats:        seatsJoined,
		}, qrBytes); err != nil {
			log.Printf("Lỗi gửi email vé: %v", err)
		} else {
			ticketEmailSent = true
		}
	}

	response := fiber.Map{
		"booking":          booking,
		"invoice":          invoice,
		"priceDetails":     priceDetails,
		"discount":         discount,
		"invoiceEmailSent": invoiceEmailSent,
		"ticketEmailSent":  ticketEmailSent,
	}
	if promoWarning != "" {
		response["promotionWarning"] = promoWarning
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Thanh toán và tạo vé thành công", response)
}

// releaseReservationsCovering xóa lượt giữ có ghế giao với ghế vừa bán.
// Seats là JSONB nên phải nạp về và so trong Go.
func releaseReservationsCovering(tx *gorm.DB, showtimeId uint, sold []string) error {
	soldSet := make(map[string]struct{}, len(sold))
	for _, s := range sold {
		soldSet[s] = struct{}{}
	}

	var reservations []model.SeatReservation
	if err := tx.Where("showtime_id = ?", showtimeId).Find(&reservations).Error; err != nil {
		return err
	}

	var ids []uint
	for _, r := range reservations {
		for _, s := range r.Seats {
			if _, ok := soldSet[s]; ok {
				ids = append(ids, r.ID)
				break
			}
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return tx.Where("id IN ?", ids).Delete(&model.SeatReservation{}).Error
}

// CancelBooking hủy vé trước giờ chiếu ít nhất 1 tiếng, hoàn ghế và
// hoàn lượt dùng khuyến mãi trong cùng một transaction
func CancelBooking(c *fiber.Ctx) error {
	db := database.DB
	bookingId := uint(c.Locals("inputId").(int))

	claim, ok := helper.GetInfoUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED, errors.New("no token"))
	}

	tx := db.Begin()
	if tx.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, tx.Error)
	}

	var booking model.Booking
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Showtime").Preload("Showtime.Movie").
		First(&booking, bookingId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.BOOKING_NOT_FOUND, err, constants.ERR_NOT_FOUND)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	isOwner := booking.UserId != nil && *booking.UserId == claim.UserId
	if !isOwner && !claim.IsAdmin {
		tx.Rollback()
		return utils.ErrorResponseHaveKey(c, fiber.StatusForbidden, constants.BOOKING_NOT_OWNER,
			errors.New("not owner"), constants.ERR_POLICY_VIOLATION)
	}

	if booking.Status == "cancelled" {
		tx.Rollback()
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.BOOKING_CANCELLED,
			errors.New("already cancelled"), constants.ERR_CONFLICT)
	}
	if booking.Status == "used" {
		tx.Rollback()
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.BOOKING_USED,
			errors.New("already used"), constants.ERR_CONFLICT)
	}

	if time.Until(booking.Showtime.StartTime) < CancelCutoff {
		tx.Rollback()
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.TOO_LATE_TO_CANCEL,
			errors.New("cancel cutoff"), constants.ERR_POLICY_VIOLATION)
	}

	now := time.Now().UTC()
	if err := tx.Model(&booking).Updates(map[string]any{
		"status":       "cancelled",
		"cancelled_at": now,
	}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if booking.InvoiceId != nil {
		if err := tx.Model(&model.Invoice{}).
			Where("id = ?", *booking.InvoiceId).
			Update("status", "cancelled").Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	// Hoàn quầy ghế, không vượt capacity phòng
	var room model.Room
	if err := tx.First(&room, booking.Showtime.RoomId).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	result := tx.Model(&model.Showtime{}).
		Where("id = ? AND seats_available + ? <= ?", booking.ShowtimeId, len(booking.Seats), room.Capacity).
		Update("seats_available", gorm.Expr("seats_available + ?", len(booking.Seats)))
	if result.Error != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		// Hoàn ghế vượt capacity là dữ liệu đã hỏng, không được commit nửa chừng
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR,
			errors.New("seats_available restore guard"))
	}

	if booking.PromotionId != nil {
		if err := helper.RefundPromotion(tx, *booking.PromotionId); err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	go PublishSeatChange(booking.ShowtimeId)

	emailSent := false
	if booking.Email != "" {
		if err := utils.SendCancellationEmail(booking.Email, utils.CancellationEmailData{
			TicketNumber: booking.TicketNumber,
			CustomerName: booking.CustomerName,
			MovieTitle:   booking.Showtime.Movie.Title,
			Showtime:     booking.Showtime.StartTime.Format("02/01/2006 15:04"),
			Seats:        strings.Join(booking.Seats, ", "),
			TotalAmount:  booking.TotalPrice,
		}); err != nil {
			log.Printf("Lỗi gửi email hủy vé: %v", err)
		} else {
			emailSent = true
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Hủy vé thành công", fiber.Map{
		"bookingId":   booking.ID,
		"status":      "cancelled",
		"cancelledAt": now,
		"emailSent":   emailSent,
	})
}

// GetUserBookings danh sách vé của user đăng nhập
func GetUserBookings(c *fiber.Ctx) error {
	db := database.DB

	claim, ok := helper.GetInfoUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED, errors.New("no token"))
	}

	filter := model.FilterBookingInput{}
	if f, ok := c.Locals("filter").(model.FilterBookingInput); ok {
		filter = f
	}

	query := db.Model(&model.Booking{}).Where("user_id = ?", claim.UserId)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ShowtimeId > 0 {
		query = query.Where("showtime_id = ?", filter.ShowtimeId)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var bookings []model.Booking
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).
		Preload("Showtime").Preload("Showtime.Movie").Preload("Showtime.Room").
		Preload("Invoice").
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Danh sách vé", model.ResponseCustom{
		Rows:       bookings,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

// GetBookingById chi tiết một vé, chỉ chủ vé hoặc admin xem được
func GetBookingById(c *fiber.Ctx) error {
	db := database.DB
	bookingId := uint(c.Locals("inputId").(int))

	claim, ok := helper.GetInfoUserFromToken(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED, errors.New("no token"))
	}

	var booking model.Booking
	if err := db.Preload("Showtime").Preload("Showtime.Movie").Preload("Showtime.Room").
		Preload("Invoice").Preload("Promotion").
		First(&booking, bookingId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.BOOKING_NOT_FOUND, err, constants.ERR_NOT_FOUND)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	isOwner := booking.UserId != nil && *booking.UserId == claim.UserId
	if !isOwner && !claim.IsAdmin {
		return utils.ErrorResponseHaveKey(c, fiber.StatusForbidden, constants.BOOKING_NOT_OWNER,
			errors.New("not owner"), constants.ERR_POLICY_VIOLATION)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Chi tiết vé", booking)
}
