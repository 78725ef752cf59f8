package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/ecoradom4/cine-backend/constants"
	"github.com/ecoradom4/cine-backend/database"
	"github.com/ecoradom4/cine-backend/model"
	"github.com/ecoradom4/cine-backend/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Chuyển trạng thái hóa đơn hợp lệ
var invoiceTransitions = map[string][]string{
	"draft":     {"issued", "cancelled"},
	"issued":    {"paid", "cancelled"},
	"paid":      {"refunded", "cancelled"},
	"cancelled": {},
	"refunded":  {},
}

func canTransition(from, to string) bool {
	for _, allowed := range invoiceTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func GetInvoices(c *fiber.Ctx) error {
	db := database.DB
	filter := model.FilterInvoiceInput{}
	if f, ok := c.Locals("filter").(model.FilterInvoiceInput); ok {
		filter = f
	}

	query := db.Model(&model.Invoice{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.StartDate != "" {
		if day, err := time.Parse("2006-01-02", filter.StartDate); err == nil {
			query = query.Where("created_at >= ?", day)
		}
	}
	if filter.EndDate != "" {
		if day, err := time.Parse("2006-01-02", filter.EndDate); err == nil {
			query = query.Where("created_at < ?", day.Add(24*time.Hour))
		}
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var invoices []model.Invoice
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).
		Order("created_at DESC").
		Find(&invoices).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Danh sách hóa đơn", model.ResponseCustom{
		Rows:       invoices,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

func GetInvoiceById(c *fiber.Ctx) error {
	db := database.DB
	invoiceId := uint(c.Locals("inputId").(int))

	var invoice model.Invoice
	if err := db.Preload("User").First(&invoice, invoiceId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.INVOICE_NOT_FOUND, err, constants.ERR_NOT_FOUND)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Chi tiết hóa đơn", invoice)
}

// UpdateInvoiceStatus chuyển trạng thái có kiểm soát, set paymentDate khi paid
func UpdateInvoiceStatus(c *fiber.Ctx) error {
	db := database.DB
	invoiceId := uint(c.Locals("inputId").(int))
	input := c.Locals("input").(model.UpdateInvoiceStatusInput)

	var invoice model.Invoice
	if err := db.First(&invoice, invoiceId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.INVOICE_NOT_FOUND, err, constants.ERR_NOT_FOUND)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if !canTransition(invoice.Status, input.Status) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict,
			"Không thể chuyển hóa đơn từ "+invoice.Status+" sang "+input.Status,
			errors.New("invalid transition"), constants.ERR_CONFLICT)
	}

	updates := map[string]any{"status": input.Status}
	if input.PaymentMethod != "" {
		updates["payment_method"] = input.PaymentMethod
	}
	if input.Status == "paid" {
		updates["payment_date"] = time.Now().UTC()
	}

	if err := db.Model(&invoice).Updates(updates).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Cập nhật hóa đơn thành công", invoice)
}

// ResendInvoiceEmail gửi lại email hóa đơn theo booking gắn với hóa đơn
func ResendInvoiceEmail(c *fiber.Ctx) error {
	db := database.DB
	invoiceId := uint(c.Locals("inputId").(int))

	var invoice model.Invoice
	if err := db.First(&invoice, invoiceId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.INVOICE_NOT_FOUND, err, constants.ERR_NOT_FOUND)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if invoice.CustomerEmail == "" {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Hóa đơn không có email",
			errors.New("no email on invoice"), constants.ERR_INVALID_INPUT)
	}

	var booking model.Booking
	if err := db.Preload("Showtime").Preload("Showtime.Movie").
		Where("invoice_id = ?", invoice.ID).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.BOOKING_NOT_FOUND, err, constants.ERR_NOT_FOUND)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := utils.SendInvoiceEmail(invoice.CustomerEmail, utils.InvoiceEmailData{
		InvoiceNumber: invoice.InvoiceNumber,
		CustomerName:  invoice.CustomerName,
		MovieTitle:    booking.Showtime.Movie.Title,
		Showtime:      booking.Showtime.StartTime.Format("02/01/2006 15:04"),
		Seats:         strings.Join(booking.Seats, ", "),
		Subtotal:      invoice.Subtotal,
		TaxAmount:     invoice.TaxAmount,
		TotalAmount:   invoice.TotalAmount,
		PaymentMethod: invoice.PaymentMethod,
	}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Gửi email thất bại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Đã gửi lại hóa đơn", fiber.Map{
		"invoiceNumber": invoice.InvoiceNumber,
		"email":         invoice.CustomerEmail,
	})
}
