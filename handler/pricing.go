package handler

import (
	"errors"

	"github.com/ecoradom4/cine-backend/constants"
	"github.com/ecoradom4/cine-backend/database"
	"github.com/ecoradom4/cine-backend/helper"
	"github.com/ecoradom4/cine-backend/model"
	"github.com/ecoradom4/cine-backend/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func CreatePricingRule(c *fiber.Ctx) error {
	db := database.DB
	input := c.Locals("input").(model.CreatePricingRuleInput)

	var rule model.PricingRule
	if err := copier.Copy(&rule, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	rule.IsActive = true

	if err := db.Create(&rule).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Tạo rule giá thành công", rule)
}

func GetPricingRules(c *fiber.Ctx) error {
	db := database.DB

	var rules []model.PricingRule
	if err := db.Preload("RoomType").Preload("SeatType").
		Order("id ASC").
		Find(&rules).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Danh sách rule giá", rules)
}

func UpdatePricingRule(c *fiber.Ctx) error {
	db := database.DB
	ruleId := uint(c.Locals("inputId").(int))
	input := c.Locals("input").(model.UpdatePricingRuleInput)

	var rule model.PricingRule
	if err := db.First(&rule, ruleId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, "Rule giá không tồn tại", err, constants.ERR_NOT_FOUND)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := copier.CopyWithOption(&rule, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := db.Save(&rule).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Cập nhật rule giá thành công", rule)
}

func DeletePricingRule(c *fiber.Ctx) error {
	db := database.DB
	ruleId := uint(c.Locals("inputId").(int))

	result := db.Delete(&model.PricingRule{}, ruleId)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, "Rule giá không tồn tại",
			errors.New("not found"), constants.ERR_NOT_FOUND)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Đã xóa rule giá", fiber.Map{"id": ruleId})
}

// CalculatePrice xem trước giá từng ghế của một suất chiếu, không ghi gì
func CalculatePrice(c *fiber.Ctx) error {
	db := database.DB
	input := c.Locals("input").(model.CalculatePriceInput)

	var showtime model.Showtime
	if err := db.Preload("Room").Preload("Room.RoomType").
		First(&showtime, input.ShowtimeId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.SHOWTIME_NOT_FOUND, err, constants.ERR_NOT_FOUND)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if seat, bad := helper.FirstInvalidSeat(input.Seats, showtime.Room.SeatMap); bad {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.SEAT_NOT_IN_ROOM,
			errors.New("ghế "+seat), constants.ERR_INVALID_INPUT)
	}

	details, subtotal, err := helper.ResolvePricing(db, &showtime, input.Seats)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	taxAmount := subtotal * constants.TAX_RATE
	return utils.SuccessResponse(c, fiber.StatusOK, "Bảng giá", fiber.Map{
		"seats":       details,
		"subtotal":    subtotal,
		"taxAmount":   taxAmount,
		"totalAmount": subtotal + taxAmount,
	})
}
