package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/ecoradom4/cine-backend/constants"
	"github.com/ecoradom4/cine-backend/database"
	"github.com/ecoradom4/cine-backend/helper"
	"github.com/ecoradom4/cine-backend/model"
	"github.com/ecoradom4/cine-backend/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func CreatePromotion(c *fiber.Ctx) error {
	db := database.DB
	input := c.Locals("input").(model.CreatePromotionInput)

	var promo model.Promotion
	if err := copier.Copy(&promo, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	promo.Code = strings.ToUpper(promo.Code)
	promo.IsActive = true
	promo.UsedCount = 0

	if err := db.Create(&promo).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Tạo khuyến mãi thành công", promo)
}

func GetPromotions(c *fiber.Ctx) error {
	db := database.DB

	var promotions model.Promotions
	if err := db.Order("valid_until DESC").Find(&promotions).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Danh sách khuyến mãi", promotions)
}

func GetPromotionById(c *fiber.Ctx) error {
	db := database.DB
	promoId := uint(c.Locals("inputId").(int))

	var promo model.Promotion
	if err := db.First(&promo, promoId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.PROMOTION_NOT_FOUND, err, constants.ERR_NOT_FOUND)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Chi tiết khuyến mãi", promo)
}

func UpdatePromotion(c *fiber.Ctx) error {
	db := database.DB
	promoId := uint(c.Locals("inputId").(int))
	input := c.Locals("input").(model.UpdatePromotionInput)

	var promo model.Promotion
	if err := db.First(&promo, promoId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.PROMOTION_NOT_FOUND, err, constants.ERR_NOT_FOUND)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := copier.CopyWithOption(&promo, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := db.Save(&promo).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Cập nhật khuyến mãi thành công", promo)
}

// DeletePromotion không xóa khuyến mãi đã có vé dùng, chỉ tắt
func DeletePromotion(c *fiber.Ctx) error {
	db := database.DB
	promoId := uint(c.Locals("inputId").(int))

	var promo model.Promotion
	if err := db.First(&promo, promoId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.PROMOTION_NOT_FOUND, err, constants.ERR_NOT_FOUND)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var inUse int64
	if err := db.Model(&model.Booking{}).Where("promotion_id = ?", promo.ID).Count(&inUse).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if inUse > 0 {
		if err := db.Model(&promo).Update("is_active", false).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		return utils.SuccessResponse(c, fiber.StatusOK, constants.PROMOTION_IN_USE+", đã chuyển sang inactive", promo)
	}

	if err := db.Delete(&promo).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Đã xóa khuyến mãi", fiber.Map{"id": promoId})
}

// ValidatePromotion kiểm tra mã và trả số tiền giảm dự kiến, không tiêu usage
func ValidatePromotion(c *fiber.Ctx) error {
	db := database.DB
	input := c.Locals("input").(model.ValidatePromotionInput)

	var promo model.Promotion
	if err := db.Where("code = ?", strings.ToUpper(input.Code)).First(&promo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.PROMOTION_NOT_FOUND, err, constants.ERR_NOT_FOUND)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := helper.PromotionUsable(promo, input.Subtotal, time.Now().UTC()); err != nil {
		status := fiber.StatusConflict
		message := constants.PROMOTION_NOT_FOUND
		if errors.Is(err, helper.ErrMinimumPurchase) {
			message = constants.PROMOTION_MIN_PURCHASE
		}
		return utils.ErrorResponseHaveKey(c, status, message, err, constants.ERR_POLICY_VIOLATION)
	}

	discount := helper.PromotionDiscount(promo, input.Subtotal)
	return utils.SuccessResponse(c, fiber.StatusOK, "Mã khuyến mãi hợp lệ", fiber.Map{
		"code":     promo.Code,
		"type":     promo.Type,
		"discount": discount,
		"subtotal": input.Subtotal,
		"total":    input.Subtotal - discount,
	})
}
