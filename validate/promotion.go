package validate

import (
	"errors"

	"github.com/ecoradom4/cine-backend/constants"
	"github.com/ecoradom4/cine-backend/database"
	"github.com/ecoradom4/cine-backend/model"
	"github.com/ecoradom4/cine-backend/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CreatePromotionValidate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreatePromotionInput
		if err := parseAndValidate(c, &input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu khuyến mãi không hợp lệ", err)
		}

		// Mã khuyến mãi phải duy nhất
		var existing model.Promotion
		err := database.DB.Where("code = ?", input.Code).First(&existing).Error
		if err == nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, constants.PROMOTION_CODE_EXISTS, errors.New("duplicate code"), "code")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func UpdatePromotionValidate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdatePromotionInput
		if err := parseAndValidate(c, &input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu khuyến mãi không hợp lệ", err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func ValidatePromotionValidate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ValidatePromotionInput
		if err := parseAndValidate(c, &input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ", err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}
