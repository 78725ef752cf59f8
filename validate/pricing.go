package validate

import (
	"errors"

	"github.com/ecoradom4/cine-backend/constants"
	"github.com/ecoradom4/cine-backend/database"
	"github.com/ecoradom4/cine-backend/model"
	"github.com/ecoradom4/cine-backend/utils"
	"github.com/gofiber/fiber/v2"
)

func CreatePricingRuleValidate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreatePricingRuleInput
		if err := parseAndValidate(c, &input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu rule giá không hợp lệ", err)
		}

		// Loại phòng phải tồn tại
		var roomType model.RoomType
		if err := database.DB.First(&roomType, input.RoomTypeId).Error; err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Loại phòng không tồn tại", err, "roomTypeId")
		}

		// Rule phải có multiplier hoặc fixedPrice
		if input.Multiplier == nil && input.FixedPrice == nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, errors.New("cần multiplier hoặc fixedPrice"))
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func UpdatePricingRuleValidate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdatePricingRuleInput
		if err := parseAndValidate(c, &input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu rule giá không hợp lệ", err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func CalculatePriceValidate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CalculatePriceInput
		if err := parseAndValidate(c, &input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu tính giá không hợp lệ", err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}
