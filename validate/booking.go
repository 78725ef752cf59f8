package validate

import (
	"github.com/ecoradom4/cine-backend/model"
	"github.com/ecoradom4/cine-backend/utils"
	"github.com/gofiber/fiber/v2"
)

func CreateBookingValidate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateBookingInput
		if err := parseAndValidate(c, &input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu đặt vé không hợp lệ", err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func FilterBookingValidate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.FilterBookingInput
		if err := c.QueryParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Bộ lọc không hợp lệ", err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Bộ lọc không hợp lệ", err)
		}

		c.Locals("filter", input)
		return c.Next()
	}
}
