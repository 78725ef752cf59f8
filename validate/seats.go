package validate

import (
	"github.com/ecoradom4/cine-backend/model"
	"github.com/ecoradom4/cine-backend/utils"
	"github.com/gofiber/fiber/v2"
)

func ReserveSeatsValidate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ReserveSeatsInput
		if err := parseAndValidate(c, &input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu giữ ghế không hợp lệ", err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func ReleaseSeatsValidate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ReleaseSeatsInput
		if err := parseAndValidate(c, &input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu trả ghế không hợp lệ", err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}
