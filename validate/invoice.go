package validate

import (
	"github.com/ecoradom4/cine-backend/model"
	"github.com/ecoradom4/cine-backend/utils"
	"github.com/gofiber/fiber/v2"
)

func UpdateInvoiceStatusValidate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateInvoiceStatusInput
		if err := parseAndValidate(c, &input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu hóa đơn không hợp lệ", err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func FilterInvoiceValidate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.FilterInvoiceInput
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
