package validate

import (
	"github.com/ecoradom4/cine-backend/model"
	"github.com/ecoradom4/cine-backend/utils"
	"github.com/gofiber/fiber/v2"
)

func RegisterValidate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.RegisterInput
		if err := parseAndValidate(c, &input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu đăng ký không hợp lệ", err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func LoginValidate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.LoginInput
		if err := parseAndValidate(c, &input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu đăng nhập không hợp lệ", err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}
