package validate

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ecoradom4/cine-backend/constants"
	"github.com/ecoradom4/cine-backend/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.Atoi(params)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, errors.New("params invalid"))
		}

		// Save input to context locals
		c.Locals("inputId", valueKey)

		// Continue to next handler
		return c.Next()
	}
}

// parseAndValidate dùng chung cho các middleware body input
func parseAndValidate(c *fiber.Ctx, input any) error {
	if err := c.BodyParser(input); err != nil {
		return fmt.Errorf("không thể phân tích yêu cầu: %w", err)
	}
	if err := validate.Struct(input); err != nil {
		return err
	}
	return nil
}
