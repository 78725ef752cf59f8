package validate

import (
	"github.com/ecoradom4/cine-backend/database"
	"github.com/ecoradom4/cine-backend/model"
	"github.com/ecoradom4/cine-backend/utils"
	"github.com/gofiber/fiber/v2"
)

func CreateShowtimeValidate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateShowtimeInput
		if err := parseAndValidate(c, &input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu suất chiếu không hợp lệ", err)
		}

		// Kiểm tra phim và phòng tồn tại
		var movie model.Movie
		if err := database.DB.First(&movie, input.MovieId).Error; err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Phim không tồn tại", err, "movieId")
		}
		var room model.Room
		if err := database.DB.First(&room, input.RoomId).Error; err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Phòng chiếu không tồn tại", err, "roomId")
		}

		c.Locals("input", input)
		c.Locals("movie", movie)
		c.Locals("room", room)
		return c.Next()
	}
}

func FilterShowtimeValidate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.FilterShowtimeInput
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
