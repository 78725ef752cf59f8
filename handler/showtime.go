package handler

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ecoradom4/cine-backend/constants"
	"github.com/ecoradom4/cine-backend/database"
	"github.com/ecoradom4/cine-backend/model"
	"github.com/ecoradom4/cine-backend/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const billboardCacheKey = "billboard:v1"
const billboardCacheTTL = 60 * time.Second

// CreateShowtime tạo suất chiếu mới, giờ kết thúc tính theo thời lượng phim
func CreateShowtime(c *fiber.Ctx) error {
	db := database.DB
	input := c.Locals("input").(model.CreateShowtimeInput)
	movie := c.Locals("movie").(model.Movie)
	room := c.Locals("room").(model.Room)

	if input.StartTime.Before(time.Now().UTC()) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, constants.INVALID_INPUT,
			errors.New("giờ chiếu phải ở tương lai"), "startTime")
	}

	endTime := input.StartTime.Add(time.Duration(movie.Duration) * time.Minute)

	// Không cho trùng giờ với suất khác cùng phòng
	var overlap int64
	if err := db.Model(&model.Showtime{}).
		Where("room_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			room.ID, []string{"scheduled", "active"}, endTime, input.StartTime).
		Count(&overlap).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if overlap > 0 {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Phòng đã có suất chiếu trùng giờ",
			errors.New("overlapping showtime"), constants.ERR_CONFLICT)
	}

	showtime := model.Showtime{
		PublicCode:     "SHW-" + uuid.New().String()[:8],
		StartTime:      input.StartTime.UTC(),
		EndTime:        endTime,
		Status:         "scheduled",
		Format:         input.Format,
		AudioType:      input.AudioType,
		SeatsAvailable: room.Capacity,
		MovieId:        movie.ID,
		RoomId:         room.ID,
	}
	if err := db.Create(&showtime).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// Suất mới thì billboard cache cũ không còn đúng
	redisClient.Del(context.Background(), billboardCacheKey)

	return utils.SuccessResponse(c, fiber.StatusCreated, "Tạo suất chiếu thành công", showtime)
}

// GetShowtimes danh sách suất chiếu có lọc và phân trang
func GetShowtimes(c *fiber.Ctx) error {
	db := database.DB
	filter := model.FilterShowtimeInput{}
	if f, ok := c.Locals("filter").(model.FilterShowtimeInput); ok {
		filter = f
	}

	query := db.Model(&model.Showtime{})
	if filter.MovieId > 0 {
		query = query.Where("movie_id = ?", filter.MovieId)
	}
	if filter.RoomId > 0 {
		query = query.Where("room_id = ?", filter.RoomId)
	}
	if filter.BranchId > 0 {
		query = query.Joins("JOIN rooms ON rooms.id = showtimes.room_id").
			Where("rooms.branch_id = ?", filter.BranchId)
	}
	if filter.Status != "" {
		query = query.Where("showtimes.status = ?", filter.Status)
	}
	if filter.Format != "" {
		query = query.Where("format = ?", filter.Format)
	}
	if filter.AudioType != "" {
		query = query.Where("audio_type = ?", filter.AudioType)
	}
	if filter.Date != "" {
		if day, err := time.Parse("2006-01-02", filter.Date); err == nil {
			query = query.Where("start_time >= ? AND start_time < ?", day, day.Add(24*time.Hour))
		}
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var showtimes []model.Showtime
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).
		Preload("Movie").Preload("Room").Preload("Room.RoomType").Preload("Room.Branch").
		Order("start_time ASC").
		Find(&showtimes).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Danh sách suất chiếu", model.ResponseCustom{
		Rows:       showtimes,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

func GetShowtimeById(c *fiber.Ctx) error {
	db := database.DB
	showtimeId := uint(c.Locals("inputId").(int))

	var showtime model.Showtime
	if err := db.Preload("Movie").Preload("Room").Preload("Room.RoomType").Preload("Room.Branch").
		First(&showtime, showtimeId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, constants.SHOWTIME_NOT_FOUND, err, constants.ERR_NOT_FOUND)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Chi tiết suất chiếu", showtime)
}

// BillboardEntry một phim kèm các suất chiếu sắp tới
type BillboardEntry struct {
	Movie     model.Movie      `json:"movie"`
	Showtimes []model.Showtime `json:"showtimes"`
}

// GetBillboard trả phim đang chiếu kèm suất sắp tới, cache Redis 60s
func GetBillboard(c *fiber.Ctx) error {
	db := database.DB
	ctx := context.Background()

	if cached, err := redisClient.Get(ctx, billboardCacheKey).Result(); err == nil {
		var entries []BillboardEntry
		if json.Unmarshal([]byte(cached), &entries) == nil {
			return utils.SuccessResponse(c, fiber.StatusOK, "Phim đang chiếu", fiber.Map{
				"billboard": entries,
				"cached":    true,
			})
		}
	}

	var movies model.Movies
	if err := db.Where("is_showing = ?", true).Find(&movies).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	now := time.Now().UTC()
	entries := make([]BillboardEntry, 0, len(movies))
	for _, movie := range movies {
		var showtimes []model.Showtime
		if err := db.Preload("Room").Preload("Room.Branch").
			Where("movie_id = ? AND status = ? AND start_time > ?", movie.ID, "scheduled", now).
			Order("start_time ASC").
			Limit(20).
			Find(&showtimes).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if len(showtimes) > 0 {
			entries = append(entries, BillboardEntry{Movie: movie, Showtimes: showtimes})
		}
	}

	if payload, err := json.Marshal(entries); err == nil {
		redisClient.Set(ctx, billboardCacheKey, payload, billboardCacheTTL)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Phim đang chiếu", fiber.Map{
		"billboard": entries,
		"cached":    false,
	})
}
