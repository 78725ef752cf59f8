package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/ecoradom4/cine-backend/database"
	"github.com/ecoradom4/cine-backend/helper"
	"github.com/ecoradom4/cine-backend/model"
	"github.com/ecoradom4/cine-backend/router"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupTestApp kết nối DB test và dựng app đầy đủ route.
// Bỏ qua test nếu không có TEST_DATABASE_URL.
func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Branch{},
		&model.RoomType{},
		&model.SeatType{},
		&model.Room{},
		&model.Movie{},
		&model.Showtime{},
		&model.SeatReservation{},
		&model.PricingRule{},
		&model.Promotion{},
		&model.Invoice{},
		&model.Booking{},
	))

	database.DB = db

	os.Setenv("JWT_SECRET", "test-secret")
	helper.JwtSecret = []byte("test-secret")

	app := fiber.New()
	router.SetupRoutes(app)
	return app, db
}

type fixture struct {
	Movie    model.Movie
	Room     model.Room
	Showtime model.Showtime
}

// newShowtimeFixture tạo phòng 4 ghế (A1 A2 B1 B2, hàng B là VIP)
// và một suất chiếu ngày mai
func newShowtimeFixture(t *testing.T, db *gorm.DB, basePrice float64) fixture {
	t.Helper()
	tag := uuid.New().String()[:8]

	seatType := model.SeatType{Name: "standard-" + tag, PriceMultiplier: 1}
	require.NoError(t, db.Create(&seatType).Error)

	roomType := model.RoomType{Name: "Standard-" + tag, BasePrice: basePrice}
	require.NoError(t, db.Create(&roomType).Error)

	branch := model.Branch{Name: "Branch " + tag, Slug: "branch-" + tag}
	require.NoError(t, db.Create(&branch).Error)

	room := model.Room{
		Name:     "Room " + tag,
		Capacity: 4,
		SeatMap: model.SeatMap{
			"A1": {Type: "standard-" + tag},
			"A2": {Type: "standard-" + tag},
			"B1": {Type: "standard-" + tag},
			"B2": {Type: "standard-" + tag},
		},
		RoomTypeId: roomType.ID,
		BranchId:   branch.ID,
	}
	require.NoError(t, db.Create(&room).Error)

	movie := model.Movie{Title: "Movie " + tag, Duration: 120, Slug: "movie-" + tag}
	require.NoError(t, db.Create(&movie).Error)

	start := time.Now().UTC().Add(24 * time.Hour)
	showtime := model.Showtime{
		PublicCode:     "SHW-" + tag,
		StartTime:      start,
		EndTime:        start.Add(2 * time.Hour),
		Status:         "scheduled",
		Format:         "2D",
		SeatsAvailable: room.Capacity,
		MovieId:        movie.ID,
		RoomId:         room.ID,
	}
	require.NoError(t, db.Create(&showtime).Error)

	return fixture{Movie: movie, Room: room, Showtime: showtime}
}

func newTestUser(t *testing.T, db *gorm.DB) (model.User, string) {
	t.Helper()
	tag := uuid.New().String()[:8]

	hash, err := helper.HashPassword("password123")
	require.NoError(t, err)
	user := model.User{
		Name:     "User " + tag,
		Email:    fmt.Sprintf("user-%s@test.local", tag),
		Password: hash,
		Role:     "customer",
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := helper.GenerateAccessToken(model.TokenClaim{
		UserId: user.ID,
		Email:  user.Email,
	})
	require.NoError(t, err)
	return user, token
}

func newAdminUser(t *testing.T, db *gorm.DB) (model.User, string) {
	t.Helper()
	tag := uuid.New().String()[:8]

	hash, err := helper.HashPassword("password123")
	require.NoError(t, err)
	user := model.User{
		Name:     "Admin " + tag,
		Email:    fmt.Sprintf("admin-%s@test.local", tag),
		Password: hash,
		Role:     "admin",
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := helper.GenerateAccessToken(model.TokenClaim{
		UserId:  user.ID,
		Email:   user.Email,
		IsAdmin: true,
	})
	require.NoError(t, err)
	return user, token
}

type apiResponse struct {
	Status int
	Body   map[string]any
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) apiResponse {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	parsed := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed), string(raw))
	}
	return apiResponse{Status: resp.StatusCode, Body: parsed}
}

func dataField(t *testing.T, resp apiResponse, key string) any {
	t.Helper()
	data, ok := resp.Body["data"].(map[string]any)
	require.True(t, ok, "response has no data object: %v", resp.Body)
	return data[key]
}

func reloadShowtime(t *testing.T, db *gorm.DB, id uint) model.Showtime {
	t.Helper()
	var showtime model.Showtime
	require.NoError(t, db.First(&showtime, id).Error)
	return showtime
}
