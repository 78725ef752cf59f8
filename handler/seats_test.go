package handler_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/ecoradom4/cine-backend/handler"
	"github.com/ecoradom4/cine-backend/model"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveAndReleaseSeats(t *testing.T) {
	app, db := setupTestApp(t)
	fx := newShowtimeFixture(t, db, 50)

	resp := doJSON(t, app, "POST", "/api/v1/seats/reserve", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"A1", "A2"},
		"sessionId":  "sess-1",
	}, "")
	require.Equal(t, http.StatusCreated, resp.Status, resp.Body)
	assert.Equal(t, "sess-1", dataField(t, resp, "heldBy"))

	seatView := doJSON(t, app, "GET",
		fmt.Sprintf("/api/v1/showtimes/%d/seats", fx.Showtime.ID), nil, "")
	require.Equal(t, http.StatusOK, seatView.Status)
	seats := dataField(t, seatView, "seats").([]any)
	byName := map[string]string{}
	for _, s := range seats {
		m := s.(map[string]any)
		byName[m["seat"].(string)] = m["status"].(string)
	}
	assert.Equal(t, "reserved", byName["A1"])
	assert.Equal(t, "reserved", byName["A2"])
	assert.Equal(t, "available", byName["B1"])

	release := doJSON(t, app, "POST", "/api/v1/seats/release", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"sessionId":  "sess-1",
	}, "")
	require.Equal(t, http.StatusOK, release.Status)
	assert.Equal(t, true, dataField(t, release, "released"))

	// Trả lần hai không có gì để trả, vẫn 200
	release = doJSON(t, app, "POST", "/api/v1/seats/release", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"sessionId":  "sess-1",
	}, "")
	require.Equal(t, http.StatusOK, release.Status)
	assert.Equal(t, false, dataField(t, release, "released"))
}

func TestReserveConflictsWithOtherHolder(t *testing.T) {
	app, db := setupTestApp(t)
	fx := newShowtimeFixture(t, db, 50)

	first := doJSON(t, app, "POST", "/api/v1/seats/reserve", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"A1"},
		"sessionId":  "sess-a",
	}, "")
	require.Equal(t, http.StatusCreated, first.Status)

	second := doJSON(t, app, "POST", "/api/v1/seats/reserve", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"A1", "A2"},
		"sessionId":  "sess-b",
	}, "")
	assert.Equal(t, http.StatusConflict, second.Status, second.Body)
}

// Giữ lại đúng ghế mình đang giữ cũng bị coi là ghế không trống
func TestReserveSameSeatsAgainConflicts(t *testing.T) {
	app, db := setupTestApp(t)
	fx := newShowtimeFixture(t, db, 50)

	first := doJSON(t, app, "POST", "/api/v1/seats/reserve", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"A1"},
		"sessionId":  "sess-a",
	}, "")
	require.Equal(t, http.StatusCreated, first.Status)

	again := doJSON(t, app, "POST", "/api/v1/seats/reserve", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"A1"},
		"sessionId":  "sess-a",
	}, "")
	assert.Equal(t, http.StatusConflict, again.Status)
}

func TestReserveReplacesOwnHoldOnOtherSeats(t *testing.T) {
	app, db := setupTestApp(t)
	fx := newShowtimeFixture(t, db, 50)

	first := doJSON(t, app, "POST", "/api/v1/seats/reserve", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"A1"},
		"sessionId":  "sess-a",
	}, "")
	require.Equal(t, http.StatusCreated, first.Status)

	moved := doJSON(t, app, "POST", "/api/v1/seats/reserve", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"B1"},
		"sessionId":  "sess-a",
	}, "")
	require.Equal(t, http.StatusCreated, moved.Status, moved.Body)

	// Giữ cũ trên A1 phải bị thay thế
	var holds []model.SeatReservation
	require.NoError(t, db.Where("showtime_id = ? AND held_by = ?", fx.Showtime.ID, "sess-a").
		Find(&holds).Error)
	require.Len(t, holds, 1)
	assert.Equal(t, model.SeatList{"B1"}, holds[0].Seats)
}

func TestReserveInvalidSeat(t *testing.T) {
	app, db := setupTestApp(t)
	fx := newShowtimeFixture(t, db, 50)

	resp := doJSON(t, app, "POST", "/api/v1/seats/reserve", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"Z9"},
		"sessionId":  "sess-a",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}

func TestReserveCompletedShowtime(t *testing.T) {
	app, db := setupTestApp(t)
	fx := newShowtimeFixture(t, db, 50)

	require.NoError(t, db.Model(&model.Showtime{}).
		Where("id = ?", fx.Showtime.ID).
		Update("status", "completed").Error)

	resp := doJSON(t, app, "POST", "/api/v1/seats/reserve", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"A1"},
		"sessionId":  "sess-a",
	}, "")
	assert.Equal(t, http.StatusConflict, resp.Status)
}

func TestExpireReservationsSweep(t *testing.T) {
	app, db := setupTestApp(t)
	fx := newShowtimeFixture(t, db, 50)

	require.NoError(t, db.Create(&model.SeatReservation{
		ShowtimeId: fx.Showtime.ID,
		Seats:      model.SeatList{"A1"},
		HeldBy:     "stale",
		ExpiresAt:  time.Now().UTC().Add(-time.Minute),
	}).Error)
	require.NoError(t, db.Create(&model.SeatReservation{
		ShowtimeId: fx.Showtime.ID,
		Seats:      model.SeatList{"A2"},
		HeldBy:     "fresh",
		ExpiresAt:  time.Now().UTC().Add(10 * time.Minute),
	}).Error)

	handler.ExpireReservations()

	var remaining []model.SeatReservation
	require.NoError(t, db.Where("showtime_id = ?", fx.Showtime.ID).Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "fresh", remaining[0].HeldBy)

	// Sau khi dọn, ghế hết hạn giữ lại được
	resp := doJSON(t, app, "POST", "/api/v1/seats/reserve", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"A1"},
		"sessionId":  "sess-new",
	}, "")
	assert.Equal(t, http.StatusCreated, resp.Status, resp.Body)
}
