package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/ecoradom4/cine-backend/model"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Vé đã soát vẫn chiếm ghế: ghế không được bán lại và quầy ghế giữ nguyên
func TestValidateTicketKeepsSeatOccupied(t *testing.T) {
	app, db := setupTestApp(t)
	fx := newShowtimeFixture(t, db, 50)
	_, adminToken := newAdminUser(t, db)

	created := doJSON(t, app, "POST", "/api/v1/bookings", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"A1"},
		"sessionId":  "buyer",
	}, "")
	require.Equal(t, http.StatusCreated, created.Status, created.Body)
	booking := dataField(t, created, "booking").(map[string]any)
	ticketNumber := booking["ticketNumber"].(string)
	require.Equal(t, 3, reloadShowtime(t, db, fx.Showtime.ID).SeatsAvailable)

	validated := doJSON(t, app, "POST",
		fmt.Sprintf("/api/v1/tickets/%s/validate", ticketNumber), nil, adminToken)
	require.Equal(t, http.StatusOK, validated.Status, validated.Body)

	var stored model.Booking
	require.NoError(t, db.Where("ticket_number = ?", ticketNumber).First(&stored).Error)
	assert.Equal(t, "used", stored.Status)

	// A1 vẫn không còn trống, quầy ghế không đổi
	rebuy := doJSON(t, app, "POST", "/api/v1/bookings", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"A1"},
		"sessionId":  "other",
	}, "")
	assert.Equal(t, http.StatusConflict, rebuy.Status, rebuy.Body)
	assert.Equal(t, 3, reloadShowtime(t, db, fx.Showtime.ID).SeatsAvailable)

	seatView := doJSON(t, app, "GET",
		fmt.Sprintf("/api/v1/showtimes/%d/seats", fx.Showtime.ID), nil, "")
	require.Equal(t, http.StatusOK, seatView.Status)
	for _, s := range dataField(t, seatView, "seats").([]any) {
		m := s.(map[string]any)
		if m["seat"].(string) == "A1" {
			assert.Equal(t, "occupied", m["status"])
		}
	}

	// Soát lần hai bị từ chối
	again := doJSON(t, app, "POST",
		fmt.Sprintf("/api/v1/tickets/%s/validate", ticketNumber), nil, adminToken)
	assert.Equal(t, http.StatusConflict, again.Status)
}

func TestCancelUsedBookingRejected(t *testing.T) {
	app, db := setupTestApp(t)
	fx := newShowtimeFixture(t, db, 50)
	_, token := newTestUser(t, db)
	_, adminToken := newAdminUser(t, db)

	created := doJSON(t, app, "POST", "/api/v1/bookings", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"A1"},
	}, token)
	require.Equal(t, http.StatusCreated, created.Status)
	booking := dataField(t, created, "booking").(map[string]any)
	bookingId := int(booking["id"].(float64))
	ticketNumber := booking["ticketNumber"].(string)

	validated := doJSON(t, app, "POST",
		fmt.Sprintf("/api/v1/tickets/%s/validate", ticketNumber), nil, adminToken)
	require.Equal(t, http.StatusOK, validated.Status)

	cancel := doJSON(t, app, "POST", fmt.Sprintf("/api/v1/bookings/%d/cancel", bookingId), nil, token)
	assert.Equal(t, http.StatusConflict, cancel.Status)
	assert.Equal(t, 3, reloadShowtime(t, db, fx.Showtime.ID).SeatsAvailable)
}
