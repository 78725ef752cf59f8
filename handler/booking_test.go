package handler_test

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ecoradom4/cine-backend/model"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingHappyPath(t *testing.T) {
	app, db := setupTestApp(t)
	fx := newShowtimeFixture(t, db, 50)

	resp := doJSON(t, app, "POST", "/api/v1/bookings", fiber.Map{
		"showtimeId":   fx.Showtime.ID,
		"seats":        []string{"A1", "A2"},
		"customerName": "Ana",
	}, "")
	require.Equal(t, http.StatusCreated, resp.Status, resp.Body)

	// subtotal 100, thuế 12%
	booking := dataField(t, resp, "booking").(map[string]any)
	assert.InDelta(t, 112.0, booking["totalPrice"].(float64), 0.01)
	assert.Equal(t, "confirmed", booking["status"])

	invoice := dataField(t, resp, "invoice").(map[string]any)
	assert.Equal(t, "paid", invoice["status"])
	assert.InDelta(t, 100.0, invoice["subtotal"].(float64), 0.01)
	assert.InDelta(t, 12.0, invoice["taxAmount"].(float64), 0.01)

	// Quầy ghế trừ đúng số ghế bán
	assert.Equal(t, 2, reloadShowtime(t, db, fx.Showtime.ID).SeatsAvailable)
}

func TestCreateBookingRejectsTakenSeat(t *testing.T) {
	app, db := setupTestApp(t)
	fx := newShowtimeFixture(t, db, 50)

	first := doJSON(t, app, "POST", "/api/v1/bookings", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"A1"},
	}, "")
	require.Equal(t, http.StatusCreated, first.Status)

	second := doJSON(t, app, "POST", "/api/v1/bookings", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"A1", "A2"},
	}, "")
	assert.Equal(t, http.StatusConflict, second.Status, second.Body)
	assert.Equal(t, 3, reloadShowtime(t, db, fx.Showtime.ID).SeatsAvailable)
}

// Hai request tranh nhau đúng một ghế: đúng một bên thắng
func TestConcurrentBookingSingleSeat(t *testing.T) {
	app, db := setupTestApp(t)
	fx := newShowtimeFixture(t, db, 50)

	var wg sync.WaitGroup
	results := make([]int, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp := doJSON(t, app, "POST", "/api/v1/bookings", fiber.Map{
				"showtimeId": fx.Showtime.ID,
				"seats":      []string{"B1"},
				"sessionId":  fmt.Sprintf("race-%d", i),
			}, "")
			results[i] = resp.Status
		}(i)
	}
	wg.Wait()

	created := 0
	for _, status := range results {
		if status == http.StatusCreated {
			created++
		} else {
			assert.Equal(t, http.StatusConflict, status)
		}
	}
	assert.Equal(t, 1, created)

	var confirmed int64
	require.NoError(t, db.Model(&model.Booking{}).
		Where("showtime_id = ? AND status = ?", fx.Showtime.ID, "confirmed").
		Count(&confirmed).Error)
	assert.Equal(t, int64(1), confirmed)
	assert.Equal(t, 3, reloadShowtime(t, db, fx.Showtime.ID).SeatsAvailable)
}

func TestBookingSeatsHeldByOther(t *testing.T) {
	app, db := setupTestApp(t)
	fx := newShowtimeFixture(t, db, 50)

	// Ghế đang bị người khác giữ, chưa hết hạn
	require.NoError(t, db.Create(&model.SeatReservation{
		ShowtimeId: fx.Showtime.ID,
		Seats:      model.SeatList{"A1"},
		HeldBy:     "someone-else",
		ExpiresAt:  time.Now().UTC().Add(10 * time.Minute),
	}).Error)

	resp := doJSON(t, app, "POST", "/api/v1/bookings", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"A1"},
		"sessionId":  "buyer",
	}, "")
	assert.Equal(t, http.StatusConflict, resp.Status)

	// Lượt giữ đã hết hạn thì không chặn nữa
	require.NoError(t, db.Model(&model.SeatReservation{}).
		Where("showtime_id = ?", fx.Showtime.ID).
		Update("expires_at", time.Now().UTC().Add(-time.Minute)).Error)

	resp = doJSON(t, app, "POST", "/api/v1/bookings", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"A1"},
		"sessionId":  "buyer",
	}, "")
	assert.Equal(t, http.StatusCreated, resp.Status, resp.Body)
}

func TestBookingCanBuyOwnHeldSeats(t *testing.T) {
	app, db := setupTestApp(t)
	fx := newShowtimeFixture(t, db, 50)

	reserve := doJSON(t, app, "POST", "/api/v1/seats/reserve", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"A1", "A2"},
		"sessionId":  "me",
	}, "")
	require.Equal(t, http.StatusCreated, reserve.Status)

	resp := doJSON(t, app, "POST", "/api/v1/bookings", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"A1", "A2"},
		"sessionId":  "me",
	}, "")
	require.Equal(t, http.StatusCreated, resp.Status, resp.Body)

	// Lượt giữ phải được dọn sau khi mua
	var holds int64
	require.NoError(t, db.Model(&model.SeatReservation{}).
		Where("showtime_id = ? AND held_by = ?", fx.Showtime.ID, "me").
		Count(&holds).Error)
	assert.Equal(t, int64(0), holds)
}

func TestBookingPromotionFlow(t *testing.T) {
	app, db := setupTestApp(t)
	fx := newShowtimeFixture(t, db, 50)

	code := "CAP1-" + uuid.New().String()[:4]
	require.NoError(t, db.Create(&model.Promotion{
		Code:       code,
		Name:       "One use only",
		Type:       "percentage",
		Value:      10,
		ValidFrom:  time.Now().UTC().Add(-time.Hour),
		ValidUntil: time.Now().UTC().Add(time.Hour),
		UsageLimit: 1,
		IsActive:   true,
	}).Error)

	// Đơn 1: subtotal 100, giảm 10, thuế trên 90
	first := doJSON(t, app, "POST", "/api/v1/bookings", fiber.Map{
		"showtimeId":    fx.Showtime.ID,
		"seats":         []string{"A1", "A2"},
		"promotionCode": code,
		"sessionId":     "p1",
	}, "")
	require.Equal(t, http.StatusCreated, first.Status, first.Body)
	invoice := dataField(t, first, "invoice").(map[string]any)
	assert.InDelta(t, 10.8, invoice["taxAmount"].(float64), 0.01)
	assert.InDelta(t, 100.8, invoice["totalAmount"].(float64), 0.01)

	// Đơn 2: promo chạm trần → vẫn bán, không giảm, có warning
	second := doJSON(t, app, "POST", "/api/v1/bookings", fiber.Map{
		"showtimeId":    fx.Showtime.ID,
		"seats":         []string{"B1"},
		"promotionCode": code,
		"sessionId":     "p2",
	}, "")
	require.Equal(t, http.StatusCreated, second.Status, second.Body)
	assert.NotNil(t, dataField(t, second, "promotionWarning"))
	assert.InDelta(t, 0.0, dataField(t, second, "discount").(float64), 0.0001)

	var promo model.Promotion
	require.NoError(t, db.Where("code = ?", code).First(&promo).Error)
	assert.Equal(t, 1, promo.UsedCount)
}

// Mã khuyến mãi lưu in hoa nhưng client gõ thường vẫn được giảm
func TestBookingPromotionCodeCaseInsensitive(t *testing.T) {
	app, db := setupTestApp(t)
	fx := newShowtimeFixture(t, db, 50)

	code := "MIX10-" + uuid.New().String()[:4]
	require.NoError(t, db.Create(&model.Promotion{
		Code:       code,
		Name:       "Mixed case",
		Type:       "percentage",
		Value:      10,
		ValidFrom:  time.Now().UTC().Add(-time.Hour),
		ValidUntil: time.Now().UTC().Add(time.Hour),
		IsActive:   true,
	}).Error)

	resp := doJSON(t, app, "POST", "/api/v1/bookings", fiber.Map{
		"showtimeId":    fx.Showtime.ID,
		"seats":         []string{"A1", "A2"},
		"promotionCode": strings.ToLower(code),
	}, "")
	require.Equal(t, http.StatusCreated, resp.Status, resp.Body)

	_, hasWarning := resp.Body["data"].(map[string]any)["promotionWarning"]
	assert.False(t, hasWarning)
	assert.InDelta(t, 10.0, dataField(t, resp, "discount").(float64), 0.01)

	invoice := dataField(t, resp, "invoice").(map[string]any)
	assert.InDelta(t, 100.8, invoice["totalAmount"].(float64), 0.01)
}

func TestBookingInsufficientSeats(t *testing.T) {
	app, db := setupTestApp(t)
	fx := newShowtimeFixture(t, db, 50)

	require.NoError(t, db.Model(&model.Showtime{}).
		Where("id = ?", fx.Showtime.ID).
		Update("seats_available", 1).Error)

	resp := doJSON(t, app, "POST", "/api/v1/bookings", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"A1", "A2"},
	}, "")
	assert.Equal(t, http.StatusConflict, resp.Status, resp.Body)
	assert.Equal(t, 1, reloadShowtime(t, db, fx.Showtime.ID).SeatsAvailable)
}

// Sau khi hủy, đúng các ghế đó phải mua lại được
func TestRepurchaseAfterCancel(t *testing.T) {
	app, db := setupTestApp(t)
	fx := newShowtimeFixture(t, db, 50)
	_, token := newTestUser(t, db)

	created := doJSON(t, app, "POST", "/api/v1/bookings", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"A1", "A2"},
	}, token)
	require.Equal(t, http.StatusCreated, created.Status)
	booking := dataField(t, created, "booking").(map[string]any)
	bookingId := int(booking["id"].(float64))

	cancel := doJSON(t, app, "POST", fmt.Sprintf("/api/v1/bookings/%d/cancel", bookingId), nil, token)
	require.Equal(t, http.StatusOK, cancel.Status, cancel.Body)
	require.Equal(t, 4, reloadShowtime(t, db, fx.Showtime.ID).SeatsAvailable)

	rebuy := doJSON(t, app, "POST", "/api/v1/bookings", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"A1", "A2"},
		"sessionId":  "second-buyer",
	}, "")
	require.Equal(t, http.StatusCreated, rebuy.Status, rebuy.Body)
	assert.Equal(t, 2, reloadShowtime(t, db, fx.Showtime.ID).SeatsAvailable)
}

func TestCancelBooking(t *testing.T) {
	app, db := setupTestApp(t)
	fx := newShowtimeFixture(t, db, 50)
	_, token := newTestUser(t, db)

	created := doJSON(t, app, "POST", "/api/v1/bookings", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"A1", "A2"},
	}, token)
	require.Equal(t, http.StatusCreated, created.Status, created.Body)
	booking := dataField(t, created, "booking").(map[string]any)
	bookingId := int(booking["id"].(float64))
	assert.Equal(t, 2, reloadShowtime(t, db, fx.Showtime.ID).SeatsAvailable)

	cancel := doJSON(t, app, "POST", fmt.Sprintf("/api/v1/bookings/%d/cancel", bookingId), nil, token)
	require.Equal(t, http.StatusOK, cancel.Status, cancel.Body)

	// Ghế hoàn lại, hóa đơn hủy
	assert.Equal(t, 4, reloadShowtime(t, db, fx.Showtime.ID).SeatsAvailable)

	var stored model.Booking
	require.NoError(t, db.Preload("Invoice").First(&stored, bookingId).Error)
	assert.Equal(t, "cancelled", stored.Status)
	require.NotNil(t, stored.Invoice)
	assert.Equal(t, "cancelled", stored.Invoice.Status)

	// Hủy lần hai phải bị chặn
	again := doJSON(t, app, "POST", fmt.Sprintf("/api/v1/bookings/%d/cancel", bookingId), nil, token)
	assert.Equal(t, http.StatusConflict, again.Status)
}

func TestCancelBookingTooLate(t *testing.T) {
	app, db := setupTestApp(t)
	fx := newShowtimeFixture(t, db, 50)
	_, token := newTestUser(t, db)

	created := doJSON(t, app, "POST", "/api/v1/bookings", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"A1"},
	}, token)
	require.Equal(t, http.StatusCreated, created.Status)
	booking := dataField(t, created, "booking").(map[string]any)
	bookingId := int(booking["id"].(float64))

	// Đẩy giờ chiếu vào trong cửa sổ 1 tiếng
	require.NoError(t, db.Model(&model.Showtime{}).
		Where("id = ?", fx.Showtime.ID).
		Update("start_time", time.Now().UTC().Add(30*time.Minute)).Error)

	cancel := doJSON(t, app, "POST", fmt.Sprintf("/api/v1/bookings/%d/cancel", bookingId), nil, token)
	assert.Equal(t, http.StatusConflict, cancel.Status)
}

func TestCancelBookingNotOwner(t *testing.T) {
	app, db := setupTestApp(t)
	fx := newShowtimeFixture(t, db, 50)
	_, ownerToken := newTestUser(t, db)
	_, strangerToken := newTestUser(t, db)

	created := doJSON(t, app, "POST", "/api/v1/bookings", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"A1"},
	}, ownerToken)
	require.Equal(t, http.StatusCreated, created.Status)
	booking := dataField(t, created, "booking").(map[string]any)
	bookingId := int(booking["id"].(float64))

	cancel := doJSON(t, app, "POST", fmt.Sprintf("/api/v1/bookings/%d/cancel", bookingId), nil, strangerToken)
	assert.Equal(t, http.StatusForbidden, cancel.Status)
}

func TestBookingInvalidSeat(t *testing.T) {
	app, db := setupTestApp(t)
	fx := newShowtimeFixture(t, db, 50)

	resp := doJSON(t, app, "POST", "/api/v1/bookings", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"Z99"},
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.Status)
}

func TestBookingCompletedShowtime(t *testing.T) {
	app, db := setupTestApp(t)
	fx := newShowtimeFixture(t, db, 50)

	require.NoError(t, db.Model(&model.Showtime{}).
		Where("id = ?", fx.Showtime.ID).
		Update("status", "completed").Error)

	resp := doJSON(t, app, "POST", "/api/v1/bookings", fiber.Map{
		"showtimeId": fx.Showtime.ID,
		"seats":      []string{"A1"},
	}, "")
	assert.Equal(t, http.StatusConflict, resp.Status)
}
