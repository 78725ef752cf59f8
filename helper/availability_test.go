package helper

import (
	"testing"

	"github.com/ecoradom4/cine-backend/model"
	"github.com/stretchr/testify/assert"
)

func TestCombineOccupied(t *testing.T) {
	occupied := CombineOccupied(
		[]model.SeatList{{"A1", "A2"}, {"B1"}},
		[]model.SeatList{{"A2", "C3"}},
	)

	assert.Len(t, occupied, 4)
	for _, seat := range []string{"A1", "A2", "B1", "C3"} {
		_, ok := occupied[seat]
		assert.True(t, ok, seat)
	}
}

func TestFirstUnavailable(t *testing.T) {
	occupied := map[string]struct{}{"A1": {}, "B2": {}}

	seat, taken := FirstUnavailable([]string{"C1", "B2", "A1"}, occupied)
	assert.True(t, taken)
	assert.Equal(t, "B2", seat)

	_, taken = FirstUnavailable([]string{"C1", "C2"}, occupied)
	assert.False(t, taken)
}

func TestFirstInvalidSeat(t *testing.T) {
	sm := model.SeatMap{
		"A1": {Type: "standard"},
		"A2": {Type: "vip"},
	}

	seat, bad := FirstInvalidSeat([]string{"A1", "Z9"}, sm)
	assert.True(t, bad)
	assert.Equal(t, "Z9", seat)

	_, bad = FirstInvalidSeat([]string{"A1", "A2"}, sm)
	assert.False(t, bad)

	// Nhãn ghế sai định dạng bị chặn dù có trùng key trong sơ đồ
	for _, label := range []string{"1A", "A", "", "A0"} {
		seat, bad = FirstInvalidSeat([]string{label}, sm)
		assert.True(t, bad, label)
		assert.Equal(t, label, seat)
	}
}

func TestHasDuplicateSeat(t *testing.T) {
	seat, dup := HasDuplicateSeat([]string{"A1", "A2", "A1"})
	assert.True(t, dup)
	assert.Equal(t, "A1", seat)

	_, dup = HasDuplicateSeat([]string{"A1", "A2"})
	assert.False(t, dup)
}
