package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeatID(t *testing.T) {
	row, number, err := ParseSeatID("A12")
	require.NoError(t, err)
	assert.Equal(t, "A", row)
	assert.Equal(t, 12, number)

	row, number, err = ParseSeatID("AB3")
	require.NoError(t, err)
	assert.Equal(t, "AB", row)
	assert.Equal(t, 3, number)

	for _, bad := range []string{"", "A", "12", "A0", "A-1", "1A"} {
		_, _, err := ParseSeatID(bad)
		assert.Error(t, err, bad)
	}
}

func TestSeatMapRoundTrip(t *testing.T) {
	price := 75.5
	sm := SeatMap{
		"A1": {Type: "standard"},
		"H9": {Type: "vip", Price: &price},
	}

	value, err := sm.Value()
	require.NoError(t, err)

	var decoded SeatMap
	require.NoError(t, decoded.Scan(value))

	assert.Equal(t, "standard", decoded["A1"].Type)
	require.NotNil(t, decoded["H9"].Price)
	assert.Equal(t, 75.5, *decoded["H9"].Price)
}

func TestSeatMapScanNil(t *testing.T) {
	var sm SeatMap
	require.NoError(t, sm.Scan(nil))
	assert.Nil(t, sm)
}

func TestSeatListRoundTrip(t *testing.T) {
	sl := SeatList{"A1", "A2", "B3"}

	value, err := sl.Value()
	require.NoError(t, err)

	var decoded SeatList
	require.NoError(t, decoded.Scan(value))
	assert.Equal(t, sl, decoded)
}

func TestSeatListNilValueIsEmptyArray(t *testing.T) {
	var sl SeatList
	value, err := sl.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), value.([]byte))
}
