package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyCongestion(t *testing.T) {
	tests := []struct {
		wait     int
		expected CongestionLevel
	}{
		{0, CongestionLow},
		{5, CongestionLow},
		{14, CongestionLow},
		{15, CongestionModerate},
		{29, CongestionModerate},
		{30, CongestionHigh},
		{59, CongestionHigh},
		{60, CongestionSevere},
		{300, CongestionSevere},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifyCongestion(tt.wait), "wait=%d", tt.wait)
	}
}

func TestClassifyCongestion_Total(t *testing.T) {
	for w := 0; w <= 500; w++ {
		level := ClassifyCongestion(w)
		switch {
		case w < 15:
			assert.Equal(t, CongestionLow, level)
		case w < 30:
			assert.Equal(t, CongestionModerate, level)
		case w < 60:
			assert.Equal(t, CongestionHigh, level)
		default:
			assert.Equal(t, CongestionSevere, level)
		}
	}
}

func TestTimePeriodAt(t *testing.T) {
	expected := map[int]TimePeriod{
		0: PeriodNight, 5: PeriodNight, 6: PeriodMorning, 9: PeriodMorning,
		10: PeriodAfternoon, 15: PeriodAfternoon, 16: PeriodEvening, 19: PeriodEvening,
		20: PeriodNight, 23: PeriodNight,
	}
	for hour, period := range expected {
		assert.Equal(t, period, TimePeriodAt(hour), "hour=%d", hour)
	}
}

func TestParseRoute(t *testing.T) {
	route, err := ParseRoute("tuas", "singapore-to-malaysia")
	require.NoError(t, err)
	assert.Equal(t, CrossingTuas, route.CrossingPoint)
	assert.Equal(t, DirectionSingaporeToMalaysia, route.Direction)

	_, err = ParseRoute("causeway", "singapore-to-malaysia")
	assert.ErrorIs(t, err, ErrUnknownCrossing)

	_, err = ParseRoute("tuas", "north")
	assert.ErrorIs(t, err, ErrUnknownDirection)
}

func TestRoutes(t *testing.T) {
	routes := Routes()
	assert.Len(t, routes, 6)
	assert.Equal(t, Route{CrossingWoodlands, DirectionMalaysiaToSingapore}, routes[0])
	assert.Equal(t, Route{CrossingSecondLink, DirectionSingaporeToMalaysia}, routes[5])
}

func TestNewTrafficUpdateEvent(t *testing.T) {
	now := time.Now()
	snap := &Snapshot{
		Generation: 7,
		UpdatedAt:  now,
		Samples: []TrafficSample{
			{CrossingPoint: CrossingWoodlands, Direction: DirectionMalaysiaToSingapore},
			{CrossingPoint: CrossingTuas, Direction: DirectionMalaysiaToSingapore},
			{CrossingPoint: CrossingTuas, Direction: DirectionSingaporeToMalaysia},
		},
	}

	all := NewTrafficUpdateEvent(snap, "")
	assert.Equal(t, EventTrafficUpdate, all.Type)
	assert.Equal(t, uint64(7), all.Generation)
	assert.Len(t, all.Data, 3)

	scoped := NewTrafficUpdateEvent(snap, CrossingTuas)
	assert.Len(t, scoped.Data, 2)
	for _, s := range scoped.Data {
		assert.Equal(t, CrossingTuas, s.CrossingPoint)
	}
}
