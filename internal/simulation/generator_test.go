package simulation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/border-traffic-monitor/internal/domain"
)

// fixedRand always returns the same draw.
type fixedRand struct {
	f float64
	i int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) IntN(n int) int {
	if r.i >= n {
		return n - 1
	}
	return r.i
}

var woodlandsInbound = domain.Route{
	CrossingPoint: domain.CrossingWoodlands,
	Direction:     domain.DirectionMalaysiaToSingapore,
}

// 2026-10-14 is a Wednesday.
func weekdayAt(hour int) time.Time {
	return time.Date(2026, time.October, 14, hour, 0, 0, 0, time.UTC)
}

// 2026-10-17 is a Saturday.
func saturdayAt(hour int) time.Time {
	return time.Date(2026, time.October, 17, hour, 0, 0, 0, time.UTC)
}

func TestGenerator_MorningRushWeekday(t *testing.T) {
	gen := NewGenerator(DefaultCatalog(), NewRandSource(42), time.UTC)

	for i := 0; i < 500; i++ {
		sample, err := gen.Generate(woodlandsInbound, weekdayAt(8))
		require.NoError(t, err)

		// base 35 +/- 15, peak [15,25)
		assert.GreaterOrEqual(t, sample.WaitTime, 35)
		assert.LessOrEqual(t, sample.WaitTime, 75)
		assert.Contains(t, []domain.CongestionLevel{domain.CongestionHigh, domain.CongestionSevere}, sample.CongestionLevel)
	}
}

func TestGenerator_NightWeekday(t *testing.T) {
	// variance = -8 + 0.2*16 = -4.8, no peak effect at 02:00 on a weekday
	gen := NewGenerator(DefaultCatalog(), fixedRand{f: 0.2}, time.UTC)

	sample, err := gen.Generate(woodlandsInbound, weekdayAt(2))
	require.NoError(t, err)
	assert.Equal(t, 10, sample.WaitTime)
	assert.Equal(t, domain.CongestionLow, sample.CongestionLevel)
	assert.Equal(t, "night", sample.Metadata.RawData["pattern"])

	seeded := NewGenerator(DefaultCatalog(), NewRandSource(7), time.UTC)
	for i := 0; i < 200; i++ {
		s, err := seeded.Generate(woodlandsInbound, weekdayAt(2))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, s.WaitTime, 7)
		assert.LessOrEqual(t, s.WaitTime, 23)
	}
}

func TestGenerator_WeekendMultiplier(t *testing.T) {
	// afternoon base 20, variance 0 at f=0.5, weekend peak 8+0.5*12 = 14; (20+14)*1.3 = 44.2
	gen := NewGenerator(DefaultCatalog(), fixedRand{f: 0.5}, time.UTC)

	sample, err := gen.Generate(woodlandsInbound, saturdayAt(11))
	require.NoError(t, err)
	assert.Equal(t, 44, sample.WaitTime)
	assert.Equal(t, domain.CongestionHigh, sample.CongestionLevel)
}

func TestGenerator_FloorInvariant(t *testing.T) {
	catalog, err := ParseCatalog([]byte(`
patterns:
  tuas:
    singapore-to-malaysia:
      night: {base: 0, variance: 0}
`))
	require.NoError(t, err)

	floored := NewGenerator(catalog, fixedRand{f: 0}, time.UTC)
	sample, err := floored.Generate(domain.Route{
		CrossingPoint: domain.CrossingTuas,
		Direction:     domain.DirectionSingaporeToMalaysia,
	}, weekdayAt(23))
	require.NoError(t, err)
	assert.Equal(t, 5, sample.WaitTime)

	gen := NewGenerator(DefaultCatalog(), NewRandSource(1), time.UTC)
	start := weekdayAt(0)
	for _, route := range domain.Routes() {
		for h := 0; h < 24*7; h++ {
			s, err := gen.Generate(route, start.Add(time.Duration(h)*time.Hour))
			require.NoError(t, err)
			assert.GreaterOrEqual(t, s.WaitTime, 5)
			assert.Equal(t, domain.ClassifyCongestion(s.WaitTime), s.CongestionLevel)
		}
	}
}

func TestGenerator_PeakEffectBands(t *testing.T) {
	gen := NewGenerator(DefaultCatalog(), fixedRand{f: 0}, time.UTC)

	tests := []struct {
		name     string
		hour     int
		day      time.Weekday
		expected float64
	}{
		{"morning rush start", 6, time.Wednesday, 15},
		{"morning rush end", 9, time.Wednesday, 15},
		{"morning rush beats weekend", 7, time.Saturday, 15},
		{"evening rush start", 17, time.Wednesday, 20},
		{"evening rush end", 20, time.Wednesday, 20},
		{"lunch", 12, time.Wednesday, 5},
		{"lunch end", 14, time.Wednesday, 5},
		{"weekend off-peak", 11, time.Saturday, 8},
		{"sunday night", 23, time.Sunday, 8},
		{"weekday off-peak", 11, time.Wednesday, 0},
		{"weekday late", 22, time.Friday, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, gen.PeakEffect(tt.hour, tt.day))
		})
	}
}

func TestGenerator_SampleFields(t *testing.T) {
	gen := NewGenerator(DefaultCatalog(), NewRandSource(3), time.UTC)
	at := weekdayAt(13)

	sample, err := gen.Generate(woodlandsInbound, at)
	require.NoError(t, err)

	assert.NotEqual(t, [16]byte{}, [16]byte(sample.ID))
	assert.Equal(t, at, sample.Timestamp)
	assert.Contains(t, domain.GeneratedSources, sample.DataSource)
	assert.GreaterOrEqual(t, sample.Confidence, 0.85)
	assert.LessOrEqual(t, sample.Confidence, 0.95)
	require.NotNil(t, sample.Weather)
	assert.Contains(t, []string{"clear", "rainy", "cloudy", "hazy"}, sample.Weather.Condition)
	require.NotNil(t, sample.Metadata)
	assert.GreaterOrEqual(t, sample.Metadata.LaneCount, 4)
	assert.LessOrEqual(t, sample.Metadata.LaneCount, 6)
	assert.GreaterOrEqual(t, sample.Metadata.ProcessingTime, 50.0)
	assert.Less(t, sample.Metadata.ProcessingTime, 150.0)
	assert.NotNil(t, sample.SpecialEvents)
}

func TestGenerator_EvaluatesHourInLocation(t *testing.T) {
	sgt := time.FixedZone("SGT", 8*3600)
	gen := NewGenerator(DefaultCatalog(), fixedRand{f: 0.5}, sgt)

	// 00:00 UTC is 08:00 in Singapore: morning base 35 + peak 20
	sample, err := gen.Generate(woodlandsInbound, weekdayAt(0))
	require.NoError(t, err)
	assert.Equal(t, 55, sample.WaitTime)
}

func TestGenerator_SpecialEvents(t *testing.T) {
	always := NewGenerator(DefaultCatalog(), fixedRand{f: 0}, time.UTC)
	never := NewGenerator(DefaultCatalog(), fixedRand{f: 0.99}, time.UTC)

	// 2026-01-17 is a Saturday.
	januarySaturday := time.Date(2026, time.January, 17, 12, 0, 0, 0, time.UTC)
	events := always.SpecialEvents(januarySaturday)
	require.Len(t, events, 2)
	assert.Equal(t, "Chinese New Year", events[0].Name)
	assert.Equal(t, "Weekend Travel", events[1].Name)

	events = always.SpecialEvents(time.Date(2026, time.June, 10, 12, 0, 0, 0, time.UTC))
	require.Len(t, events, 1)
	assert.Equal(t, "School Holidays", events[0].Name)

	assert.Empty(t, never.SpecialEvents(januarySaturday))
	assert.Empty(t, always.SpecialEvents(weekdayAt(12)))
}

func TestGenerator_Backfill(t *testing.T) {
	gen := NewGenerator(DefaultCatalog(), NewRandSource(9), time.UTC)

	sample, err := gen.Backfill(woodlandsInbound, weekdayAt(3))
	require.NoError(t, err)
	assert.Equal(t, domain.SourceHistoricalSimulation, sample.DataSource)
	assert.Nil(t, sample.Weather)
	assert.Nil(t, sample.Metadata)
	assert.GreaterOrEqual(t, sample.WaitTime, 5)
}

func TestGenerator_UnknownRoute(t *testing.T) {
	gen := NewGenerator(DefaultCatalog(), NewRandSource(1), time.UTC)
	bogus := domain.Route{CrossingPoint: "causeway", Direction: domain.DirectionMalaysiaToSingapore}

	_, err := gen.Generate(bogus, weekdayAt(8))
	assert.ErrorIs(t, err, domain.ErrUnknownRoute)

	_, err = gen.ExpectedWait(bogus, 8, time.Monday)
	assert.ErrorIs(t, err, domain.ErrUnknownRoute)
}
