package simulation

import (
	"math"
	"time"

	"github.com/border-traffic-monitor/internal/domain"
	"github.com/google/uuid"
)

const (
	minWaitTime       = 5
	weekendMultiplier = 1.3
	minConfidence     = 0.85
	maxConfidence     = 0.95
)

var weatherTable = []domain.Weather{
	{Condition: "clear", Impact: "minimal", Multiplier: 1.0},
	{Condition: "rainy", Impact: "increased", Multiplier: 1.2},
	{Condition: "cloudy", Impact: "minimal", Multiplier: 1.0},
	{Condition: "hazy", Impact: "moderate", Multiplier: 1.1},
}

// Generator produces synthetic samples from the pattern catalog. It never mutates the catalog.
type Generator struct {
	catalog  *PatternCatalog
	rnd      RandSource
	location *time.Location
}

// NewGenerator creates a generator. Hours and weekdays are evaluated in loc (UTC when nil).
func NewGenerator(catalog *PatternCatalog, rnd RandSource, loc *time.Location) *Generator {
	if loc == nil {
		loc = time.UTC
	}
	return &Generator{
		catalog:  catalog,
		rnd:      rnd,
		location: loc,
	}
}

// Location returns the zone used for time-of-day bucketing.
func (g *Generator) Location() *time.Location {
	return g.location
}

// Generate builds a full live sample for route at the given instant.
func (g *Generator) Generate(route domain.Route, at time.Time) (*domain.TrafficSample, error) {
	local := at.In(g.location)
	period := domain.TimePeriodAt(local.Hour())

	wait, err := g.waitTime(route, local.Hour(), local.Weekday())
	if err != nil {
		return nil, err
	}

	weather := g.RandomWeather()
	return &domain.TrafficSample{
		ID:              uuid.New(),
		CrossingPoint:   route.CrossingPoint,
		Direction:       route.Direction,
		WaitTime:        wait,
		CongestionLevel: domain.ClassifyCongestion(wait),
		DataSource:      domain.GeneratedSources[g.rnd.IntN(len(domain.GeneratedSources))],
		Confidence:      math.Min(uniform(g.rnd, minConfidence, maxConfidence), maxConfidence),
		Weather:         &weather,
		SpecialEvents:   g.SpecialEvents(local),
		Timestamp:       at,
		Metadata: &domain.SampleMetadata{
			LaneCount:      g.LaneCount(),
			ProcessingTime: g.ProcessingTime(),
			RawData:        map[string]any{"generated": true, "pattern": string(period)},
		},
	}, nil
}

// Backfill builds a lean synthetic point for a past instant. It is regenerated from the pattern
// model on each call and is not a replay of a previously stored sample.
func (g *Generator) Backfill(route domain.Route, at time.Time) (*domain.TrafficSample, error) {
	local := at.In(g.location)
	wait, err := g.waitTime(route, local.Hour(), local.Weekday())
	if err != nil {
		return nil, err
	}
	return &domain.TrafficSample{
		CrossingPoint:   route.CrossingPoint,
		Direction:       route.Direction,
		WaitTime:        wait,
		CongestionLevel: domain.ClassifyCongestion(wait),
		DataSource:      domain.SourceHistoricalSimulation,
		SpecialEvents:   []domain.SpecialEvent{},
		Timestamp:       at,
	}, nil
}

// ExpectedWait is the unrounded wait for one (hour, weekday) cell, floored at the minimum,
// using a single variance draw.
func (g *Generator) ExpectedWait(route domain.Route, hour int, day time.Weekday) (float64, error) {
	raw, err := g.rawWait(route, hour, day)
	if err != nil {
		return 0, err
	}
	return math.Max(minWaitTime, raw), nil
}

func (g *Generator) waitTime(route domain.Route, hour int, day time.Weekday) (int, error) {
	raw, err := g.rawWait(route, hour, day)
	if err != nil {
		return 0, err
	}
	return max(minWaitTime, int(math.Round(raw))), nil
}

// rawWait = (base + U(-variance, +variance) + peakEffect) * weekendMultiplier
func (g *Generator) rawWait(route domain.Route, hour int, day time.Weekday) (float64, error) {
	pattern, err := g.catalog.Lookup(route, domain.TimePeriodAt(hour))
	if err != nil {
		return 0, err
	}

	variance := uniform(g.rnd, -pattern.Variance, pattern.Variance)
	multiplier := 1.0
	if domain.IsWeekend(day) {
		multiplier = weekendMultiplier
	}

	return (pattern.Base + variance + g.PeakEffect(hour, day)) * multiplier, nil
}

// PeakEffect returns the additive rush-hour bonus. Only the first matching band applies:
// morning rush, evening rush, lunch, then weekend.
func (g *Generator) PeakEffect(hour int, day time.Weekday) float64 {
	switch {
	case hour >= 6 && hour <= 9:
		return uniform(g.rnd, 15, 25)
	case hour >= 17 && hour <= 20:
		return uniform(g.rnd, 20, 35)
	case hour >= 12 && hour <= 14:
		return uniform(g.rnd, 5, 13)
	case domain.IsWeekend(day):
		return uniform(g.rnd, 8, 20)
	default:
		return 0
	}
}

// RandomWeather picks a weather record. The multiplier is informational only.
func (g *Generator) RandomWeather() domain.Weather {
	return weatherTable[g.rnd.IntN(len(weatherTable))]
}

// SpecialEvents returns the date-conditional events active at local. Multipliers are informational only.
func (g *Generator) SpecialEvents(local time.Time) []domain.SpecialEvent {
	events := []domain.SpecialEvent{}

	month := local.Month()
	if (month == time.January || month == time.February) && chance(g.rnd, 0.3) {
		events = append(events, domain.SpecialEvent{
			Name:        "Chinese New Year",
			Impact:      "high",
			Multiplier:  1.5,
			Description: "Increased border traffic during holiday period",
		})
	}

	if (month == time.June || month == time.December) && chance(g.rnd, 0.4) {
		events = append(events, domain.SpecialEvent{
			Name:        "School Holidays",
			Impact:      "medium",
			Multiplier:  1.3,
			Description: "Family travel during school break",
		})
	}

	if domain.IsWeekend(local.Weekday()) && chance(g.rnd, 0.5) {
		events = append(events, domain.SpecialEvent{
			Name:        "Weekend Travel",
			Impact:      "medium",
			Multiplier:  1.2,
			Description: "Leisure travel and shopping trips",
		})
	}

	return events
}

// LaneCount returns a synthetic open-lane count in [4, 6].
func (g *Generator) LaneCount() int {
	return 4 + g.rnd.IntN(3)
}

// ProcessingTime returns a synthetic processing time in [50, 150) ms.
func (g *Generator) ProcessingTime() float64 {
	return uniform(g.rnd, 50, 150)
}
