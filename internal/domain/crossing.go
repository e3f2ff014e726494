package domain

import (
	"errors"
	"fmt"
	"time"
)

// CrossingPoint - именованный пограничный переход
type CrossingPoint string

const (
	CrossingWoodlands  CrossingPoint = "woodlands"
	CrossingTuas       CrossingPoint = "tuas"
	CrossingSecondLink CrossingPoint = "second-link"
)

// Direction - направление движения через переход
type Direction string

const (
	DirectionMalaysiaToSingapore Direction = "malaysia-to-singapore"
	DirectionSingaporeToMalaysia Direction = "singapore-to-malaysia"
)

var (
	ErrUnknownCrossing  = errors.New("unknown crossing point")
	ErrUnknownDirection = errors.New("unknown direction")
	ErrUnknownRoute     = errors.New("unknown route")
)

var crossingPoints = []CrossingPoint{CrossingWoodlands, CrossingTuas, CrossingSecondLink}

var directions = []Direction{DirectionMalaysiaToSingapore, DirectionSingaporeToMalaysia}

// CrossingPoints returns the supported crossings in display order.
func CrossingPoints() []CrossingPoint {
	out := make([]CrossingPoint, len(crossingPoints))
	copy(out, crossingPoints)
	return out
}

// Directions returns the supported directions in display order.
func Directions() []Direction {
	out := make([]Direction, len(directions))
	copy(out, directions)
	return out
}

// IsValid проверяет, входит ли переход в поддерживаемый набор
func (c CrossingPoint) IsValid() bool {
	for _, cp := range crossingPoints {
		if cp == c {
			return true
		}
	}
	return false
}

// IsValid проверяет, входит ли направление в поддерживаемый набор
func (d Direction) IsValid() bool {
	for _, dir := range directions {
		if dir == d {
			return true
		}
	}
	return false
}

// ParseCrossingPoint converts a raw identifier into a CrossingPoint.
func ParseCrossingPoint(s string) (CrossingPoint, error) {
	c := CrossingPoint(s)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCrossing, s)
	}
	return c, nil
}

// ParseDirection converts a raw identifier into a Direction.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if !d.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
	return d, nil
}

// Route - пара (переход, направление)
type Route struct {
	CrossingPoint CrossingPoint `json:"crossingPoint"`
	Direction     Direction     `json:"direction"`
}

func (r Route) String() string {
	return fmt.Sprintf("%s/%s", r.CrossingPoint, r.Direction)
}

// ParseRoute validates both halves of a route.
func ParseRoute(crossing, direction string) (Route, error) {
	c, err := ParseCrossingPoint(crossing)
	if err != nil {
		return Route{}, err
	}
	d, err := ParseDirection(direction)
	if err != nil {
		return Route{}, err
	}
	return Route{CrossingPoint: c, Direction: d}, nil
}

// Routes returns every crossing x direction pair, crossings outermost.
func Routes() []Route {
	routes := make([]Route, 0, len(crossingPoints)*len(directions))
	for _, c := range crossingPoints {
		for _, d := range directions {
			routes = append(routes, Route{CrossingPoint: c, Direction: d})
		}
	}
	return routes
}

// TimePeriod - часть суток, определяющая базовый паттерн
type TimePeriod string

const (
	PeriodMorning   TimePeriod = "morning"
	PeriodAfternoon TimePeriod = "afternoon"
	PeriodEvening   TimePeriod = "evening"
	PeriodNight     TimePeriod = "night"
)

// TimePeriods lists every period.
func TimePeriods() []TimePeriod {
	return []TimePeriod{PeriodMorning, PeriodAfternoon, PeriodEvening, PeriodNight}
}

// TimePeriodAt buckets an hour of day: [6,10) morning, [10,16) afternoon, [16,20) evening, else night.
func TimePeriodAt(hour int) TimePeriod {
	switch {
	case hour >= 6 && hour < 10:
		return PeriodMorning
	case hour >= 10 && hour < 16:
		return PeriodAfternoon
	case hour >= 16 && hour < 20:
		return PeriodEvening
	default:
		return PeriodNight
	}
}

// IsWeekend reports whether the day is Saturday or Sunday.
func IsWeekend(day time.Weekday) bool {
	return day == time.Saturday || day == time.Sunday
}
