package domain

import (
	"time"

	"github.com/google/uuid"
)

// CongestionLevel - качественная оценка загруженности
type CongestionLevel string

const (
	CongestionLow      CongestionLevel = "low"
	CongestionModerate CongestionLevel = "moderate"
	CongestionHigh     CongestionLevel = "high"
	CongestionSevere   CongestionLevel = "severe"
)

// CongestionLevels lists every level from least to most congested.
func CongestionLevels() []CongestionLevel {
	return []CongestionLevel{CongestionLow, CongestionModerate, CongestionHigh, CongestionSevere}
}

// ClassifyCongestion maps a wait time in minutes to a level. Thresholds are left-inclusive.
func ClassifyCongestion(waitMinutes int) CongestionLevel {
	switch {
	case waitMinutes < 15:
		return CongestionLow
	case waitMinutes < 30:
		return CongestionModerate
	case waitMinutes < 60:
		return CongestionHigh
	default:
		return CongestionSevere
	}
}

// Data source tags attached to generated samples.
const (
	SourceSimulated            = "simulated"
	SourceHistoricalPattern    = "historical-pattern"
	SourceTimeBased            = "time-based"
	SourceWeekendEffect        = "weekend-effect"
	SourceHistoricalSimulation = "historical-simulation"
	SourceManual               = "manual"
)

// GeneratedSources is the set a live sample's provenance tag is drawn from.
var GeneratedSources = []string{SourceSimulated, SourceHistoricalPattern, SourceTimeBased, SourceWeekendEffect}

// Weather - погодный модификатор (только метаданные, на waitTime не влияет)
type Weather struct {
	Condition  string  `json:"condition" yaml:"condition"`
	Impact     string  `json:"impact" yaml:"impact"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
}

// SpecialEvent - событие, влияющее на трафик (только метаданные)
type SpecialEvent struct {
	Name        string  `json:"name"`
	Impact      string  `json:"impact"`
	Multiplier  float64 `json:"multiplier"`
	Description string  `json:"description"`
}

// SampleMetadata - произвольные данные генерации
type SampleMetadata struct {
	LaneCount      int            `json:"laneCount"`
	ProcessingTime float64        `json:"processingTime"`
	RawData        map[string]any `json:"rawData,omitempty"`
}

// TrafficSample is one immutable observation for a route. A newer sample replaces it; it is never edited.
type TrafficSample struct {
	ID              uuid.UUID       `json:"id"`
	CrossingPoint   CrossingPoint   `json:"crossingPoint"`
	Direction       Direction       `json:"direction"`
	WaitTime        int             `json:"waitTime"`
	CongestionLevel CongestionLevel `json:"congestionLevel"`
	VehicleType     string          `json:"vehicleType,omitempty"`
	DataSource      string          `json:"dataSource"`
	Confidence      float64         `json:"confidence"`
	Weather         *Weather        `json:"weather,omitempty"`
	SpecialEvents   []SpecialEvent  `json:"specialEvents"`
	Timestamp       time.Time       `json:"timestamp"`
	Metadata        *SampleMetadata `json:"metadata,omitempty"`
}

// Route returns the sample's route key.
func (s *TrafficSample) Route() Route {
	return Route{CrossingPoint: s.CrossingPoint, Direction: s.Direction}
}
