package domain

import "time"

// BasePattern - базовое время ожидания и разброс для (переход, направление, период)
type BasePattern struct {
	Base     float64 `json:"base" yaml:"base" validate:"gte=0"`
	Variance float64 `json:"variance" yaml:"variance" validate:"gte=0"`
}

// Statistics - агрегаты по окну выборок
type Statistics struct {
	TotalRecords        int                     `json:"totalRecords"`
	AvgWaitTime         float64                 `json:"avgWaitTime"`
	MinWaitTime         int                     `json:"minWaitTime"`
	MaxWaitTime         int                     `json:"maxWaitTime"`
	CongestionBreakdown map[CongestionLevel]int `json:"congestionBreakdown"`
}

// Severity of a peak period.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// PeakTimeEntry - одна "ячейка" (день, час) с повышенной загрузкой
type PeakTimeEntry struct {
	Hour        int          `json:"hour"`
	DayOfWeek   time.Weekday `json:"dayOfWeek"`
	DayName     string       `json:"dayName"`
	AvgWaitTime float64      `json:"avgWaitTime"`
	Count       int          `json:"count"`
	MaxWaitTime int          `json:"maxWaitTime"`
	Severity    Severity     `json:"severity"`
}

// PeakAnalysis is the output of one periodic peak-time run for a route.
type PeakAnalysis struct {
	Route      Route           `json:"route"`
	Days       int             `json:"days"`
	PeakTimes  []PeakTimeEntry `json:"peakTimes"`
	AnalyzedAt time.Time       `json:"analyzedAt"`
}
