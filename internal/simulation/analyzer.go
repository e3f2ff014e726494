package simulation

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/border-traffic-monitor/internal/domain"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	maxPeakEntries   = 20
	peakThreshold    = 20.0
	highSeverityAt   = 45.0
	mediumSeverityAt = 30.0
)

// ErrNoSamples is returned when statistics are requested over an empty series.
var ErrNoSamples = errors.New("no samples in window")

// PatternModel is what the analyzer needs from a sample source. Generator implements it;
// tests substitute deterministic sources.
type PatternModel interface {
	Backfill(route domain.Route, at time.Time) (*domain.TrafficSample, error)
	ExpectedWait(route domain.Route, hour int, day time.Weekday) (float64, error)
}

// Analyzer derives history, statistics and peak-time rankings from the pattern model.
// It never reads the current-state store.
type Analyzer struct {
	model PatternModel
	rnd   RandSource
	now   func() time.Time
}

// NewAnalyzer creates an analyzer. now defaults to time.Now.
func NewAnalyzer(model PatternModel, rnd RandSource, now func() time.Time) *Analyzer {
	if now == nil {
		now = time.Now
	}
	return &Analyzer{model: model, rnd: rnd, now: now}
}

// History returns hours+1 synthetic points, oldest first, one per hour up to now inclusive.
func (a *Analyzer) History(route domain.Route, hours int) ([]domain.TrafficSample, error) {
	if hours < 0 {
		return nil, fmt.Errorf("hours must be non-negative, got %d", hours)
	}

	now := a.now()
	series := make([]domain.TrafficSample, 0, hours+1)
	for i := hours; i >= 0; i-- {
		at := now.Add(-time.Duration(i) * time.Hour)
		sample, err := a.model.Backfill(route, at)
		if err != nil {
			return nil, err
		}
		series = append(series, *sample)
	}
	return series, nil
}

// Stats regenerates the history window and summarizes it.
func (a *Analyzer) Stats(route domain.Route, hours int) (*domain.Statistics, error) {
	series, err := a.History(route, hours)
	if err != nil {
		return nil, err
	}
	return Summarize(series)
}

// Summarize computes statistics over a given series, independent of how it was produced.
func Summarize(series []domain.TrafficSample) (*domain.Statistics, error) {
	if len(series) == 0 {
		return nil, ErrNoSamples
	}

	waits := make([]float64, len(series))
	breakdown := make(map[domain.CongestionLevel]int)
	for i, s := range series {
		waits[i] = float64(s.WaitTime)
		breakdown[s.CongestionLevel]++
	}

	return &domain.Statistics{
		TotalRecords:        len(series),
		AvgWaitTime:         roundTenth(stat.Mean(waits, nil)),
		MinWaitTime:         int(floats.Min(waits)),
		MaxWaitTime:         int(floats.Max(waits)),
		CongestionBreakdown: breakdown,
	}, nil
}

// PeakTimes scores every (day, hour) cell over the window and returns up to 20 cells whose average
// exceeds 20 minutes, highest first. Day offset d maps to weekday (d+1) mod 7, so offset 0 is Monday.
func (a *Analyzer) PeakTimes(route domain.Route, days int) ([]domain.PeakTimeEntry, error) {
	if days < 0 {
		return nil, fmt.Errorf("days must be non-negative, got %d", days)
	}

	entries := make([]domain.PeakTimeEntry, 0)
	for d := 0; d < days; d++ {
		weekday := time.Weekday((d + 1) % 7)
		for hour := 0; hour < 24; hour++ {
			wait, err := a.model.ExpectedWait(route, hour, weekday)
			if err != nil {
				return nil, err
			}

			avg := roundTenth(wait)
			if avg <= peakThreshold {
				continue
			}

			entries = append(entries, domain.PeakTimeEntry{
				Hour:        hour,
				DayOfWeek:   weekday,
				DayName:     weekday.String(),
				AvgWaitTime: avg,
				Count:       10 + a.rnd.IntN(20),
				MaxWaitTime: int(math.Round(wait * 1.5)),
				Severity:    severityFor(wait),
			})
		}
	}

	slices.SortStableFunc(entries, func(x, y domain.PeakTimeEntry) int {
		return cmp.Compare(y.AvgWaitTime, x.AvgWaitTime)
	})

	if len(entries) > maxPeakEntries {
		entries = entries[:maxPeakEntries]
	}
	return entries, nil
}

func severityFor(wait float64) domain.Severity {
	switch {
	case wait > highSeverityAt:
		return domain.SeverityHigh
	case wait > mediumSeverityAt:
		return domain.SeverityMedium
	default:
		return domain.SeverityLow
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
