package simulation

import (
	"fmt"
	"os"

	"github.com/border-traffic-monitor/internal/domain"
	"github.com/border-traffic-monitor/internal/pkg/validator"
	"gopkg.in/yaml.v3"
)

type periodPatterns map[domain.TimePeriod]domain.BasePattern

// PatternCatalog is the read-only table of base patterns. It is never mutated after construction,
// so concurrent lookups need no locking.
type PatternCatalog struct {
	patterns map[domain.Route]periodPatterns
}

func defaultPatterns() map[domain.Route]periodPatterns {
	p := func(base, variance float64) domain.BasePattern {
		return domain.BasePattern{Base: base, Variance: variance}
	}
	return map[domain.Route]periodPatterns{
		{CrossingPoint: domain.CrossingWoodlands, Direction: domain.DirectionMalaysiaToSingapore}: {
			domain.PeriodMorning: p(35, 15), domain.PeriodAfternoon: p(20, 10),
			domain.PeriodEvening: p(45, 20), domain.PeriodNight: p(15, 8),
		},
		{CrossingPoint: domain.CrossingWoodlands, Direction: domain.DirectionSingaporeToMalaysia}: {
			domain.PeriodMorning: p(25, 12), domain.PeriodAfternoon: p(15, 8),
			domain.PeriodEvening: p(35, 18), domain.PeriodNight: p(10, 5),
		},
		{CrossingPoint: domain.CrossingTuas, Direction: domain.DirectionMalaysiaToSingapore}: {
			domain.PeriodMorning: p(30, 12), domain.PeriodAfternoon: p(18, 9),
			domain.PeriodEvening: p(40, 18), domain.PeriodNight: p(12, 6),
		},
		{CrossingPoint: domain.CrossingTuas, Direction: domain.DirectionSingaporeToMalaysia}: {
			domain.PeriodMorning: p(20, 10), domain.PeriodAfternoon: p(12, 6),
			domain.PeriodEvening: p(30, 15), domain.PeriodNight: p(8, 4),
		},
		{CrossingPoint: domain.CrossingSecondLink, Direction: domain.DirectionMalaysiaToSingapore}: {
			domain.PeriodMorning: p(25, 10), domain.PeriodAfternoon: p(15, 7),
			domain.PeriodEvening: p(35, 16), domain.PeriodNight: p(10, 5),
		},
		{CrossingPoint: domain.CrossingSecondLink, Direction: domain.DirectionSingaporeToMalaysia}: {
			domain.PeriodMorning: p(18, 8), domain.PeriodAfternoon: p(10, 5),
			domain.PeriodEvening: p(28, 14), domain.PeriodNight: p(6, 3),
		},
	}
}

// DefaultCatalog returns the built-in pattern table.
func DefaultCatalog() *PatternCatalog {
	return &PatternCatalog{patterns: defaultPatterns()}
}

// catalogFile - формат YAML-файла с переопределениями паттернов
type catalogFile struct {
	Patterns map[string]map[string]map[string]domain.BasePattern `yaml:"patterns"`
}

// LoadCatalog reads overrides from a YAML file and layers them over the built-in table.
// An empty path returns the default catalog.
func LoadCatalog(path string) (*PatternCatalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern file: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes YAML overrides such as
//
//	patterns:
//	  woodlands:
//	    malaysia-to-singapore:
//	      morning: {base: 35, variance: 15}
func ParseCatalog(data []byte) (*PatternCatalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode pattern file: %w", err)
	}

	patterns := defaultPatterns()
	for crossing, byDirection := range file.Patterns {
		for direction, byPeriod := range byDirection {
			route, err := domain.ParseRoute(crossing, direction)
			if err != nil {
				return nil, fmt.Errorf("pattern file: %w", err)
			}
			for period, pattern := range byPeriod {
				tp := domain.TimePeriod(period)
				if _, ok := patterns[route][tp]; !ok {
					return nil, fmt.Errorf("pattern file: unknown time period %q for %s", period, route)
				}
				if err := validator.Validate(&pattern); err != nil {
					return nil, fmt.Errorf("pattern file: %s %s: %w", route, period, err)
				}
				patterns[route][tp] = pattern
			}
		}
	}

	return &PatternCatalog{patterns: patterns}, nil
}

// Lookup returns the base pattern for a route and period.
func (c *PatternCatalog) Lookup(route domain.Route, period domain.TimePeriod) (domain.BasePattern, error) {
	byPeriod, ok := c.patterns[route]
	if !ok {
		return domain.BasePattern{}, fmt.Errorf("%w: %s", domain.ErrUnknownRoute, route)
	}
	pattern, ok := byPeriod[period]
	if !ok {
		return domain.BasePattern{}, fmt.Errorf("no pattern for %s during %s", route, period)
	}
	return pattern, nil
}
