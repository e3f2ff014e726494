package simulation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/border-traffic-monitor/internal/domain"
)

func TestDefaultCatalog_CoversEveryRoute(t *testing.T) {
	catalog := DefaultCatalog()
	for _, route := range domain.Routes() {
		for _, period := range domain.TimePeriods() {
			pattern, err := catalog.Lookup(route, period)
			require.NoError(t, err, "%s %s", route, period)
			assert.Greater(t, pattern.Base, 0.0)
			assert.Greater(t, pattern.Variance, 0.0)
		}
	}

	pattern, err := catalog.Lookup(woodlandsInbound, domain.PeriodEvening)
	require.NoError(t, err)
	assert.Equal(t, domain.BasePattern{Base: 45, Variance: 20}, pattern)
}

func TestCatalog_UnknownRoute(t *testing.T) {
	_, err := DefaultCatalog().Lookup(domain.Route{CrossingPoint: "causeway", Direction: "east"}, domain.PeriodNight)
	assert.ErrorIs(t, err, domain.ErrUnknownRoute)
}

func TestParseCatalog(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{
			name: "override single period",
			yaml: `
patterns:
  woodlands:
    malaysia-to-singapore:
      evening: {base: 60, variance: 5}
`,
		},
		{
			name:    "unknown crossing",
			yaml:    "patterns:\n  causeway:\n    malaysia-to-singapore:\n      night: {base: 1, variance: 1}\n",
			wantErr: true,
		},
		{
			name:    "unknown period",
			yaml:    "patterns:\n  tuas:\n    malaysia-to-singapore:\n      dawn: {base: 1, variance: 1}\n",
			wantErr: true,
		},
		{
			name:    "negative variance",
			yaml:    "patterns:\n  tuas:\n    malaysia-to-singapore:\n      night: {base: 1, variance: -2}\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			yaml:    "patterns: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, err := ParseCatalog([]byte(tt.yaml))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			pattern, err := catalog.Lookup(woodlandsInbound, domain.PeriodEvening)
			require.NoError(t, err)
			assert.Equal(t, domain.BasePattern{Base: 60, Variance: 5}, pattern)

			untouched, err := catalog.Lookup(woodlandsInbound, domain.PeriodMorning)
			require.NoError(t, err)
			assert.Equal(t, domain.BasePattern{Base: 35, Variance: 15}, untouched)
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	def, err := LoadCatalog("")
	require.NoError(t, err)
	assert.NotNil(t, def)

	path := filepath.Join(t.TempDir(), "patterns.yml")
	require.NoError(t, os.WriteFile(path, []byte("patterns:\n  tuas:\n    singapore-to-malaysia:\n      night: {base: 3, variance: 1}\n"), 0o600))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	pattern, err := catalog.Lookup(domain.Route{
		CrossingPoint: domain.CrossingTuas,
		Direction:     domain.DirectionSingaporeToMalaysia,
	}, domain.PeriodNight)
	require.NoError(t, err)
	assert.Equal(t, 3.0, pattern.Base)

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	// overrides never leak into the defaults
	fresh, err := DefaultCatalog().Lookup(domain.Route{
		CrossingPoint: domain.CrossingTuas,
		Direction:     domain.DirectionSingaporeToMalaysia,
	}, domain.PeriodNight)
	require.NoError(t, err)
	assert.Equal(t, 8.0, fresh.Base)
}
