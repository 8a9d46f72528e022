package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/attendance-service/internal/clock"
)

func TestMidnightTruncatesToDay(t *testing.T) {
	at := time.Date(2024, 5, 6, 17, 30, 45, 123, time.UTC)
	require.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), clock.Midnight(at))
}

func TestMidnightIsIdempotent(t *testing.T) {
	day := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	require.Equal(t, day, clock.Midnight(day))
}

func TestMidnightKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	at := time.Date(2024, 5, 6, 23, 59, 0, 0, loc)
	got := clock.Midnight(at)
	require.Equal(t, 2024, got.Year())
	require.Equal(t, time.May, got.Month())
	require.Equal(t, 6, got.Day())
	require.Zero(t, got.Hour())
	require.Equal(t, loc, got.Location())
}

func TestSystemClockAdvances(t *testing.T) {
	clk := clock.System()
	first := clk.Now()
	second := clk.Now()
	require.False(t, second.Before(first))
}
