package tick_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-bigh/internal/engine"
	"github.com/tartampluch/go-bigh/internal/face"
	"github.com/tartampluch/go-bigh/internal/tick"
)

func bt(year int, month time.Month, day, hour, minute, second int) engine.BrokenTime {
	return engine.FromTime(time.Date(year, month, day, hour, minute, second, 0, time.UTC))
}

func withSeconds() tick.Config {
	return tick.Config{Face: face.Config{ShowSeconds: true}}
}

func TestScheduler_Boundaries(t *testing.T) {
	tests := []struct {
		name   string
		from   engine.BrokenTime
		to     engine.BrokenTime
		hour12 bool
		want   face.RegionSet
	}{
		{
			name: "within a minute",
			from: bt(2024, 3, 5, 10, 15, 20), to: bt(2024, 3, 5, 10, 15, 21),
			want: face.NewRegionSet(face.Seconds),
		},
		{
			name: "minute boundary",
			from: bt(2024, 3, 5, 10, 15, 59), to: bt(2024, 3, 5, 10, 16, 0),
			want: face.NewRegionSet(face.Seconds, face.Minutes),
		},
		{
			name: "hour boundary",
			from: bt(2024, 3, 5, 10, 59, 59), to: bt(2024, 3, 5, 11, 0, 0),
			want: face.NewRegionSet(face.Seconds, face.Minutes, face.Hours),
		},
		{
			name: "hour boundary 12h same half",
			from: bt(2024, 3, 5, 12, 59, 59), to: bt(2024, 3, 5, 13, 0, 0), hour12: true,
			want: face.NewRegionSet(face.Seconds, face.Minutes, face.Hours),
		},
		{
			name: "noon 12h",
			from: bt(2024, 3, 5, 11, 59, 59), to: bt(2024, 3, 5, 12, 0, 0), hour12: true,
			want: face.NewRegionSet(face.Seconds, face.Minutes, face.Hours, face.AmPm),
		},
		{
			name: "midnight",
			from: bt(2024, 3, 5, 23, 59, 59), to: bt(2024, 3, 6, 0, 0, 0),
			want: face.NewRegionSet(face.Seconds, face.Minutes, face.Hours, face.Weekday, face.Date),
		},
		{
			name: "midnight 12h",
			from: bt(2024, 3, 5, 23, 59, 59), to: bt(2024, 3, 6, 0, 0, 0), hour12: true,
			want: face.NewRegionSet(face.Seconds, face.Minutes, face.Hours, face.AmPm, face.Weekday, face.Date),
		},
		{
			name: "new year",
			from: bt(2024, 12, 31, 23, 59, 59), to: bt(2025, 1, 1, 0, 0, 0),
			want: face.NewRegionSet(face.Seconds, face.Minutes, face.Hours, face.Weekday, face.Date),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := withSeconds()
			cfg.Face.Hour12 = tt.hour12

			s := tick.NewScheduler(tt.from)
			res := s.Tick(tt.to, cfg)
			assert.Equal(t, tt.want, res.Dirty, "got %s", res.Dirty)
			assert.Equal(t, tt.to, s.Last())
		})
	}
}

func TestScheduler_EachBoundaryOnce(t *testing.T) {
	cfg := withSeconds()
	s := tick.NewScheduler(bt(2024, 3, 5, 23, 59, 59))

	first := s.Tick(bt(2024, 3, 6, 0, 0, 0), cfg)
	assert.True(t, first.Dirty.Has(face.Date))

	// The following seconds only move the bar.
	for sec := 1; sec < 60; sec++ {
		res := s.Tick(bt(2024, 3, 6, 0, 0, sec), cfg)
		assert.Equal(t, face.NewRegionSet(face.Seconds), res.Dirty, "second %d", sec)
	}
}

func TestScheduler_SkippedAndRepeatedTicks(t *testing.T) {
	cfg := withSeconds()
	s := tick.NewScheduler(bt(2024, 3, 5, 10, 59, 58))

	// 10:59:59 never arrives: the hour still changes exactly once.
	res := s.Tick(bt(2024, 3, 5, 11, 0, 1), cfg)
	assert.True(t, res.Dirty.Has(face.Hours))
	assert.True(t, res.Dirty.Has(face.Minutes))

	// The same second delivered twice does not redraw the hour again.
	res = s.Tick(bt(2024, 3, 5, 11, 0, 1), cfg)
	assert.Equal(t, face.NewRegionSet(face.Seconds), res.Dirty)

	res = s.Tick(bt(2024, 3, 5, 11, 0, 2), cfg)
	assert.Equal(t, face.NewRegionSet(face.Seconds), res.Dirty)
}

func TestScheduler_SecondsHidden(t *testing.T) {
	cfg := tick.Config{}
	s := tick.NewScheduler(bt(2024, 3, 5, 10, 15, 0))

	assert.True(t, s.Tick(bt(2024, 3, 5, 10, 15, 30), cfg).Dirty.Empty())
	assert.Equal(t, face.NewRegionSet(face.Minutes), s.Tick(bt(2024, 3, 5, 10, 16, 0), cfg).Dirty)
}

func TestScheduler_BatteryFollowsMinutes(t *testing.T) {
	cfg := withSeconds()
	cfg.Face.ShowBattery = true
	s := tick.NewScheduler(bt(2024, 3, 5, 10, 15, 58))

	assert.False(t, s.Tick(bt(2024, 3, 5, 10, 15, 59), cfg).Dirty.Has(face.Battery))
	assert.True(t, s.Tick(bt(2024, 3, 5, 10, 16, 0), cfg).Dirty.Has(face.Battery))
}

func TestScheduler_Pulse(t *testing.T) {
	cfg := withSeconds()
	s := tick.NewScheduler(bt(2024, 3, 5, 10, 59, 59))
	assert.False(t, s.Tick(bt(2024, 3, 5, 11, 0, 0), cfg).Pulse, "vibration disabled")

	cfg.VibrateOnHour = true
	assert.False(t, s.Tick(bt(2024, 3, 5, 11, 0, 1), cfg).Pulse, "not an hour boundary")
	assert.False(t, s.Tick(bt(2024, 3, 5, 11, 59, 0), cfg).Pulse, "minute boundary only")
	assert.True(t, s.Tick(bt(2024, 3, 5, 12, 0, 0), cfg).Pulse)
	assert.False(t, s.Tick(bt(2024, 3, 5, 12, 0, 0), cfg).Pulse, "repeated tick")
}
