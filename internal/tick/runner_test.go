package tick_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-bigh/internal/face"
	"github.com/tartampluch/go-bigh/internal/tick"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockClock controls time for deterministic testing.
type MockClock struct {
	mu          sync.Mutex
	CurrentTime time.Time
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CurrentTime
}

func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CurrentTime = t
}

type MockHaptic struct {
	mock.Mock
}

func (m *MockHaptic) Pulse() {
	m.Called()
}

type MockBattery struct {
	mock.Mock
}

func (m *MockBattery) Level() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

// recorder keeps every plan it is handed and forwards it on a channel.
type recorder struct {
	mu    sync.Mutex
	plans []face.Plan
	ch    chan face.Plan
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan face.Plan, 16)}
}

func (r *recorder) Render(plan face.Plan) {
	r.mu.Lock()
	r.plans = append(r.plans, plan)
	r.mu.Unlock()
	select {
	case r.ch <- plan:
	default:
	}
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.plans)
}

func at(hour, minute, second int) time.Time {
	return time.Date(2024, 3, 5, hour, minute, second, 0, time.UTC)
}

// -----------------------------------------------------------------------------
// Test Cases
// -----------------------------------------------------------------------------

func TestRunner_FirstStepRedrawsEverything(t *testing.T) {
	clock := &MockClock{CurrentTime: at(10, 15, 20)}
	rec := newRecorder()
	r := tick.NewRunner(clock, withSeconds(), rec)

	plan := r.Step()
	assert.Len(t, plan.Changes, len(face.Regions()))
	assert.Equal(t, 1, rec.count())
}

func TestRunner_StepRendersOnlyDirtyRegions(t *testing.T) {
	clock := &MockClock{CurrentTime: at(10, 15, 20)}
	rec := newRecorder()
	r := tick.NewRunner(clock, withSeconds(), rec)
	r.Redraw()

	clock.Set(at(10, 15, 21))
	plan := r.Step()
	require.Len(t, plan.Changes, 1)
	_, ok := plan.Changed(face.Seconds)
	assert.True(t, ok)

	clock.Set(at(10, 16, 0))
	plan = r.Step()
	assert.Len(t, plan.Changes, 2)
	_, ok = plan.Changed(face.Minutes)
	assert.True(t, ok)
	assert.Equal(t, 3, rec.count())
}

func TestRunner_EmptyPlanIsNotRendered(t *testing.T) {
	clock := &MockClock{CurrentTime: at(10, 15, 20)}
	rec := newRecorder()
	r := tick.NewRunner(clock, tick.Config{}, rec)
	r.Redraw()

	clock.Set(at(10, 15, 21))
	assert.True(t, r.Step().Empty())
	assert.Equal(t, 1, rec.count())
}

func TestRunner_HourPulse(t *testing.T) {
	clock := &MockClock{CurrentTime: at(10, 59, 59)}
	haptic := new(MockHaptic)
	haptic.On("Pulse").Return().Once()

	cfg := withSeconds()
	cfg.VibrateOnHour = true
	r := tick.NewRunner(clock, cfg)
	r.Haptic = haptic
	r.Redraw()

	clock.Set(at(11, 0, 0))
	r.Step()
	clock.Set(at(11, 0, 1))
	r.Step()

	haptic.AssertExpectations(t)
}

func TestRunner_RedrawOnHourKeepsPulse(t *testing.T) {
	clock := &MockClock{CurrentTime: at(10, 59, 59)}
	haptic := new(MockHaptic)
	haptic.On("Pulse").Return().Once()

	cfg := withSeconds()
	cfg.VibrateOnHour = true
	r := tick.NewRunner(clock, cfg)
	r.Haptic = haptic
	r.Redraw()

	// A reconfiguration landing on the hour consumes the boundary.
	clock.Set(at(11, 0, 0))
	r.SetConfig(cfg)
	r.Redraw()
	clock.Set(at(11, 0, 1))
	r.Step()

	haptic.AssertExpectations(t)
}

func TestRunner_BatteryReadOnMinuteBoundary(t *testing.T) {
	clock := &MockClock{CurrentTime: at(10, 15, 58)}
	battery := new(MockBattery)
	battery.On("Level").Return(50, nil).Twice()

	cfg := withSeconds()
	cfg.Face.ShowBattery = true
	r := tick.NewRunner(clock, cfg)
	r.Battery = battery

	plan := r.Redraw()
	rp, ok := plan.Changed(face.Battery)
	require.True(t, ok)
	assert.Len(t, rp.Glyphs, 1)

	clock.Set(at(10, 15, 59))
	r.Step()
	clock.Set(at(10, 16, 0))
	r.Step()

	battery.AssertExpectations(t)
}

func TestRunner_BatteryFailureClearsIndicator(t *testing.T) {
	clock := &MockClock{CurrentTime: at(10, 15, 58)}
	battery := new(MockBattery)
	battery.On("Level").Return(0, errors.New("no battery"))

	cfg := withSeconds()
	cfg.Face.ShowBattery = true
	r := tick.NewRunner(clock, cfg)
	r.Battery = battery

	rp, ok := r.Redraw().Changed(face.Battery)
	require.True(t, ok)
	assert.Empty(t, rp.Glyphs)
}

func TestRunner_SetConfig(t *testing.T) {
	clock := &MockClock{CurrentTime: at(10, 15, 0)}
	r := tick.NewRunner(clock, tick.Config{})
	assert.False(t, r.Config().Face.ShowSeconds)

	r.SetConfig(withSeconds())
	assert.True(t, r.Config().Face.ShowSeconds)
}

func TestRunner_RunRedrawsOnConfigChange(t *testing.T) {
	// Seconds hidden and the clock parked on a whole minute: no tick fires during the test.
	clock := &MockClock{CurrentTime: at(10, 15, 0)}
	rec := newRecorder()
	r := tick.NewRunner(clock, tick.Config{}, rec)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	select {
	case plan := <-rec.ch:
		assert.Len(t, plan.Changes, len(face.Regions()), "startup redraw")
	case <-time.After(2 * time.Second):
		t.Fatal("no startup redraw")
	}

	next := tick.Config{Face: face.Config{WeekdayMode: face.ModeFrench}}
	r.SetConfig(next)

	select {
	case plan := <-rec.ch:
		assert.Len(t, plan.Changes, len(face.Regions()), "full redraw after reconfiguration")
		rp, ok := plan.Changed(face.Weekday)
		require.True(t, ok)
		require.Len(t, rp.Glyphs, 1)
		assert.Equal(t, face.MarkWeekdayLabel, rp.Glyphs[0].Mark)
	case <-time.After(2 * time.Second):
		t.Fatal("no redraw after reconfiguration")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop")
	}
}
