package tick

import (
	"github.com/tartampluch/go-bigh/internal/engine"
	"github.com/tartampluch/go-bigh/internal/face"
)

// Config is the runtime configuration shared by the scheduler and the composer.
type Config struct {
	Face          face.Config
	VibrateOnHour bool
}

// Result is what one tick asks for.
type Result struct {
	Dirty face.RegionSet
	// Pulse requests the hour-boundary haptic pulse.
	Pulse bool
}

// Scheduler decides which regions a tick invalidates.
// Its only state is the previously observed time.
type Scheduler struct {
	last engine.BrokenTime
}

// NewScheduler starts from the time observed at startup.
func NewScheduler(start engine.BrokenTime) *Scheduler {
	return &Scheduler{last: start}
}

// Last returns the previously observed time.
func (s *Scheduler) Last() engine.BrokenTime {
	return s.last
}

// Tick records now and returns the regions to recompose.
//
// Each coarser boundary is only checked once the finer one has been crossed,
// so a region is never recomposed more often than it can change. Boundaries
// are detected against the last observed time rather than against second==0
// alone, so a skipped or repeated tick still yields exactly one recomposition.
func (s *Scheduler) Tick(now engine.BrokenTime, cfg Config) Result {
	last := s.last
	s.last = now

	var res Result
	if cfg.Face.ShowSeconds {
		res.Dirty = res.Dirty.With(face.Seconds)
	}

	if now.SameMinute(last) {
		return res
	}
	res.Dirty = res.Dirty.With(face.Minutes)
	if cfg.Face.ShowBattery {
		res.Dirty = res.Dirty.With(face.Battery)
	}

	if now.SameHour(last) {
		return res
	}
	res.Dirty = res.Dirty.With(face.Hours)
	if cfg.Face.Hour12 && (now.Hour%12 == 0 || now.Hour/12 != last.Hour/12) {
		res.Dirty = res.Dirty.With(face.AmPm)
	}
	res.Pulse = cfg.VibrateOnHour

	if now.SameDay(last) {
		return res
	}
	res.Dirty = res.Dirty.With(face.Weekday).With(face.Date)
	return res
}
