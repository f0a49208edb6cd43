package tick

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-bigh/internal/config"
	"github.com/tartampluch/go-bigh/internal/engine"
	"github.com/tartampluch/go-bigh/internal/face"
)

// Renderer consumes plans. Regions absent from a plan must be left alone.
type Renderer interface {
	Render(plan face.Plan)
}

// Haptic fires the hour-boundary pulse. It must not block.
type Haptic interface {
	Pulse()
}

// BatteryReader reports the battery level in percent.
type BatteryReader interface {
	Level() (int, error)
}

// Runner drives the scheduler from a clock and pushes composed plans to the renderers.
// Step and Run must be called from a single goroutine; SetConfig may be called from any.
type Runner struct {
	Clock     engine.Clock
	Haptic    Haptic
	Battery   BatteryReader
	Renderers []Renderer

	cfg          atomic.Pointer[Config]
	reconfigured chan struct{}
	sched        *Scheduler
}

// NewRunner builds a runner around an initial configuration.
func NewRunner(clock engine.Clock, cfg Config, renderers ...Renderer) *Runner {
	r := &Runner{
		Clock:        clock,
		Renderers:    renderers,
		reconfigured: make(chan struct{}, config.ChannelBufferSize),
	}
	r.cfg.Store(&cfg)
	return r
}

// Config returns the active configuration.
func (r *Runner) Config() Config {
	return *r.cfg.Load()
}

// SetConfig replaces the configuration as a whole. The next composition
// uses the new value and redraws every region.
func (r *Runner) SetConfig(cfg Config) {
	r.cfg.Store(&cfg)
	select {
	case r.reconfigured <- struct{}{}:
	default:
	}
	slog.Info(config.MsgConfigSwapped,
		config.LogKeyComponent, config.CompTick,
		config.LogKeyMode, cfg.Face.WeekdayMode.String())
}

// Redraw reads the clock and recomposes the whole face.
// The first call also initializes the scheduler state.
func (r *Runner) Redraw() face.Plan {
	now := engine.Now(r.Clock)
	cfg := r.Config()
	if r.sched == nil {
		r.sched = NewScheduler(now)
	} else if res := r.sched.Tick(now, cfg); res.Pulse {
		r.pulse(now)
	}
	return r.render(now, cfg, face.AllRegions)
}

// Step handles one tick event.
func (r *Runner) Step() face.Plan {
	if r.sched == nil {
		return r.Redraw()
	}

	now := engine.Now(r.Clock)
	cfg := r.Config()
	res := r.sched.Tick(now, cfg)

	if res.Pulse {
		r.pulse(now)
	}
	return r.render(now, cfg, res.Dirty)
}

func (r *Runner) pulse(now engine.BrokenTime) {
	if r.Haptic == nil {
		return
	}
	slog.Info(config.MsgHaptic,
		config.LogKeyComponent, config.CompTick,
		config.LogKeyTime, now.String())
	r.Haptic.Pulse()
}

func (r *Runner) render(now engine.BrokenTime, cfg Config, dirty face.RegionSet) face.Plan {
	battery := config.BatteryUnknown
	if dirty.Has(face.Battery) && cfg.Face.ShowBattery {
		battery = r.readBattery()
	}

	plan := face.Compose(now, cfg.Face, dirty, battery)
	slog.Debug(config.MsgTick,
		config.LogKeyComponent, config.CompTick,
		config.LogKeyTime, now.String(),
		config.LogKeyDirty, dirty.String(),
		config.LogKeyLevel, battery)

	if plan.Empty() {
		return plan
	}
	for _, out := range r.Renderers {
		out.Render(plan)
	}
	return plan
}

func (r *Runner) readBattery() int {
	if r.Battery == nil {
		return config.BatteryUnknown
	}
	level, err := r.Battery.Level()
	if err != nil {
		slog.Debug(config.MsgBatteryFailed,
			config.LogKeyComponent, config.CompBattery,
			config.LogKeyError, err)
		return config.BatteryUnknown
	}
	return level
}

// Run redraws once, then ticks on every second (or minute when seconds are
// hidden) until ctx is cancelled. A configuration change triggers a full redraw.
func (r *Runner) Run(ctx context.Context) error {
	log := slog.With(config.LogKeyComponent, config.CompTick)

	r.Redraw()
	interval := granularity(r.Config())
	timer := time.NewTimer(untilNext(r.Clock.Now(), interval))
	defer timer.Stop()

	log.Info(config.MsgRunnerStart, config.LogKeyNew, interval)

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgRunnerStop)
			return ctx.Err()

		case <-r.reconfigured:
			r.Redraw()
			if next := granularity(r.Config()); next != interval {
				log.Info(config.MsgGranularity, config.LogKeyOld, interval, config.LogKeyNew, next)
				interval = next
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(untilNext(r.Clock.Now(), interval))
			}

		case <-timer.C:
			r.Step()
			timer.Reset(untilNext(r.Clock.Now(), interval))
		}
	}
}

func granularity(cfg Config) time.Duration {
	if cfg.Face.ShowSeconds {
		return config.TickSecond
	}
	return config.TickMinute
}

// untilNext is the delay to the next whole interval after now.
func untilNext(now time.Time, interval time.Duration) time.Duration {
	return now.Truncate(interval).Add(interval).Sub(now)
}
