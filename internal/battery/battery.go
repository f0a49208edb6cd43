// Package battery provides the battery level sources of the face.
package battery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tartampluch/go-bigh/internal/config"
)

// Fixed reports a constant level. It stands in for hosts without a battery.
type Fixed int

// Level returns the fixed percentage.
func (f Fixed) Level() (int, error) {
	return int(f), nil
}

// Sysfs reads the capacity of the first power supply matching Pattern.
type Sysfs struct {
	Pattern string
}

// NewSysfs reads from the standard Linux power supply class.
func NewSysfs() *Sysfs {
	return &Sysfs{Pattern: config.BatterySysfsGlob}
}

// Level returns the capacity in percent, clamped to 0..100.
func (s *Sysfs) Level() (int, error) {
	matches, err := filepath.Glob(s.Pattern)
	if err != nil {
		return config.BatteryUnknown, fmt.Errorf("%s: %w", config.ErrBatteryRead, err)
	}
	if len(matches) == 0 {
		return config.BatteryUnknown, errors.New(config.ErrBatteryNone)
	}

	b, err := os.ReadFile(matches[0])
	if err != nil {
		return config.BatteryUnknown, fmt.Errorf("%s: %w", config.ErrBatteryRead, err)
	}
	level, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return config.BatteryUnknown, fmt.Errorf("%s: %w", config.ErrBatteryRead, err)
	}
	return min(max(level, 0), config.BatteryFull), nil
}

// Reader is satisfied by every source in this package.
type Reader interface {
	Level() (int, error)
}

// Parse builds a source from a flag value: "sysfs" or a fixed percentage.
func Parse(source string) (Reader, error) {
	source = strings.TrimSpace(source)
	if source == config.DefaultBatterySource {
		return NewSysfs(), nil
	}
	level, err := strconv.Atoi(source)
	if err != nil || level < 0 || level > config.BatteryFull {
		return nil, fmt.Errorf("%s: %q", config.ErrBatterySource, source)
	}
	return Fixed(level), nil
}
