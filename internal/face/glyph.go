package face

import (
	"encoding/json"
	"fmt"
)

// Mark selects what a glyph draws. Digits carry their value in Glyph.Value.
type Mark uint8

const (
	MarkDigit Mark = iota
	MarkDash
	MarkSlash
	MarkDot
	MarkBlank
	MarkWeekdayLabel
	MarkHighlight
	MarkArrowPastFuture
	MarkArrowFuturePast
	MarkAM
	MarkPM
	MarkBar
)

var markNames = [...]string{
	MarkDigit:           "digit",
	MarkDash:            "dash",
	MarkSlash:           "slash",
	MarkDot:             "dot",
	MarkBlank:           "blank",
	MarkWeekdayLabel:    "weekday_label",
	MarkHighlight:       "highlight",
	MarkArrowPastFuture: "arrow_past_future",
	MarkArrowFuturePast: "arrow_future_past",
	MarkAM:              "am",
	MarkPM:              "pm",
	MarkBar:             "bar",
}

func (m Mark) String() string {
	if int(m) < len(markNames) {
		return markNames[m]
	}
	return fmt.Sprintf("mark(%d)", m)
}

func (m Mark) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mark) UnmarshalText(b []byte) error {
	for i, name := range markNames {
		if name == string(b) {
			*m = Mark(i)
			return nil
		}
	}
	return fmt.Errorf("unknown mark %q", b)
}

// Rect is a destination rectangle in panel pixels.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Glyph is one glyph selector placed on the panel.
type Glyph struct {
	Mark     Mark `json:"mark"`
	Value    int  `json:"value,omitempty"`
	Rect     Rect `json:"rect"`
	Inverted bool `json:"inverted,omitempty"`
}

// Digit returns the selector for a decimal digit.
func Digit(v int) Glyph {
	return Glyph{Mark: MarkDigit, Value: v}
}

// String renders digits as their value and markers by name, which keeps test failures readable.
func (g Glyph) String() string {
	if g.Mark == MarkDigit {
		return fmt.Sprint(g.Value)
	}
	return g.Mark.String()
}

// Selectors strips placement, leaving the ordered selector sequence.
func Selectors(glyphs []Glyph) []string {
	out := make([]string, len(glyphs))
	for i, g := range glyphs {
		out[i] = g.String()
	}
	return out
}

// Region names an independently redrawn area of the face.
type Region uint8

const (
	Seconds Region = iota
	Minutes
	Hours
	AmPm
	Weekday
	Date
	Battery

	regionCount
)

var regionNames = [regionCount]string{
	Seconds: "seconds",
	Minutes: "minutes",
	Hours:   "hours",
	AmPm:    "ampm",
	Weekday: "weekday",
	Date:    "date",
	Battery: "battery",
}

func (r Region) String() string {
	if r < regionCount {
		return regionNames[r]
	}
	return fmt.Sprintf("region(%d)", r)
}

func (r Region) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Region) UnmarshalText(b []byte) error {
	for i, name := range regionNames {
		if name == string(b) {
			*r = Region(i)
			return nil
		}
	}
	return fmt.Errorf("unknown region %q", b)
}

// Regions lists every region in drawing order.
func Regions() []Region {
	out := make([]Region, regionCount)
	for i := range out {
		out[i] = Region(i)
	}
	return out
}

// RegionSet is a set of dirty regions.
type RegionSet uint8

// AllRegions marks the whole face dirty.
const AllRegions RegionSet = 1<<regionCount - 1

// NewRegionSet builds a set from its members.
func NewRegionSet(regions ...Region) RegionSet {
	var s RegionSet
	for _, r := range regions {
		s = s.With(r)
	}
	return s
}

// With returns s plus r.
func (s RegionSet) With(r Region) RegionSet {
	return s | 1<<r
}

// Has reports whether r is in s.
func (s RegionSet) Has(r Region) bool {
	return s&(1<<r) != 0
}

// Empty reports whether no region is dirty.
func (s RegionSet) Empty() bool {
	return s == 0
}

// Members lists the regions of s in drawing order.
func (s RegionSet) Members() []Region {
	var out []Region
	for _, r := range Regions() {
		if s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

func (s RegionSet) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, regionCount)
	for _, r := range s.Members() {
		names = append(names, r.String())
	}
	return json.Marshal(names)
}

func (s RegionSet) String() string {
	b, _ := s.MarshalJSON()
	return string(b)
}
