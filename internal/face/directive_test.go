package face_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-bigh/internal/config"
	"github.com/tartampluch/go-bigh/internal/engine"
	"github.com/tartampluch/go-bigh/internal/face"
)

var march5 = engine.BrokenTime{Year: 2024, Month: 3, Day: 5, Weekday: 2, Hour: 14, Minute: 7, Second: 30}

func TestParseDateFormat_Expansion(t *testing.T) {
	tests := []struct {
		name   string
		format string
		today  engine.BrokenTime
		want   []string
	}{
		{
			name:   "Full year, padded month and day",
			format: "Y-M-D",
			today:  march5,
			want:   []string{"2", "0", "2", "4", "dash", "0", "3", "dash", "0", "5"},
		},
		{
			name:   "Compact month and day, short year",
			format: "m/d/y",
			today:  march5,
			want:   []string{"3", "slash", "5", "slash", "2", "4"},
		},
		{
			name:   "Compact fields keep two digits when needed",
			format: "d.m",
			today:  engine.BrokenTime{Year: 2024, Month: 12, Day: 25},
			want:   []string{"2", "5", "dot", "1", "2"},
		},
		{
			name:   "Blank advances a row",
			format: "D M",
			today:  march5,
			want:   []string{"0", "5", "blank", "0", "3"},
		},
		{
			name:   "Unknown characters are ignored",
			format: "D?x%M",
			today:  march5,
			want:   []string{"0", "5", "0", "3"},
		},
		{
			name:   "Short year keeps its leading zero",
			format: "y",
			today:  engine.BrokenTime{Year: 2007, Month: 1, Day: 1},
			want:   []string{"0", "7"},
		},
		{
			name:   "Empty format",
			format: "",
			today:  march5,
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := face.ParseDateFormat(tt.format).Expand(tt.today)
			assert.Equal(t, tt.want, face.Selectors(got))
		})
	}
}

func TestParseDateFormat_Truncation(t *testing.T) {
	// Rows past the strip height are dropped silently.
	rows := face.ParseDateFormat("Y-M-D-Y").Expand(march5)
	assert.Len(t, rows, face.MaxDateRows)
	assert.Equal(t, []string{"2", "0", "2", "4", "dash", "0", "3", "dash", "0", "5"}, face.Selectors(rows))

	// The directive list itself never exceeds the row count.
	assert.Len(t, face.ParseDateFormat("- - - - - - - -"), face.MaxDateRows)
}

func TestExpand_LogsTruncation(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	// Six directives, eleven rows once the year is spelled out.
	f := face.ParseDateFormat("Y-M-D-")
	assert.Len(t, f, 6)
	assert.Empty(t, buf.String())

	rows := f.Expand(march5)
	assert.Len(t, rows, face.MaxDateRows)
	assert.Contains(t, buf.String(), config.MsgFormatTrunc)
	assert.Contains(t, buf.String(), `"rows":11`)
}

func TestParseDateFormat_Directives(t *testing.T) {
	f := face.ParseDateFormat("Yy-Mm.Dd/ ")
	kinds := make([]face.DirectiveKind, len(f))
	for i, d := range f {
		kinds[i] = d.Kind
	}
	assert.Equal(t, []face.DirectiveKind{
		face.YearFull, face.YearShort, face.Separator,
		face.MonthZeroPadded, face.MonthCompact, face.Separator,
		face.DayZeroPadded, face.DayCompact, face.Separator, face.Blank,
	}, kinds)
	assert.Equal(t, face.MarkDash, f[2].Mark)
	assert.Equal(t, face.MarkDot, f[5].Mark)
	assert.Equal(t, face.MarkSlash, f[8].Mark)
}
