package ui

import (
	"image/color"
	"log/slog"
	"strconv"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"github.com/tartampluch/go-bigh/internal/config"
	"github.com/tartampluch/go-bigh/internal/face"
	"github.com/tartampluch/go-bigh/internal/tick"
)

// ConfigSource reports the configuration the runner is composing with.
type ConfigSource interface {
	Config() tick.Config
}

// FaceView draws plans on a magnified copy of the panel.
// It implements tick.Renderer.
type FaceView struct {
	Glyphs face.GlyphLoader
	Source ConfigSource
	Scale  float32

	root    *fyne.Container
	mu      sync.Mutex
	regions map[face.Region]*fyne.Container
}

// NewFaceView builds one empty layer per region over a black panel.
func NewFaceView(glyphs face.GlyphLoader, source ConfigSource) *FaceView {
	v := &FaceView{
		Glyphs:  glyphs,
		Source:  source,
		Scale:   config.SimulatorScale,
		regions: make(map[face.Region]*fyne.Container),
	}

	panel := canvas.NewRectangle(color.Black)
	panel.Resize(v.size(config.ScreenWidth, config.ScreenHeight))

	layers := []fyne.CanvasObject{panel}
	for _, r := range face.Regions() {
		layer := container.NewWithoutLayout()
		v.regions[r] = layer
		layers = append(layers, layer)
	}
	v.root = container.NewWithoutLayout(layers...)
	return v
}

// Content returns the panel sized to the magnified screen.
func (v *FaceView) Content() fyne.CanvasObject {
	return container.NewGridWrap(v.size(config.ScreenWidth, config.ScreenHeight), v.root)
}

// Render queues plan on the UI thread.
func (v *FaceView) Render(plan face.Plan) {
	fyne.Do(func() { v.apply(plan) })
}

// apply replaces the layers of the regions in plan and leaves the others alone.
func (v *FaceView) apply(plan face.Plan) {
	v.mu.Lock()
	defer v.mu.Unlock()

	var labels face.GlyphSet
	for r, rp := range plan.Changes {
		layer, ok := v.regions[r]
		if !ok {
			continue
		}
		if labels == nil && r == face.Weekday {
			labels = v.labels()
		}

		objects := make([]fyne.CanvasObject, 0, len(rp.Glyphs))
		for _, g := range rp.Glyphs {
			if obj := v.glyphObject(g, labels); obj != nil {
				objects = append(objects, obj)
			}
		}
		layer.Objects = objects
		layer.Refresh()
	}
}

// labels loads the weekday labels of the active mode.
func (v *FaceView) labels() face.GlyphSet {
	if v.Glyphs == nil || v.Source == nil {
		return nil
	}
	mode := v.Source.Config().Face.WeekdayMode
	set, err := v.Glyphs.Load(mode)
	if err != nil {
		slog.Error(config.ErrGlyphSet,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyMode, mode.String(),
			config.LogKeyError, err)
		return nil
	}
	return set
}

// glyphObject turns one glyph selector into a canvas object, or nil for blanks.
func (v *FaceView) glyphObject(g face.Glyph, labels face.GlyphSet) fyne.CanvasObject {
	switch g.Mark {
	case face.MarkBlank:
		return nil
	case face.MarkHighlight, face.MarkBar:
		return v.place(canvas.NewRectangle(color.White), g.Rect)
	}

	var text string
	switch g.Mark {
	case face.MarkDigit:
		text = strconv.Itoa(g.Value)
	case face.MarkDash:
		text = config.SymbolDash
	case face.MarkSlash:
		text = config.SymbolSlash
	case face.MarkDot:
		text = config.SymbolDot
	case face.MarkWeekdayLabel:
		if labels != nil {
			text = labels.Label(g.Value)
		}
	case face.MarkArrowPastFuture:
		text = config.SymbolArrowPastFuture
	case face.MarkArrowFuturePast:
		text = config.SymbolArrowFuturePast
	case face.MarkAM:
		text = config.SymbolAM
	case face.MarkPM:
		text = config.SymbolPM
	}

	ink := color.Color(color.White)
	if g.Inverted {
		ink = color.Black
	}
	t := canvas.NewText(text, ink)
	t.Alignment = fyne.TextAlignCenter
	t.TextStyle = fyne.TextStyle{Bold: g.Mark == face.MarkDigit}
	t.TextSize = float32(g.Rect.H) * v.Scale * config.GlyphTextRatio
	return v.place(t, g.Rect)
}

func (v *FaceView) place(obj fyne.CanvasObject, r face.Rect) fyne.CanvasObject {
	obj.Move(fyne.NewPos(float32(r.X)*v.Scale, float32(r.Y)*v.Scale))
	obj.Resize(v.size(r.W, r.H))
	return obj
}

func (v *FaceView) size(w, h int) fyne.Size {
	return fyne.NewSize(float32(w)*v.Scale, float32(h)*v.Scale)
}

// Layer returns the objects currently drawn for r.
func (v *FaceView) Layer(r face.Region) []fyne.CanvasObject {
	v.mu.Lock()
	defer v.mu.Unlock()
	if layer, ok := v.regions[r]; ok {
		return layer.Objects
	}
	return nil
}
