package face

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-bigh/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// GlyphSet resolves the non-digit glyphs a weekday mode needs.
type GlyphSet interface {
	Mode() WeekdayMode
	// Label returns the strip label for weekday (0=Sunday).
	Label(weekday int) string
}

// GlyphLoader hands out the glyph set of a mode.
// Sets that fall out of use are released by the loader.
type GlyphLoader interface {
	Load(mode WeekdayMode) (GlyphSet, error)
}

type labelSet struct {
	mode   WeekdayMode
	labels [config.DaysPerWeek]string
}

func (s *labelSet) Mode() WeekdayMode { return s.mode }

func (s *labelSet) Label(weekday int) string {
	if weekday < 0 || weekday >= len(s.labels) {
		return ""
	}
	return s.labels[weekday]
}

// Glyphs loads glyph sets from the embedded locales and keeps the most recent ones.
type Glyphs struct {
	bundle *i18n.Bundle
	cache  *lru.Cache[WeekdayMode, *labelSet]
}

// NewGlyphs builds the translation bundle and the set cache.
func NewGlyphs() (*Glyphs, error) {
	bundle, err := loadBundle()
	if err != nil {
		return nil, err
	}

	cache, err := lru.NewWithEvict(config.GlyphSetCacheSize, func(mode WeekdayMode, _ *labelSet) {
		slog.Debug(config.MsgGlyphReleased,
			config.LogKeyComponent, config.CompFace,
			config.LogKeyMode, mode.String())
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrGlyphCache, err)
	}

	return &Glyphs{bundle: bundle, cache: cache}, nil
}

// Load returns the glyph set for mode, building it on first use.
func (g *Glyphs) Load(mode WeekdayMode) (GlyphSet, error) {
	if set, ok := g.cache.Get(mode); ok {
		return set, nil
	}

	set := &labelSet{mode: mode}
	if !mode.Named() {
		// International numbering: Monday is 1, Sunday is 7.
		for wd := range set.labels {
			iso := wd
			if iso == 0 {
				iso = config.DaysPerWeek
			}
			set.labels[wd] = strconv.Itoa(iso)
		}
	} else {
		loc := i18n.NewLocalizer(g.bundle, mode.Language())
		for wd, key := range config.TKeyWeekdays {
			msg, err := loc.Localize(&i18n.LocalizeConfig{MessageID: key})
			if err != nil {
				return nil, fmt.Errorf("%s: %s: %w", config.ErrGlyphSet, mode, err)
			}
			set.labels[wd] = msg
		}
	}

	g.cache.Add(mode, set)
	slog.Debug(config.MsgGlyphLoaded,
		config.LogKeyComponent, config.CompFace,
		config.LogKeyMode, mode.String())
	return set, nil
}

func loadBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name)
			continue
		}
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", config.ErrLocaleLoad, name, err)
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyFile, name)
	}
	return bundle, nil
}
