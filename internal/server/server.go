package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tartampluch/go-bigh/internal/config"
	"github.com/tartampluch/go-bigh/internal/engine"
	"github.com/tartampluch/go-bigh/internal/face"
	"github.com/tartampluch/go-bigh/internal/settings"
	"github.com/tartampluch/go-bigh/internal/tick"
)

// Frame is the accumulated state of the face: every region as last recomposed.
type Frame struct {
	Generation uint64                          `json:"generation"`
	Time       engine.BrokenTime               `json:"time"`
	Regions    map[face.Region]face.RegionPlan `json:"regions"`
}

// frameItem is an encoded frame ready to be served.
type frameItem struct {
	data []byte
	etag string
	time engine.BrokenTime
}

// ConfigSource exposes the configuration currently driving the face.
type ConfigSource interface {
	Config() tick.Config
}

// settingsResponse is returned after a settings POST.
type settingsResponse struct {
	Applied bool     `json:"applied"`
	Keys    []string `json:"keys"`
}

// FaceServer serves the current face over HTTP and accepts settings updates.
// It implements tick.Renderer.
type FaceServer struct {
	Port   string
	Clock  engine.Clock
	Source ConfigSource
	// Store receives POSTed settings. The route is not mounted when nil.
	Store *settings.Store

	// cache is read on every request and replaced on every render.
	cache atomic.Pointer[frameItem]

	mu    sync.Mutex
	frame Frame
}

// NewFaceServer creates a server with an empty frame.
func NewFaceServer(port string, source ConfigSource, store *settings.Store) *FaceServer {
	return &FaceServer{
		Port:   port,
		Clock:  engine.RealClock{},
		Source: source,
		Store:  store,
		frame:  Frame{Regions: make(map[face.Region]face.RegionPlan)},
	}
}

// Handler builds the routes of the server.
func (s *FaceServer) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get(config.RouteRoot, s.handleFrame)
	r.Head(config.RouteRoot, s.handleFrame)
	r.Get(config.RouteRibbon, s.handleRibbon)
	if s.Store != nil {
		r.Post(config.RouteSettings, s.handleSettings)
	}
	return r
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *FaceServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Render folds plan into the accumulated frame and publishes the result.
// Regions the plan does not mention keep their previous content.
func (s *FaceServer) Render(plan face.Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for r, rp := range plan.Changes {
		s.frame.Regions[r] = rp
	}
	s.frame.Time = plan.Time
	s.frame.Generation++

	data, err := json.Marshal(s.frame)
	if err != nil {
		slog.Error(config.ErrFrameEncode,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err)
		return
	}

	etag := fmt.Sprintf(config.FormatETag, fmt.Sprintf(config.FormatETagGeneration, s.frame.Generation))
	s.cache.Store(&frameItem{data: data, etag: etag, time: plan.Time})

	slog.Debug(config.MsgFrameUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// ready loads the current frame, answering 503 while nothing has been rendered.
func (s *FaceServer) ready(w http.ResponseWriter) *frameItem {
	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
	}
	return item
}

// handleFrame serves the accumulated frame as JSON with ETag support.
func (s *FaceServer) handleFrame(w http.ResponseWriter, r *http.Request) {
	item := s.ready(w)
	if item == nil {
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

// handleRibbon serves the seven ribbon days of the current frame as iCalendar.
func (s *FaceServer) handleRibbon(w http.ResponseWriter, r *http.Request) {
	item := s.ready(w)
	if item == nil {
		return
	}

	fdow := config.DefaultFirstDayOfWeek
	if s.Source != nil {
		fdow = s.Source.Config().Face.FirstDayOfWeek
	}

	data, err := engine.RibbonCalendar(item.time, fdow, s.Clock.Now())
	if err != nil {
		slog.Error(config.ErrICalEncode,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err)
		http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	if _, err := w.Write(data); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err)
	}
}

// handleSettings applies a sparse JSON settings update.
func (s *FaceServer) handleSettings(w http.ResponseWriter, r *http.Request) {
	log := slog.With(config.LogKeyComponent, config.CompServer)

	u, err := settings.DecodeUpdate(http.MaxBytesReader(w, r.Body, config.MaxSettingsSize))
	if err != nil {
		log.Warn(config.MsgSettingsRejected, config.LogKeyError, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	applied, err := s.Store.Apply(u)
	if err != nil {
		log.Warn(config.MsgSettingsRejected, config.LogKeyError, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := settingsResponse{Applied: applied, Keys: []string{}}
	if applied {
		resp.Keys = append(resp.Keys, u.Keys()...)
	}

	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error(config.ErrWriteResp, config.LogKeyError, err)
	}
}

// Snapshot returns a copy of the accumulated frame.
func (s *FaceServer) Snapshot() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := Frame{
		Generation: s.frame.Generation,
		Time:       s.frame.Time,
		Regions:    make(map[face.Region]face.RegionPlan, len(s.frame.Regions)),
	}
	for r, rp := range s.frame.Regions {
		out.Regions[r] = rp
	}
	return out
}
