package settings

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tartampluch/go-bigh/internal/config"
	"github.com/zalando/go-keyring"
)

// Fetcher retrieves a settings document.
type Fetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// HTTPFetcher implements Fetcher with net/http.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher creates a fetcher with the standard timeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{
			Timeout: config.HTTPTimeout,
		},
	}
}

// Fetch downloads the document at targetURL, with basic auth when credentials are set.
// Query parameters are kept out of the logs.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL, user, pass string) (io.ReadCloser, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompSettings),
		slog.String(config.LogKeyURL, u.Scheme+"://"+u.Host+u.Path),
	)
	log.Debug(config.MsgSyncFetching)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRequestBuild, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, config.MimeJSON)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrNetwork, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.Warn(config.MsgSyncBadStatus, slog.Int(config.LogKeyStatus, resp.StatusCode))
		return nil, fmt.Errorf("%s: %d %s", config.ErrUnexpectedStatus, resp.StatusCode, resp.Status)
	}
	return resp.Body, nil
}

// PasswordFunc looks up the password of user.
type PasswordFunc func(user string) (string, error)

// KeyringPassword reads the password from the OS keyring.
func KeyringPassword(user string) (string, error) {
	return keyring.Get(config.KeyringService, user)
}

// SaveCredentials stores the sync user in the preferences and its password in the OS keyring.
func (s *Store) SaveCredentials(user, pass string) error {
	s.SetSyncUser(user)
	if user == "" {
		return nil
	}
	if err := keyring.Set(config.KeyringService, user, pass); err != nil {
		return fmt.Errorf("%s: %w", config.ErrKeyringSave, err)
	}
	return nil
}

// Syncer pulls a settings document and applies it to the store.
type Syncer struct {
	Store    *Store
	Fetcher  Fetcher
	Password PasswordFunc
}

// NewSyncer wires a syncer to the network and the OS keyring.
func NewSyncer(store *Store) *Syncer {
	return &Syncer{
		Store:    store,
		Fetcher:  NewHTTPFetcher(),
		Password: KeyringPassword,
	}
}

// Sync fetches targetURL and applies the update it contains.
// It reports whether the store changed.
func (s *Syncer) Sync(ctx context.Context, targetURL string) (bool, error) {
	log := slog.With(config.LogKeyComponent, config.CompSettings)

	user := s.Store.SyncUser()
	pass := ""
	if user != "" && s.Password != nil {
		p, err := s.Password(user)
		if err != nil {
			log.Warn(config.MsgSyncPassFail, config.LogKeyUser, user, config.LogKeyError, err)
		} else {
			pass = p
		}
	}

	body, err := s.Fetcher.Fetch(ctx, targetURL, user, pass)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, fmt.Errorf("%s: %w", config.ErrSettingsFetch, err)
	}
	defer func() { _ = body.Close() }()

	u, err := DecodeUpdate(body)
	if err != nil {
		return false, err
	}

	applied, err := s.Store.Apply(u)
	if err != nil {
		return false, err
	}
	if applied {
		log.Info(config.MsgSettingsSync, config.LogKeyKeys, u.Keys())
	}
	return applied, nil
}
