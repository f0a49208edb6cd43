package settings_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-bigh/internal/config"
	"github.com/tartampluch/go-bigh/internal/settings"
	"github.com/zalando/go-keyring"
)

// MockFetcher simulates the network layer.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

func body(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}

func TestSyncer_AppliesRemoteUpdate(t *testing.T) {
	store := newStore(t)
	store.SetSyncUser("alice")

	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "https://example.com/face.json", "alice", "s3cret").
		Return(body(`{"weekday_mode":"french","saved":true}`), nil)

	syncer := &settings.Syncer{
		Store:   store,
		Fetcher: fetcher,
		Password: func(user string) (string, error) {
			assert.Equal(t, "alice", user)
			return "s3cret", nil
		},
	}

	applied, err := syncer.Sync(context.Background(), "https://example.com/face.json")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, config.WeekdayModeFrench, store.Load().WeekdayMode)
	fetcher.AssertExpectations(t)
}

func TestSyncer_PasswordFailureFallsBackToEmpty(t *testing.T) {
	store := newStore(t)
	store.SetSyncUser("bob")

	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, mock.Anything, "bob", "").
		Return(body(`{"show_seconds":false}`), nil)

	syncer := &settings.Syncer{
		Store:    store,
		Fetcher:  fetcher,
		Password: func(string) (string, error) { return "", errors.New("locked") },
	}

	applied, err := syncer.Sync(context.Background(), "http://example.com")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.False(t, store.Load().ShowSeconds)
	fetcher.AssertExpectations(t)
}

func TestSyncer_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*MockFetcher)
	}{
		{"network error", func(m *MockFetcher) {
			m.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(nil, errors.New("network unreachable"))
		}},
		{"invalid document", func(m *MockFetcher) {
			m.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(body(`{"first_day_of_week":8}`), nil)
		}},
		{"garbage", func(m *MockFetcher) {
			m.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(body(`<html>`), nil)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(t)
			fetcher := new(MockFetcher)
			tt.setup(fetcher)

			syncer := &settings.Syncer{Store: store, Fetcher: fetcher}
			applied, err := syncer.Sync(context.Background(), "http://example.com")
			assert.Error(t, err)
			assert.False(t, applied)
			assert.Equal(t, settings.Defaults(), store.Load())
		})
	}
}

func TestSyncer_DiscardedDocument(t *testing.T) {
	store := newStore(t)
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, mock.Anything, "", "").
		Return(body(`{"weekday_mode":"spanish","saved":false}`), nil)

	applied, err := (&settings.Syncer{Store: store, Fetcher: fetcher}).Sync(context.Background(), "http://example.com")
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, config.DefaultWeekdayMode, store.Load().WeekdayMode)
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "alice" || pass != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, config.UserAgent, r.Header.Get(config.HeaderUserAgent))
		w.Header().Set(config.HeaderContentType, config.MimeJSON)
		_, _ = w.Write([]byte(`{"clock_24h":false}`))
	}))
	defer srv.Close()

	f := settings.NewHTTPFetcher()

	rc, err := f.Fetch(context.Background(), srv.URL, "alice", "s3cret")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	_ = rc.Close()
	assert.JSONEq(t, `{"clock_24h":false}`, string(data))

	_, err = f.Fetch(context.Background(), srv.URL, "alice", "wrong")
	assert.ErrorContains(t, err, config.ErrUnexpectedStatus)

	_, err = f.Fetch(context.Background(), "ftp://example.com/face.json", "", "")
	assert.ErrorContains(t, err, config.ErrProtocol)

	_, err = f.Fetch(context.Background(), "://bad", "", "")
	assert.ErrorContains(t, err, config.ErrInvalidURL)
}

func TestSaveCredentials(t *testing.T) {
	keyring.MockInit()
	store := newStore(t)

	require.NoError(t, store.SaveCredentials("carol", "pa55"))
	assert.Equal(t, "carol", store.SyncUser())

	pass, err := settings.KeyringPassword("carol")
	require.NoError(t, err)
	assert.Equal(t, "pa55", pass)
}
