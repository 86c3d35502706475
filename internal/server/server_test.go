package server

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/codec"
	"github.com/tartampluch/go-addressbook/internal/config"
)

var sampleContacts = []addressbook.Contact{
	{ID: "1", FirstName: "John", LastName: "Doe", Phone: "(555) 123-4567", Email: "john.doe@example.com", Favorite: true},
	{ID: "2", FirstName: "Jane", LastName: "Smith", Email: "jane.smith@example.com"},
}

func get(t *testing.T, h http.Handler, path string, header http.Header) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w.Result()
}

// -----------------------------------------------------------------------------
// Handler Tests
// -----------------------------------------------------------------------------

func TestHandler_ServesVCardFeed(t *testing.T) {
	srv := NewContactFeedServer("0")
	require.NoError(t, srv.Publish(sampleContacts))

	resp := get(t, srv.Handler(), "/", nil)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeTextVCard, resp.Header.Get(config.HeaderContentType))
	assert.Equal(t, config.MimeNoSniff, resp.Header.Get(config.HeaderXContentType))
	assert.Contains(t, resp.Header.Get(config.HeaderCacheControl), "no-cache")
	assert.NotEmpty(t, resp.Header.Get(config.HeaderETag))

	rows, err := codec.VCard{}.Decode(resp.Body)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "john.doe@example.com", rows[0].Email)
	assert.Equal(t, config.FavoriteYes, rows[0].Favorite)
}

func TestHandler_ServesSpreadsheet(t *testing.T) {
	srv := NewContactFeedServer("0")
	require.NoError(t, srv.Publish(sampleContacts))

	resp := get(t, srv.Handler(), config.RouteXLSX, nil)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeXLSX, resp.Header.Get(config.HeaderContentType))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	rows, err := codec.XLSX{}.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, addressbook.ToRows(sampleContacts), rows)
}

func TestHandler_UnknownPath(t *testing.T) {
	srv := NewContactFeedServer("0")
	require.NoError(t, srv.Publish(nil))

	resp := get(t, srv.Handler(), "/nope", nil)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// TestHandler_Caching checks If-None-Match yields 304 with an empty body.
func TestHandler_Caching(t *testing.T) {
	srv := NewContactFeedServer("0")
	require.NoError(t, srv.Publish(sampleContacts))

	first := get(t, srv.Handler(), "/", nil)
	_ = first.Body.Close()
	etag := first.Header.Get(config.HeaderETag)
	require.NotEmpty(t, etag)

	second := get(t, srv.Handler(), "/", http.Header{config.HeaderIfNoneMatch: {etag}})
	defer func() { _ = second.Body.Close() }()

	assert.Equal(t, http.StatusNotModified, second.StatusCode)
	body, _ := io.ReadAll(second.Body)
	assert.Empty(t, body)
}

func TestHandler_ETagChangesWithContent(t *testing.T) {
	srv := NewContactFeedServer("0")

	require.NoError(t, srv.Publish(sampleContacts[:1]))
	before := get(t, srv.Handler(), "/", nil)
	_ = before.Body.Close()

	require.NoError(t, srv.Publish(sampleContacts))
	after := get(t, srv.Handler(), "/", http.Header{config.HeaderIfNoneMatch: {before.Header.Get(config.HeaderETag)}})
	defer func() { _ = after.Body.Close() }()

	assert.Equal(t, http.StatusOK, after.StatusCode)
	assert.Equal(t, 2, srv.Count())
}

// TestHandler_StaleETagBeatsLastModified republishes within the same second:
// Last-Modified alone cannot tell the feeds apart, the ETag can.
func TestHandler_StaleETagBeatsLastModified(t *testing.T) {
	srv := NewContactFeedServer("0")

	require.NoError(t, srv.Publish(nil))
	before := get(t, srv.Handler(), "/", nil)
	_ = before.Body.Close()

	require.NoError(t, srv.Publish(sampleContacts[:1]))
	after := get(t, srv.Handler(), "/", http.Header{
		config.HeaderIfNoneMatch:     {before.Header.Get(config.HeaderETag)},
		config.HeaderIfModifiedSince: {before.Header.Get(config.HeaderLastModified)},
	})
	defer func() { _ = after.Body.Close() }()

	assert.Equal(t, http.StatusOK, after.StatusCode)
	assert.NotEqual(t, before.Header.Get(config.HeaderETag), after.Header.Get(config.HeaderETag))

	rows, err := codec.VCard{}.Decode(after.Body)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestHandler_IfModifiedSinceWithoutETag(t *testing.T) {
	srv := NewContactFeedServer("0")
	require.NoError(t, srv.Publish(sampleContacts))

	first := get(t, srv.Handler(), "/", nil)
	_ = first.Body.Close()
	lastMod := first.Header.Get(config.HeaderLastModified)

	tests := []struct {
		name  string
		since string
		want  int
	}{
		{"SameTime", lastMod, http.StatusNotModified},
		{"Older", time.Now().Add(-time.Hour).UTC().Format(http.TimeFormat), http.StatusOK},
		{"Garbage", "yesterday", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, srv.Handler(), "/", http.Header{config.HeaderIfModifiedSince: {tt.since}})
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	srv := NewContactFeedServer("0")

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, config.AllowedMethods, resp.Header.Get(config.HeaderAllow))
}

// TestHandler_Initializing verifies 503 before the first publish.
func TestHandler_Initializing(t *testing.T) {
	srv := NewContactFeedServer("0")
	assert.Equal(t, -1, srv.Count())

	resp := get(t, srv.Handler(), "/", nil)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, config.RetryAfterSeconds, resp.Header.Get(config.HeaderRetryAfter))
}

// -----------------------------------------------------------------------------
// Concurrency Tests (Race Detection)
// -----------------------------------------------------------------------------

// TestServer_RaceCondition publishes and reads concurrently. Run with -race.
func TestServer_RaceCondition(t *testing.T) {
	srv := NewContactFeedServer("0")
	h := srv.Handler()
	var wg sync.WaitGroup

	end := time.Now().Add(300 * time.Millisecond)

	for w := 0; w < 3; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; time.Now().Before(end); i++ {
				c := addressbook.Contact{ID: fmt.Sprintf("%d-%d", id, i), FirstName: "Writer"}
				assert.NoError(t, srv.Publish([]addressbook.Contact{c}))
			}
		}(w)
	}

	for r := 0; r < 10; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				w := httptest.NewRecorder()
				h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
				if w.Code != http.StatusOK && w.Code != http.StatusServiceUnavailable {
					t.Errorf("Unexpected status code during race test: %d", w.Code)
				}
			}
		}()
	}

	wg.Wait()
}

// -----------------------------------------------------------------------------
// Integration Tests (Real TCP Lifecycle)
// -----------------------------------------------------------------------------

func TestServer_Lifecycle(t *testing.T) {
	const port = "18097"

	srv := NewContactFeedServer(port)
	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)

	go func() {
		errChan <- srv.Start(ctx)
	}()

	url := fmt.Sprintf(config.FormatFeedURL, config.LocalhostBindAddr, port)

	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}, 2*time.Second, 50*time.Millisecond, "Server failed to bind/listen in time")

	resp, err := http.Get(url)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	_ = resp.Body.Close()

	require.NoError(t, srv.Publish(sampleContacts))

	resp, err = http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "BEGIN:VCARD")

	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err, "Server should shutdown gracefully without error")
	case <-time.After(5 * time.Second):
		t.Fatal("Server shutdown timed out")
	}
}

func TestServer_StartRequiresPort(t *testing.T) {
	err := NewContactFeedServer("").Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrPortRequired)
}
