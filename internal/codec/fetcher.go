package codec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// ErrRemoteStatus is returned when the remote answers with anything but 200.
var ErrRemoteStatus = errors.New(config.ErrFetchStatus)

// Fetcher retrieves a remote file for import.
// The interface keeps the UI testable without a network.
type Fetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// HTTPFetcher implements Fetcher using net/http.
type HTTPFetcher struct {
	Client *http.Client
	// MaxBytes caps the body handed to the decoder. Zero means
	// config.MaxHTTPResponseSize.
	MaxBytes int64
}

// NewHTTPFetcher creates an HTTPFetcher with the configured timeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client:   &http.Client{Timeout: config.HTTPTimeout},
		MaxBytes: config.MaxHTTPResponseSize,
	}
}

// acceptHeader advertises the formats ForPath can decode.
var acceptHeader = strings.Join([]string{config.MimeXLSX, config.MimeTextVCard, config.MimeAnyFallback}, ", ")

// Fetch downloads targetURL, with basic auth when credentials are set.
// Only the scheme, host and path are logged; the query may carry tokens.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL, user, pass string) (io.ReadCloser, error) {
	// 1. URL Validation
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}

	// Reject file://, ftp:// and friends; only web sources are supported.
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, u.Scheme+"://"+u.Host+u.Path),
	)
	log.Debug(config.MsgFetchStart)

	// 2. Build Request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrFetchRequest, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, acceptHeader)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	// 3. Execute (the client timeout and ctx both bound the call)
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrFetchNetwork, err)
	}

	// 4. Status Check
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.Warn(config.MsgFetchStatus, slog.Int(config.LogKeyStatus, resp.StatusCode))
		return nil, fmt.Errorf("%w: %s", ErrRemoteStatus, resp.Status)
	}

	log.Info(config.MsgFetchDownload, slog.Int64(config.LogKeyLength, resp.ContentLength))

	// 5. Cap the body so a misconfigured URL cannot exhaust memory.
	limit := f.MaxBytes
	if limit <= 0 {
		limit = config.MaxHTTPResponseSize
	}
	return cappedBody{Reader: io.LimitReader(resp.Body, limit), Closer: resp.Body}, nil
}

// cappedBody reads through the limit and closes the underlying body.
type cappedBody struct {
	io.Reader
	io.Closer
}
