// Package server publishes the current address book on localhost so other
// tools (CardDAV-less mail clients, scripts) can subscribe to it.
package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/codec"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// rendition is one encoded form of the book with its cache validators.
type rendition struct {
	data        []byte
	etag        string
	contentType string
}

// feed is an immutable snapshot of every rendition, swapped as a whole.
type feed struct {
	vcard        rendition
	xlsx         rendition
	count        int
	lastModified string // RFC1123, as required by HTTP headers
}

// ContactFeedServer serves the book as a vCard stream at "/" and as a
// spreadsheet at "/contacts.xlsx".
type ContactFeedServer struct {
	// Reads vastly outnumber publishes; a pointer swap keeps GETs lock-free.
	current atomic.Pointer[feed]
	Port    string
}

// NewContactFeedServer creates a server bound to 127.0.0.1:port once started.
func NewContactFeedServer(port string) *ContactFeedServer {
	return &ContactFeedServer{
		Port: port,
	}
}

// Start runs the HTTP listener and blocks until ctx is cancelled.
func (s *ContactFeedServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return fmt.Errorf(config.ErrPortRequired)
	}

	// Bound to loopback only; the feed is not meant for the network.
	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	// Buffered so the listener goroutine never blocks after Start returns.
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

// Handler exposes the routes for embedding or testing.
func (s *ContactFeedServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteXLSX, func(w http.ResponseWriter, r *http.Request) {
		s.serve(w, r, func(f *feed) rendition { return f.xlsx })
	})
	mux.HandleFunc(config.RouteRoot, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != config.RouteRoot {
			http.NotFound(w, r)
			return
		}
		s.serve(w, r, func(f *feed) rendition { return f.vcard })
	})
	return mux
}

// Publish renders contacts in both formats and replaces the served feed.
// On error the previous feed stays in place.
func (s *ContactFeedServer) Publish(contacts []addressbook.Contact) error {
	var vcf, sheet bytes.Buffer
	if err := (codec.VCard{}).Encode(&vcf, contacts); err != nil {
		return fmt.Errorf("%s: %w", config.ErrFeedRender, err)
	}
	if err := (codec.XLSX{}).Encode(&sheet, addressbook.ToRows(contacts)); err != nil {
		return fmt.Errorf("%s: %w", config.ErrFeedRender, err)
	}

	// Both renditions come from the same slice so they never disagree.
	f := &feed{
		vcard:        newRendition(vcf.Bytes(), config.MimeTextVCard),
		xlsx:         newRendition(sheet.Bytes(), config.MimeXLSX),
		count:        len(contacts),
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}
	// Readers see either the old or the new feed as a whole.
	s.current.Store(f)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyCount, f.count,
		config.LogKeySizeBytes, len(f.vcard.data),
		config.LogKeyETag, f.vcard.etag,
	)
	return nil
}

// Count reports how many contacts the published feed holds, or -1 before the first publish.
func (s *ContactFeedServer) Count() int {
	if f := s.current.Load(); f != nil {
		return f.count
	}
	return -1
}

func newRendition(data []byte, contentType string) rendition {
	hash := sha256.Sum256(data)
	return rendition{
		data:        data,
		etag:        fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		contentType: contentType,
	}
}

// serve writes the selected rendition with conditional-request support.
func (s *ContactFeedServer) serve(w http.ResponseWriter, r *http.Request, pick func(*feed) rendition) {
	// 1. Method Validation
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	// 2. Load Snapshot (Atomic / Lock-Free)
	f := s.current.Load()

	// 3. Readiness Check
	if f == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}
	item := pick(f)

	// 4. Set Response Headers
	w.Header().Set(config.HeaderContentType, item.contentType)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, f.lastModified)

	// 5. Check Conditional Headers
	if notModified(r, item.etag, f.lastModified) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	// 6. Serve Content (HEAD stops at the headers)
	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

// notModified applies RFC 9110 precedence: If-None-Match decides alone when
// present. If-Modified-Since only has second resolution, so several publishes
// within one second would otherwise look unchanged.
func notModified(r *http.Request, etag, lastModified string) bool {
	if match := r.Header.Get(config.HeaderIfNoneMatch); match != "" {
		return match == etag
	}

	since := r.Header.Get(config.HeaderIfModifiedSince)
	if since == "" {
		return false
	}
	clientTime, err := time.Parse(http.TimeFormat, since)
	if err != nil {
		return false
	}
	serverTime, err := time.Parse(http.TimeFormat, lastModified)
	if err != nil {
		return false
	}
	// Not newer than the client's copy.
	return !serverTime.After(clientTime)
}
