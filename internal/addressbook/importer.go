package addressbook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-addressbook/internal/config"
)

var (
	// ErrDecode marks input that could not be parsed as a spreadsheet.
	// The Book and the undo snapshot are untouched when it is returned.
	ErrDecode = errors.New(config.ErrDecode)

	// ErrImportInProgress is returned when an import overlaps a running one.
	ErrImportInProgress = errors.New(config.ErrImportBusy)
)

// Decoder turns an encoded file into rows.
type Decoder interface {
	Decode(r io.Reader) ([]Row, error)
}

// Outcome classifies a finished import for the user-facing summary.
type Outcome int

const (
	// OutcomeImported means at least one contact was appended.
	OutcomeImported Outcome = iota
	// OutcomeNoContacts means the input held zero rows.
	OutcomeNoContacts
	// OutcomeAllDuplicates means every row matched an existing contact.
	OutcomeAllDuplicates
	// OutcomeNoneSelected means unique rows existed but none were chosen.
	OutcomeNoneSelected
)

// ImportPlan is the partition of normalized rows before anything is applied.
type ImportPlan struct {
	Total      int
	Unique     []Contact
	Duplicates []Contact
}

// Only keeps the unique candidates whose index is marked in keep.
// Duplicates and Total are carried over unchanged.
func (p ImportPlan) Only(keep []bool) ImportPlan {
	out := ImportPlan{Total: p.Total, Duplicates: p.Duplicates}
	for i, c := range p.Unique {
		if i < len(keep) && keep[i] {
			out.Unique = append(out.Unique, c)
		}
	}
	return out
}

// Result summarizes one import run.
type Result struct {
	Total         int
	Imported      int
	Duplicates    int
	UndoAvailable bool
	Outcome       Outcome
	Added         []Contact
}

type snapshot struct {
	contacts []Contact
	takenAt  time.Time
}

// Importer runs the import pipeline against a Book and keeps the single
// undo snapshot. Runs are serialized; an overlapping call is rejected.
type Importer struct {
	Book       *Book
	Clock      Clock
	UndoWindow time.Duration

	running atomic.Bool

	mu   sync.Mutex
	snap *snapshot
}

// NewImporter wires an Importer with the real clock and the default undo window.
func NewImporter(b *Book) *Importer {
	return &Importer{
		Book:       b,
		Clock:      RealClock{},
		UndoWindow: config.UndoWindow,
	}
}

// Plan normalizes the rows and splits them into unique and duplicate
// candidates, compared against the Book as it is now. Row order is kept.
func (im *Importer) Plan(rows []Row) ImportPlan {
	existing := im.Book.All()
	plan := ImportPlan{Total: len(rows)}
	for _, r := range rows {
		c := NormalizeRow(r)
		if IsDuplicate(c, existing) {
			plan.Duplicates = append(plan.Duplicates, c)
			continue
		}
		plan.Unique = append(plan.Unique, c)
	}
	return plan
}

// Apply appends the plan's unique candidates with fresh IDs. Candidates that
// have come to match a contact since Plan are counted as duplicates instead.
// A snapshot replaces any previous one only when the Book actually changes.
func (im *Importer) Apply(plan ImportPlan) (Result, error) {
	if !im.running.CompareAndSwap(false, true) {
		slog.Warn(config.MsgImportRejected, config.LogKeyComponent, config.CompImport)
		return Result{}, ErrImportInProgress
	}
	defer im.running.Store(false)

	return im.apply(plan), nil
}

// Import plans and applies every unique row in one step.
func (im *Importer) Import(rows []Row) (Result, error) {
	if !im.running.CompareAndSwap(false, true) {
		slog.Warn(config.MsgImportRejected, config.LogKeyComponent, config.CompImport)
		return Result{}, ErrImportInProgress
	}
	defer im.running.Store(false)

	return im.apply(im.Plan(rows)), nil
}

// ImportFrom decodes r and imports the rows. Decode failures wrap ErrDecode
// and leave all state untouched.
func (im *Importer) ImportFrom(ctx context.Context, dec Decoder, r io.Reader) (Result, error) {
	if !im.running.CompareAndSwap(false, true) {
		slog.Warn(config.MsgImportRejected, config.LogKeyComponent, config.CompImport)
		return Result{}, ErrImportInProgress
	}
	defer im.running.Store(false)

	rows, err := im.decode(ctx, dec, r)
	if err != nil {
		return Result{}, err
	}
	return im.apply(im.Plan(rows)), nil
}

// Decode runs dec with the same error contract as ImportFrom, without importing.
func (im *Importer) Decode(ctx context.Context, dec Decoder, r io.Reader) ([]Row, error) {
	return im.decode(ctx, dec, r)
}

func (im *Importer) decode(ctx context.Context, dec Decoder, r io.Reader) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := dec.Decode(r)
	if err != nil {
		slog.Warn(config.MsgDecodeFailed,
			config.LogKeyComponent, config.CompImport,
			config.LogKeyError, err)
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return rows, nil
}

func (im *Importer) apply(plan ImportPlan) Result {
	start := time.Now()
	log := slog.With(config.LogKeyComponent, config.CompImport)
	log.Info(config.MsgImportStarted, config.LogKeyRows, plan.Total)

	res := Result{
		Total:      plan.Total,
		Duplicates: len(plan.Duplicates),
	}

	// The Book may have changed since Plan (edits while the preview was
	// open), so the candidates are classified again under the Book lock.
	if len(plan.Unique) > 0 {
		before, added, stale := im.Book.appendNew(plan.Unique)
		if len(stale) > 0 {
			log.Info(config.MsgImportStale, config.LogKeyDuplicates, len(stale))
		}
		res.Duplicates += len(stale)
		res.Imported = len(added)
		res.Added = added

		if len(added) > 0 {
			im.mu.Lock()
			im.snap = &snapshot{contacts: before, takenAt: im.now()}
			im.mu.Unlock()
			res.UndoAvailable = true
		}
	}

	switch {
	case plan.Total == 0:
		res.Outcome = OutcomeNoContacts
	case res.Imported > 0:
		res.Outcome = OutcomeImported
	case res.Duplicates == plan.Total:
		res.Outcome = OutcomeAllDuplicates
	default:
		res.Outcome = OutcomeNoneSelected
	}

	log.Info(config.MsgImportFinished,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyRows, res.Total),
			slog.Int(config.LogKeyImported, res.Imported),
			slog.Int(config.LogKeyDuplicates, res.Duplicates),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return res
}

// UndoAvailable reports whether a live snapshot is retained.
func (im *Importer) UndoAvailable() bool {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.snap != nil && !im.expired(im.snap)
}

// Undo restores the Book to the snapshot and clears it. It returns false and
// does nothing when no snapshot is retained or the undo window has passed.
func (im *Importer) Undo() bool {
	im.mu.Lock()
	snap := im.snap
	im.snap = nil
	im.mu.Unlock()

	log := slog.With(config.LogKeyComponent, config.CompImport)
	if snap == nil {
		log.Debug(config.MsgUndoAbsent)
		return false
	}
	if im.expired(snap) {
		log.Info(config.MsgUndoExpired, config.LogKeyWindow, im.UndoWindow)
		return false
	}

	im.Book.Replace(snap.contacts)
	log.Info(config.MsgUndoApplied, config.LogKeyRestored, len(snap.contacts))
	return true
}

// Expire drops the snapshot, if any. Called when the undo affordance times out.
func (im *Importer) Expire() {
	im.mu.Lock()
	had := im.snap != nil
	im.snap = nil
	im.mu.Unlock()

	if had {
		slog.Debug(config.MsgUndoExpired, config.LogKeyComponent, config.CompImport)
	}
}

func (im *Importer) expired(s *snapshot) bool {
	if im.UndoWindow <= 0 {
		return false
	}
	return im.now().Sub(s.takenAt) > im.UndoWindow
}

func (im *Importer) now() time.Time {
	if im.Clock == nil {
		return time.Now()
	}
	return im.Clock.Now()
}
