package addressbook

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tartampluch/go-addressbook/internal/config"
)

var (
	// ErrNotFound is returned when an operation names an unknown contact ID.
	ErrNotFound = errors.New(config.ErrNotFound)
)

// Book is the ordered, in-memory contact collection.
// Insertion order is preserved; display sorting never touches it.
type Book struct {
	mu        sync.RWMutex
	contacts  []Contact
	newID     IDGenerator
	listeners []func()
}

// NewBook creates an empty Book. A nil generator defaults to NewID.
func NewBook(gen IDGenerator) *Book {
	if gen == nil {
		gen = NewID
	}
	return &Book{newID: gen, contacts: make([]Contact, 0)}
}

// OnChange registers a callback fired after every mutation, outside the lock.
func (b *Book) OnChange(fn func()) {
	b.mu.Lock()
	b.listeners = append(b.listeners, fn)
	b.mu.Unlock()
}

func (b *Book) notify() {
	b.mu.RLock()
	fns := make([]func(), len(b.listeners))
	copy(fns, b.listeners)
	b.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}

// All returns a copy of the collection in insertion order.
func (b *Book) All() []Contact {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return cloneContacts(b.contacts)
}

// Len returns the number of contacts.
func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.contacts)
}

// Get looks up a contact by ID.
func (b *Book) Get(id string) (Contact, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if i := b.indexOf(id); i >= 0 {
		return b.contacts[i], true
	}
	return Contact{}, false
}

// Add assigns a fresh ID and appends the contact. Any ID on c is ignored.
func (b *Book) Add(c Contact) Contact {
	b.mu.Lock()
	c.ID = b.newID()
	b.contacts = append(b.contacts, c)
	b.mu.Unlock()

	slog.Debug(config.MsgContactAdded,
		config.LogKeyComponent, config.CompBook,
		config.LogKeyID, c.ID)
	b.notify()
	return c
}

// Update replaces the stored contact that has c.ID.
func (b *Book) Update(c Contact) error {
	b.mu.Lock()
	i := b.indexOf(c.ID)
	if i < 0 {
		b.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, c.ID)
	}
	b.contacts[i] = c
	b.mu.Unlock()

	slog.Debug(config.MsgContactUpdated,
		config.LogKeyComponent, config.CompBook,
		config.LogKeyID, c.ID)
	b.notify()
	return nil
}

// Delete removes the contact with the given ID.
func (b *Book) Delete(id string) error {
	b.mu.Lock()
	i := b.indexOf(id)
	if i < 0 {
		b.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	next := make([]Contact, 0, len(b.contacts)-1)
	next = append(next, b.contacts[:i]...)
	next = append(next, b.contacts[i+1:]...)
	b.contacts = next
	b.mu.Unlock()

	slog.Debug(config.MsgContactDeleted,
		config.LogKeyComponent, config.CompBook,
		config.LogKeyID, id)
	b.notify()
	return nil
}

// ToggleFavorite flips the favorite flag and returns the new value.
func (b *Book) ToggleFavorite(id string) (bool, error) {
	b.mu.Lock()
	i := b.indexOf(id)
	if i < 0 {
		b.mu.Unlock()
		return false, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	b.contacts[i].Favorite = !b.contacts[i].Favorite
	fav := b.contacts[i].Favorite
	b.mu.Unlock()

	b.notify()
	return fav, nil
}

// Replace swaps the whole collection in one step.
func (b *Book) Replace(contacts []Contact) {
	b.mu.Lock()
	b.contacts = cloneContacts(contacts)
	b.mu.Unlock()
	b.notify()
}

// appendNew re-checks each candidate against the collection as it stands,
// then assigns IDs to the survivors and appends them in order. Candidates are
// not compared with each other. before is a copy of the collection prior to
// the append; stale holds the candidates that now match an existing contact.
// The Book is left untouched, and no change is signalled, when nothing survives.
func (b *Book) appendNew(cs []Contact) (before, added, stale []Contact) {
	b.mu.Lock()
	before = cloneContacts(b.contacts)
	for _, c := range cs {
		if IsDuplicate(c, before) {
			stale = append(stale, c)
			continue
		}
		c.ID = b.newID()
		added = append(added, c)
	}
	if len(added) == 0 {
		b.mu.Unlock()
		return before, nil, stale
	}
	next := make([]Contact, 0, len(b.contacts)+len(added))
	next = append(next, b.contacts...)
	next = append(next, added...)
	b.contacts = next
	b.mu.Unlock()

	b.notify()
	return before, added, stale
}

// indexOf must be called with the lock held.
func (b *Book) indexOf(id string) int {
	for i := range b.contacts {
		if b.contacts[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneContacts(src []Contact) []Contact {
	dst := make([]Contact, len(src))
	copy(dst, src)
	return dst
}
