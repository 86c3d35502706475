package addressbook

import (
	"strings"

	"github.com/google/uuid"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// Contact is a single address-book entry.
type Contact struct {
	// ID is assigned once when the contact enters the Book and never changes.
	ID string

	FirstName      string
	LastName       string
	Phone          string
	Email          string
	StreetAddress1 string
	StreetAddress2 string
	City           string
	State          string
	ZipCode        string
	Notes          string
	Favorite       bool

	// Avatar is an optional image reference (URI). Empty when absent.
	Avatar string
}

// DisplayName joins the first and last name, falling back to a placeholder.
func (c Contact) DisplayName() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return config.FallbackName
	}
	return name
}

// Initials returns up to two uppercase letters for avatar placeholders.
func (c Contact) Initials() string {
	var b strings.Builder
	for _, part := range []string{c.FirstName, c.LastName} {
		for _, r := range part {
			b.WriteString(strings.ToUpper(string(r)))
			break
		}
	}
	return b.String()
}

// HasAddress reports whether any postal field is filled in.
func (c Contact) HasAddress() bool {
	return c.StreetAddress1 != "" || c.StreetAddress2 != "" ||
		c.City != "" || c.State != "" || c.ZipCode != ""
}

// Locality renders "City, State, Zip" skipping empty parts.
func (c Contact) Locality() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.City, c.State, c.ZipCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// IDGenerator produces identifiers for new contacts.
type IDGenerator func() string

// NewID returns a random (v4) UUID string.
func NewID() string {
	return uuid.NewString()
}
