package addressbook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
)

func TestIsDuplicate_Rules(t *testing.T) {
	tests := []struct {
		name      string
		candidate addressbook.Contact
		existing  addressbook.Contact
		want      bool
	}{
		{
			name:      "Email differs only in case",
			candidate: addressbook.Contact{Email: "A@B.com"},
			existing:  addressbook.Contact{Email: "a@b.com"},
			want:      true,
		},
		{
			name:      "Phone formatted vs bare digits",
			candidate: addressbook.Contact{Phone: "(555) 123-4567"},
			existing:  addressbook.Contact{Phone: "5551234567"},
			want:      true,
		},
		{
			name:      "Name and city match",
			candidate: addressbook.Contact{FirstName: "jane", LastName: "SMITH", City: "somewhere"},
			existing:  addressbook.Contact{FirstName: "Jane", LastName: "Smith", City: "Somewhere"},
			want:      true,
		},
		{
			name:      "Name and street match, city differs",
			candidate: addressbook.Contact{FirstName: "Jane", LastName: "Smith", City: "A", StreetAddress1: "456 oak ave"},
			existing:  addressbook.Contact{FirstName: "Jane", LastName: "Smith", City: "B", StreetAddress1: "456 Oak Ave"},
			want:      true,
		},
		{
			name:      "Name only, no locality",
			candidate: addressbook.Contact{FirstName: "Jane", LastName: "Smith"},
			existing:  addressbook.Contact{FirstName: "Jane", LastName: "Smith"},
			want:      false,
		},
		{
			name:      "City matches but last name missing",
			candidate: addressbook.Contact{FirstName: "Jane", City: "Somewhere"},
			existing:  addressbook.Contact{FirstName: "Jane", City: "Somewhere"},
			want:      false,
		},
		{
			name:      "Both empty records",
			candidate: addressbook.Contact{},
			existing:  addressbook.Contact{},
			want:      false,
		},
		{
			name:      "Phone without digits never matches",
			candidate: addressbook.Contact{Phone: "n/a"},
			existing:  addressbook.Contact{Phone: "N/A"},
			want:      false,
		},
		{
			name:      "Different emails, nothing else",
			candidate: addressbook.Contact{Email: "x@example.com"},
			existing:  addressbook.Contact{Email: "y@example.com"},
			want:      false,
		},
		{
			name:      "Email on one side only",
			candidate: addressbook.Contact{Email: "x@example.com"},
			existing:  addressbook.Contact{},
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := addressbook.IsDuplicate(tt.candidate, []addressbook.Contact{tt.existing})
			assert.Equal(t, tt.want, got)

			// Every rule is symmetric.
			back := addressbook.IsDuplicate(tt.existing, []addressbook.Contact{tt.candidate})
			assert.Equal(t, tt.want, back, "rule should be symmetric")
		})
	}
}

func TestIsDuplicate_EmptyCollection(t *testing.T) {
	assert.False(t, addressbook.IsDuplicate(addressbook.Contact{Email: "a@b.com"}, nil))
}

func TestIsDuplicate_AnyExistingMatch(t *testing.T) {
	existing := []addressbook.Contact{
		{Email: "first@example.com"},
		{Phone: "+1 555 000 1111"},
	}
	assert.True(t, addressbook.IsDuplicate(addressbook.Contact{Phone: "15550001111"}, existing))
}
