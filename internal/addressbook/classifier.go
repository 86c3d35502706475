package addressbook

import (
	"strings"
	"unicode"
)

// IsDuplicate reports whether candidate matches any existing contact under
// one of the equivalence rules: email, phone digits, or name plus locality.
// An empty field never matches, not even another empty field.
func IsDuplicate(candidate Contact, existing []Contact) bool {
	for _, c := range existing {
		if sameContact(candidate, c) {
			return true
		}
	}
	return false
}

func sameContact(a, b Contact) bool {
	return emailMatch(a, b) || phoneMatch(a, b) || nameLocalityMatch(a, b)
}

func emailMatch(a, b Contact) bool {
	return equalFoldNonEmpty(a.Email, b.Email)
}

func phoneMatch(a, b Contact) bool {
	da, db := digitsOnly(a.Phone), digitsOnly(b.Phone)
	return da != "" && da == db
}

func nameLocalityMatch(a, b Contact) bool {
	if !equalFoldNonEmpty(a.FirstName, b.FirstName) || !equalFoldNonEmpty(a.LastName, b.LastName) {
		return false
	}
	return equalFoldNonEmpty(a.City, b.City) ||
		equalFoldNonEmpty(a.StreetAddress1, b.StreetAddress1)
}

func equalFoldNonEmpty(a, b string) bool {
	return a != "" && b != "" && strings.EqualFold(a, b)
}

// digitsOnly strips every non-digit rune, so "(555) 123-4567" becomes "5551234567".
func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// containsFold is a case-insensitive substring test.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// isBlank reports whether s holds nothing but whitespace.
func isBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}
