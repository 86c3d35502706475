package addressbook

import "github.com/tartampluch/go-addressbook/internal/config"

// Row is one decoded spreadsheet record, keyed by the column headers in
// config.Columns. Missing columns and cells are empty strings.
type Row struct {
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
	Favorite       string
}

// RowFromMap builds a Row from header->value pairs. Unknown headers are ignored.
func RowFromMap(m map[string]string) Row {
	return Row{
		FirstName:      m[config.ColFirstName],
		LastName:       m[config.ColLastName],
		Phone:          m[config.ColPhone],
		Email:          m[config.ColEmail],
		StreetAddress1: m[config.ColStreetAddress1],
		StreetAddress2: m[config.ColStreetAddress2],
		City:           m[config.ColCity],
		State:          m[config.ColState],
		ZipCode:        m[config.ColZipCode],
		Notes:          m[config.ColNotes],
		Favorite:       m[config.ColFavorite],
	}
}

// Values returns the cells in config.Columns order.
func (r Row) Values() []string {
	return []string{
		r.FirstName,
		r.LastName,
		r.Phone,
		r.Email,
		r.StreetAddress1,
		r.StreetAddress2,
		r.City,
		r.State,
		r.ZipCode,
		r.Notes,
		r.Favorite,
	}
}

// NormalizeRow converts a Row into a Contact without an ID.
// No validation happens here; a malformed row simply yields empty fields.
func NormalizeRow(r Row) Contact {
	return Contact{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Phone:          r.Phone,
		Email:          r.Email,
		StreetAddress1: r.StreetAddress1,
		StreetAddress2: r.StreetAddress2,
		City:           r.City,
		State:          r.State,
		ZipCode:        r.ZipCode,
		Notes:          r.Notes,
		Favorite:       r.Favorite == config.FavoriteYes,
	}
}

// ToRow is the reverse mapping used by export.
func ToRow(c Contact) Row {
	fav := config.FavoriteNo
	if c.Favorite {
		fav = config.FavoriteYes
	}
	return Row{
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Phone:          c.Phone,
		Email:          c.Email,
		StreetAddress1: c.StreetAddress1,
		StreetAddress2: c.StreetAddress2,
		City:           c.City,
		State:          c.State,
		ZipCode:        c.ZipCode,
		Notes:          c.Notes,
		Favorite:       fav,
	}
}

// ToRows maps every contact to exactly one row, preserving order.
func ToRows(contacts []Contact) []Row {
	rows := make([]Row, len(contacts))
	for i, c := range contacts {
		rows[i] = ToRow(c)
	}
	return rows
}

// IsBlank reports whether every cell is empty or whitespace.
func (r Row) IsBlank() bool {
	for _, v := range r.Values() {
		if !isBlank(v) {
			return false
		}
	}
	return true
}
