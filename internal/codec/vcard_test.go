package codec_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/codec"
	"github.com/tartampluch/go-addressbook/internal/config"
)

func TestVCard_DecodeFields(t *testing.T) {
	vcf := "BEGIN:VCARD\r\n" +
		"VERSION:3.0\r\n" +
		"N:Doe;John;;;\r\n" +
		"FN:John Doe\r\n" +
		"TEL:(555) 123-4567\r\n" +
		"EMAIL:john.doe@example.com\r\n" +
		"ADR;TYPE=home:;Apt 1;123 Main St;Anytown;CA;12345;USA\r\n" +
		"NOTE:Work colleague\r\n" +
		"X-FAVORITE:TRUE\r\n" +
		"END:VCARD\r\n"

	rows, err := codec.VCard{}.Decode(strings.NewReader(vcf))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, addressbook.Row{
		FirstName:      "John",
		LastName:       "Doe",
		Phone:          "(555) 123-4567",
		Email:          "john.doe@example.com",
		StreetAddress1: "123 Main St",
		StreetAddress2: "Apt 1",
		City:           "Anytown",
		State:          "CA",
		ZipCode:        "12345",
		Notes:          "Work colleague",
		Favorite:       config.FavoriteYes,
	}, rows[0])
}

func TestVCard_DecodeFormattedNameFallback(t *testing.T) {
	vcf := "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:Alex van Johnson\r\nEND:VCARD\r\n"

	rows, err := codec.VCard{}.Decode(strings.NewReader(vcf))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Alex", rows[0].FirstName)
	assert.Equal(t, "van Johnson", rows[0].LastName)
	assert.Empty(t, rows[0].Favorite)
}

func TestVCard_DecodeEmptyAndGarbage(t *testing.T) {
	rows, err := codec.VCard{}.Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = codec.VCard{}.Decode(strings.NewReader("not a vcard at all\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrVCardDecode)
}

func TestVCard_EncodeThenDecode(t *testing.T) {
	contacts := []addressbook.Contact{
		{ID: "a1", FirstName: "John", LastName: "Doe", Phone: "(555) 123-4567",
			Email: "john.doe@example.com", StreetAddress1: "123 Main St", City: "Anytown",
			State: "CA", ZipCode: "12345", Notes: "Work colleague", Favorite: true,
			Avatar: "https://example.com/john.png"},
		{ID: "b2", FirstName: "Jane", LastName: "Smith"},
	}

	var buf bytes.Buffer
	require.NoError(t, codec.VCard{}.Encode(&buf, contacts))

	out := buf.String()
	assert.Contains(t, out, "VERSION:4.0")
	assert.Contains(t, out, "UID:a1")
	assert.Contains(t, out, "PHOTO:https://example.com/john.png")
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VCARD"))

	rows, err := codec.VCard{}.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, addressbook.ToRows([]addressbook.Contact{
		{FirstName: "John", LastName: "Doe", Phone: "(555) 123-4567",
			Email: "john.doe@example.com", StreetAddress1: "123 Main St", City: "Anytown",
			State: "CA", ZipCode: "12345", Notes: "Work colleague", Favorite: true},
		{FirstName: "Jane", LastName: "Smith"},
	}), normalizeFavorite(rows))
}

// normalizeFavorite maps the vCard decoder's empty favorite to the export "No".
func normalizeFavorite(rows []addressbook.Row) []addressbook.Row {
	out := make([]addressbook.Row, len(rows))
	for i, r := range rows {
		if r.Favorite == "" {
			r.Favorite = config.FavoriteNo
		}
		out[i] = r
	}
	return out
}
