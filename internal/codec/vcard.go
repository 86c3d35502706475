package codec

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// VCard converts between vCard streams and address-book records.
// Decoding produces rows so .vcf imports go through the same pipeline as
// spreadsheets.
type VCard struct{}

// Decode reads every card in r. A stream whose first card is unreadable is a
// decode error; a later malformed card ends the read and keeps what came before.
func (VCard) Decode(r io.Reader) ([]addressbook.Row, error) {
	dec := vcard.NewDecoder(r)
	var rows []addressbook.Row

	for {
		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if len(rows) == 0 {
				return nil, fmt.Errorf("%s: %w", config.ErrVCardDecode, err)
			}
			// The decoder cannot resync after a malformed card.
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompCodec,
				config.LogKeyCount, len(rows),
				config.LogKeyError, err)
			break
		}
		rows = append(rows, cardToRow(card))
	}
	return rows, nil
}

func cardToRow(card vcard.Card) addressbook.Row {
	var row addressbook.Row

	// Name Strategy: N (Structured) > FN (Formatted, split on first space)
	if n := card.Name(); n != nil && (n.GivenName != "" || n.FamilyName != "") {
		row.FirstName = n.GivenName
		row.LastName = n.FamilyName
	} else if fn := card.Get(vcard.FieldFormattedName); fn != nil {
		first, last, _ := strings.Cut(strings.TrimSpace(fn.Value), " ")
		row.FirstName = first
		row.LastName = strings.TrimSpace(last)
	}

	row.Phone = card.PreferredValue(vcard.FieldTelephone)
	row.Email = card.PreferredValue(vcard.FieldEmail)
	row.Notes = card.Value(vcard.FieldNote)

	if adr := card.Address(); adr != nil {
		row.StreetAddress1 = adr.StreetAddress
		row.StreetAddress2 = adr.ExtendedAddress
		row.City = adr.Locality
		row.State = adr.Region
		row.ZipCode = adr.PostalCode
	}

	if strings.EqualFold(card.Value(config.VCardFavorite), config.VCardFavoriteTrue) {
		row.Favorite = config.FavoriteYes
	}
	return row
}

// Encode writes one vCard 4.0 per contact, in order.
func (VCard) Encode(w io.Writer, contacts []addressbook.Contact) error {
	enc := vcard.NewEncoder(w)
	for _, c := range contacts {
		if err := enc.Encode(contactToCard(c)); err != nil {
			return fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
	}
	return nil
}

func contactToCard(c addressbook.Contact) vcard.Card {
	card := make(vcard.Card)

	if c.ID != "" {
		card.SetValue(vcard.FieldUID, c.ID)
	}
	card.SetValue(vcard.FieldFormattedName, c.DisplayName())
	card.AddName(&vcard.Name{
		GivenName:  c.FirstName,
		FamilyName: c.LastName,
	})

	if c.Phone != "" {
		card.SetValue(vcard.FieldTelephone, c.Phone)
	}
	if c.Email != "" {
		card.SetValue(vcard.FieldEmail, c.Email)
	}
	if c.HasAddress() {
		card.AddAddress(&vcard.Address{
			Field:           &vcard.Field{Params: vcard.Params{vcard.ParamType: {config.VCardTypeHome}}},
			StreetAddress:   c.StreetAddress1,
			ExtendedAddress: c.StreetAddress2,
			Locality:        c.City,
			Region:          c.State,
			PostalCode:      c.ZipCode,
		})
	}
	if c.Notes != "" {
		card.SetValue(vcard.FieldNote, c.Notes)
	}
	if c.Avatar != "" {
		card.SetValue(vcard.FieldPhoto, c.Avatar)
	}
	if c.Favorite {
		card.SetValue(config.VCardFavorite, config.VCardFavoriteTrue)
	}

	vcard.ToV4(card)
	return card
}
