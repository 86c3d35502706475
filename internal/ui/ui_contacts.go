package ui

import (
	"errors"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// contactForm holds the entry widgets so the save path can read them back.
type contactForm struct {
	firstName *widget.Entry
	lastName  *widget.Entry
	phone     *FilteredEntry
	email     *widget.Entry
	street1   *widget.Entry
	street2   *widget.Entry
	city      *widget.Entry
	state     *widget.Entry
	zip       *widget.Entry
	notes     *widget.Entry
	favorite  *widget.Check
}

func (app *AddressBookApp) newContactForm(c addressbook.Contact) *contactForm {
	f := &contactForm{
		firstName: widget.NewEntry(),
		lastName:  widget.NewEntry(),
		phone:     NewPhoneEntry(),
		email:     widget.NewEntry(),
		street1:   widget.NewEntry(),
		street2:   widget.NewEntry(),
		city:      widget.NewEntry(),
		state:     widget.NewEntry(),
		zip:       widget.NewEntry(),
		notes:     widget.NewMultiLineEntry(),
		favorite:  widget.NewCheck(app.GetMsg(config.TKeyLblFavorite), nil),
	}

	f.firstName.SetText(c.FirstName)
	f.lastName.SetText(c.LastName)
	f.phone.SetText(c.Phone)
	f.email.SetText(c.Email)
	f.street1.SetText(c.StreetAddress1)
	f.street2.SetText(c.StreetAddress2)
	f.city.SetText(c.City)
	f.state.SetText(c.State)
	f.zip.SetText(c.ZipCode)
	f.notes.SetText(c.Notes)
	f.favorite.SetChecked(c.Favorite)

	// Field validators mirror addressbook.Validate so the dialog can
	// disable Save early; Validate still runs on submit.
	f.firstName.Validator = func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(app.GetMsg(config.TKeyErrNameReq))
		}
		return nil
	}
	f.email.Validator = func(s string) error {
		if err := addressbook.Validate(addressbook.Contact{FirstName: "-", Email: s}); err != nil {
			return errors.New(app.GetMsg(config.TKeyErrEmail))
		}
		return nil
	}
	return f
}

func (f *contactForm) items(app *AddressBookApp) []*widget.FormItem {
	return []*widget.FormItem{
		widget.NewFormItem(app.GetMsg(config.TKeyLblFirstName), f.firstName),
		widget.NewFormItem(app.GetMsg(config.TKeyLblLastName), f.lastName),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPhone), f.phone),
		widget.NewFormItem(app.GetMsg(config.TKeyLblEmail), f.email),
		widget.NewFormItem(app.GetMsg(config.TKeyLblStreet1), f.street1),
		widget.NewFormItem(app.GetMsg(config.TKeyLblStreet2), f.street2),
		widget.NewFormItem(app.GetMsg(config.TKeyLblCity), f.city),
		widget.NewFormItem(app.GetMsg(config.TKeyLblState), f.state),
		widget.NewFormItem(app.GetMsg(config.TKeyLblZip), f.zip),
		widget.NewFormItem(app.GetMsg(config.TKeyLblNotes), f.notes),
		widget.NewFormItem("", f.favorite),
	}
}

// contact reads the form back, keeping the identity fields of base.
func (f *contactForm) contact(base addressbook.Contact) addressbook.Contact {
	base.FirstName = strings.TrimSpace(f.firstName.Text)
	base.LastName = strings.TrimSpace(f.lastName.Text)
	base.Phone = strings.TrimSpace(f.phone.Text)
	base.Email = strings.TrimSpace(f.email.Text)
	base.StreetAddress1 = strings.TrimSpace(f.street1.Text)
	base.StreetAddress2 = strings.TrimSpace(f.street2.Text)
	base.City = strings.TrimSpace(f.city.Text)
	base.State = strings.TrimSpace(f.state.Text)
	base.ZipCode = strings.TrimSpace(f.zip.Text)
	base.Notes = f.notes.Text
	base.Favorite = f.favorite.Checked
	return base
}

// showContactForm opens the add dialog when existing is nil, else the edit dialog.
func (app *AddressBookApp) showContactForm(existing *addressbook.Contact) {
	if app.Window == nil {
		return
	}

	var base addressbook.Contact
	title := app.GetMsg(config.TKeyWinAdd)
	if existing != nil {
		base = *existing
		title = app.GetMsg(config.TKeyWinEdit)
	}

	form := app.newContactForm(base)
	d := dialog.NewForm(title, app.GetMsg(config.TKeyBtnSave), app.GetMsg(config.TKeyBtnCancel),
		form.items(app),
		func(ok bool) {
			if !ok {
				return
			}
			if err := app.saveContact(form.contact(base), existing == nil); err != nil {
				dialog.ShowError(err, app.Window)
			}
		}, app.Window)
	d.Resize(fyne.NewSize(config.DialogWidth, d.MinSize().Height))
	d.Show()
}

// saveContact validates c then adds or updates it. Validation errors are
// returned localized for display.
func (app *AddressBookApp) saveContact(c addressbook.Contact, isNew bool) error {
	if err := addressbook.Validate(c); err != nil {
		return app.localizeValidation(err)
	}
	if isNew {
		app.Book.Add(c)
		return nil
	}
	return app.Book.Update(c)
}

func (app *AddressBookApp) localizeValidation(err error) error {
	switch {
	case errors.Is(err, addressbook.ErrNameRequired):
		return errors.New(app.GetMsg(config.TKeyErrNameReq))
	case errors.Is(err, addressbook.ErrInvalidEmail):
		return errors.New(app.GetMsg(config.TKeyErrEmail))
	default:
		return err
	}
}

// showContactDetail shows one contact with edit, delete and favorite actions.
func (app *AddressBookApp) showContactDetail(c addressbook.Contact) {
	if app.Window == nil {
		return
	}

	name := widget.NewLabelWithStyle(c.DisplayName(), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	initials := widget.NewLabelWithStyle(c.Initials(), fyne.TextAlignCenter, fyne.TextStyle{Monospace: true})

	details := widget.NewForm()
	if c.Phone != "" {
		details.Append(app.GetMsg(config.TKeyLblPhone), widget.NewLabel(c.Phone))
	}
	if c.Email != "" {
		details.Append(app.GetMsg(config.TKeyLblEmail), widget.NewLabel(c.Email))
	}
	if c.HasAddress() {
		lines := []string{c.StreetAddress1}
		if c.StreetAddress2 != "" {
			lines = append(lines, c.StreetAddress2)
		}
		lines = append(lines, c.Locality())
		details.Append(app.GetMsg(config.TKeyLblAddress), widget.NewLabel(strings.Join(lines, "\n")))
	}
	if c.Notes != "" {
		notes := widget.NewLabel(c.Notes)
		notes.Wrapping = fyne.TextWrapWord
		details.Append(app.GetMsg(config.TKeyLblNotes), notes)
	}

	var d dialog.Dialog

	mark := config.NotFavoriteMark
	if c.Favorite {
		mark = config.FavoriteMark
	}
	btnFav := widget.NewButton(mark+" "+app.GetMsg(config.TKeyBtnFavorite), func() {
		if _, err := app.Book.ToggleFavorite(c.ID); err != nil {
			dialog.ShowError(err, app.Window)
		}
		d.Hide()
	})
	btnEdit := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnEdit), theme.DocumentCreateIcon(), func() {
		d.Hide()
		app.showContactForm(&c)
	})
	btnDelete := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnDelete), theme.DeleteIcon(), func() {
		d.Hide()
		app.confirmDelete(c)
	})
	btnDelete.Importance = widget.DangerImportance

	content := container.NewVBox(
		container.NewHBox(initials, name),
		details,
		container.NewHBox(btnFav, btnEdit, btnDelete),
	)

	d = dialog.NewCustom(c.DisplayName(), app.GetMsg(config.TKeyBtnClose), content, app.Window)
	d.Resize(fyne.NewSize(config.DialogWidth, content.MinSize().Height))
	d.Show()
}

func (app *AddressBookApp) confirmDelete(c addressbook.Contact) {
	msg := app.GetMsgData(config.TKeyConfirmDelete, map[string]interface{}{"Name": c.DisplayName()})
	dialog.ShowConfirm(app.GetMsg(config.TKeyBtnDelete), msg, func(ok bool) {
		if !ok {
			return
		}
		if err := app.Book.Delete(c.ID); err != nil {
			slog.Warn(config.ErrNotFound,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyID, c.ID,
				config.LogKeyError, err)
		}
	}, app.Window)
}
