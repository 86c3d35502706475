package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect *widget.Select
	sortSelect *widget.Select
	urlEntry   *widget.Entry
	userEntry  *widget.Entry
	passEntry  *widget.Entry
	entryPort  *FilteredEntry
}

// ShowSettingsWindow displays the preferences window, or focuses it if already open.
func (app *AddressBookApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug(config.MsgOpenWindow, config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgOpenWindow, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := app.newSettingsWidgets()

	// --- General ---
	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemSort := widget.NewFormItem(app.GetMsg(config.TKeyLblDefaultSort), sw.sortSelect)
	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", widget.NewForm(itemLang, itemSort))

	// --- Remote import ---
	itemURL := widget.NewFormItem(app.GetMsg(config.TKeyLblURL), sw.urlEntry)
	itemURL.HintText = app.GetMsg(config.TKeyHelpURL)
	itemUser := widget.NewFormItem(app.GetMsg(config.TKeyLblUser), sw.userEntry)
	itemPass := widget.NewFormItem(app.GetMsg(config.TKeyLblPass), sw.passEntry)
	remoteCard := widget.NewCard(app.GetMsg(config.TKeyLblRemote), "", widget.NewForm(itemURL, itemUser, itemPass))

	// --- Feed ---
	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort) + " " + app.GetMsg(config.TKeyHelpRestart)
	feedCard := widget.NewCard(app.GetMsg(config.TKeyLblFeed), "", widget.NewForm(itemPort))

	// --- Actions ---
	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		if err := sw.entryPort.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw)
		w.Close()
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewPadded(container.NewVBox(
		generalCard,
		remoteCard,
		feedCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	w.SetContent(content)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, content.MinSize().Height))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })
	w.Show()
}

func (app *AddressBookApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	sortLabels := app.sortOptions()
	sw.sortSelect = widget.NewSelect([]string{
		sortLabels[config.SortByName],
		sortLabels[config.SortByEmail],
		sortLabels[config.SortByFavorite],
	}, nil)
	sw.sortSelect.SetSelected(sortLabels[app.Preferences.StringWithFallback(config.PrefDefaultSort, config.DefaultSort)])

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(app.Preferences.String(config.PrefRemoteURL))
	sw.urlEntry.PlaceHolder = config.PlaceholderURL

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(app.Preferences.String(config.PrefRemoteUser))

	sw.passEntry = widget.NewPasswordEntry()
	sw.passEntry.SetText(app.remotePassword(sw.userEntry.Text))

	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = app.validatePort
	return sw
}

// validatePort accepts a decimal port within [MinPort, MaxPort].
func (app *AddressBookApp) validatePort(s string) error {
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

// saveSettings persists preferences, stores the password in the keyring and
// applies what can change without a restart (language, sort).
func (app *AddressBookApp) saveSettings(sw *settingsWidgets) {
	slog.Info(config.MsgSavePrefs, config.LogKeyComponent, config.CompUISet)

	if sw.langSelect.Selected != "" {
		app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	}
	for key, label := range app.sortOptions() {
		if label == sw.sortSelect.Selected {
			app.Preferences.SetString(config.PrefDefaultSort, key)
		}
	}
	app.Preferences.SetString(config.PrefRemoteURL, sw.urlEntry.Text)
	app.Preferences.SetString(config.PrefRemoteUser, sw.userEntry.Text)

	if sw.userEntry.Text != "" && sw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, sw.userEntry.Text, sw.passEntry.Text); err != nil {
			slog.Error(config.ErrKeyringSave, config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	if sw.entryPort.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	}

	app.UpdateLocalizer()
	app.state.sortBy = app.Preferences.StringWithFallback(config.PrefDefaultSort, config.DefaultSort)
	if app.sortSelect != nil {
		app.sortSelect.SetSelected(app.sortOptions()[app.state.sortBy])
	}
	app.refresh()
}
