package ui

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/codec"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/server"
)

// viewState is everything the main window derives its content from.
type viewState struct {
	query   string
	sortBy  string
	visible []addressbook.Contact
}

// AddressBookApp owns the UI, the preferences and the wiring between the
// Book, the Importer and the contact feed.
type AddressBookApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Book     *addressbook.Book
	Importer *addressbook.Importer
	Server   *server.ContactFeedServer
	Fetcher  codec.Fetcher

	// AfterFunc schedules the undo expiry; replaced in tests.
	AfterFunc func(d time.Duration, f func()) *time.Timer

	SupportedLanguages []string

	state     viewState
	importing atomic.Bool
	undoTimer *time.Timer
	// undoGen is bumped whenever the pending expiry is replaced or cancelled.
	// A timer that already fired may still be queued in fyne.Do; it compares
	// its own generation before touching the new snapshot. UI goroutine only.
	undoGen uint64

	// Main window widgets
	list        *widget.List
	emptyLabel  *widget.Label
	statusLabel *widget.Label
	searchEntry *widget.Entry
	sortSelect  *widget.Select
	undoBtn     *widget.Button
	importBtns  []*widget.Button

	settingsWindow fyne.Window
	previewWindow  fyne.Window
}

// NewAddressBookApp constructs the controller and subscribes it to Book changes.
func NewAddressBookApp(a fyne.App, ctx context.Context, book *addressbook.Book, srv *server.ContactFeedServer, fetcher codec.Fetcher) *AddressBookApp {
	a.SetIcon(theme.AccountIcon())

	app := &AddressBookApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Book:               book,
		Importer:           addressbook.NewImporter(book),
		Server:             srv,
		Fetcher:            fetcher,
		AfterFunc:          time.AfterFunc,
		SupportedLanguages: config.SupportedLanguages,
	}
	app.state.sortBy = a.Preferences().StringWithFallback(config.PrefDefaultSort, config.DefaultSort)

	book.OnChange(func() {
		app.publishFeed()
		fyne.Do(app.refresh)
	})
	return app
}

// Run starts the feed server, shows the main window and enters the event loop.
func (app *AddressBookApp) Run() {
	app.SetupI18n()
	app.publishFeed()

	go func() {
		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	app.ShowMainWindow()
	app.App.Run()
}

// publishFeed pushes the current Book to the localhost feed.
func (app *AddressBookApp) publishFeed() {
	if app.Server == nil {
		return
	}
	if err := app.Server.Publish(app.Book.All()); err != nil {
		slog.Error(config.ErrFeedRender,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
	}
}

// ShowMainWindow builds the contact list window. It is the master window:
// closing it quits the application.
func (app *AddressBookApp) ShowMainWindow() {
	if app.Window != nil {
		app.Window.RequestFocus()
		return
	}

	slog.Info(config.MsgOpenWindow,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, app.Book.Len())

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w

	w.SetContent(app.buildMainContent())
	w.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	w.SetMaster()
	w.SetOnClosed(func() {
		app.stopUndoTimer()
		app.Window = nil
	})

	app.refresh()
	w.Show()
}

func (app *AddressBookApp) buildMainContent() fyne.CanvasObject {
	// --- Toolbar ---
	btnAdd := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnAdd), theme.ContentAddIcon(), func() {
		app.showContactForm(nil)
	})
	btnAdd.Importance = widget.HighImportance

	btnImport := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnImport), theme.FolderOpenIcon(), app.ShowImportDialog)
	btnImportURL := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnImportURL), theme.DownloadIcon(), app.ImportFromURL)
	app.importBtns = []*widget.Button{btnImport, btnImportURL}

	btnExport := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnExport), theme.DocumentSaveIcon(), app.ShowExportDialog)
	btnExportVCard := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnExportVCard), theme.MailSendIcon(), app.ShowExportVCardDialog)
	btnSettings := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSettings), theme.SettingsIcon(), app.ShowSettingsWindow)

	app.undoBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnUndo), theme.ContentUndoIcon(), app.performUndo)
	app.undoBtn.Importance = widget.WarningImportance
	app.undoBtn.Hide()

	toolbar := container.NewHBox(btnAdd, btnImport, btnImportURL, btnExport, btnExportVCard, app.undoBtn, btnSettings)

	// --- Filter row ---
	app.searchEntry = widget.NewEntry()
	app.searchEntry.SetPlaceHolder(app.GetMsg(config.TKeyLblSearch))
	app.searchEntry.OnChanged = func(q string) {
		app.state.query = q
		app.refresh()
	}

	sortLabels := app.sortOptions()
	app.sortSelect = widget.NewSelect([]string{
		sortLabels[config.SortByName],
		sortLabels[config.SortByEmail],
		sortLabels[config.SortByFavorite],
	}, nil)
	app.sortSelect.SetSelected(sortLabels[app.state.sortBy])
	app.sortSelect.OnChanged = func(label string) {
		for key, l := range sortLabels {
			if l == label {
				app.state.sortBy = key
			}
		}
		app.refresh()
	}

	filterRow := container.NewBorder(nil, nil, nil,
		container.NewHBox(widget.NewLabel(app.GetMsg(config.TKeyLblSortBy)), app.sortSelect),
		app.searchEntry)

	// --- List ---
	app.list = widget.NewList(
		func() int { return len(app.state.visible) },
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewLabel(config.FavoriteMark),
				widget.NewLabelWithStyle(config.TablePlaceholder, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
				widget.NewLabel(config.TablePlaceholder),
			)
		},
		func(id widget.ListItemID, o fyne.CanvasObject) {
			if id >= len(app.state.visible) {
				return
			}
			c := app.state.visible[id]
			row := o.(*fyne.Container)
			mark := config.NotFavoriteMark
			if c.Favorite {
				mark = config.FavoriteMark
			}
			row.Objects[0].(*widget.Label).SetText(mark)
			row.Objects[1].(*widget.Label).SetText(c.DisplayName())
			row.Objects[2].(*widget.Label).SetText(listDetail(c))
		},
	)
	app.list.OnSelected = func(id widget.ListItemID) {
		if id < len(app.state.visible) {
			app.showContactDetail(app.state.visible[id])
		}
		app.list.UnselectAll()
	}

	app.emptyLabel = widget.NewLabel(app.GetMsg(config.TKeyLblEmpty))
	app.emptyLabel.Alignment = fyne.TextAlignCenter

	app.statusLabel = widget.NewLabel("")
	app.statusLabel.TextStyle = fyne.TextStyle{Italic: true}

	return container.NewBorder(
		container.NewVBox(toolbar, filterRow),
		app.statusLabel,
		nil, nil,
		container.NewStack(app.list, container.NewCenter(app.emptyLabel)),
	)
}

// listDetail is the secondary text of a list row: email, else phone.
func listDetail(c addressbook.Contact) string {
	if c.Email != "" {
		return c.Email
	}
	return c.Phone
}

func (app *AddressBookApp) sortOptions() map[string]string {
	return map[string]string{
		config.SortByName:     app.GetMsg(config.TKeySortName),
		config.SortByEmail:    app.GetMsg(config.TKeySortEmail),
		config.SortByFavorite: app.GetMsg(config.TKeySortFavorite),
	}
}

// refresh recomputes the visible contacts and repaints the main window.
// Safe to call before the window exists.
func (app *AddressBookApp) refresh() {
	app.state.visible = addressbook.View(app.Book.All(), app.state.query, app.state.sortBy)

	if app.list == nil {
		return
	}
	app.list.Refresh()
	if len(app.state.visible) == 0 {
		app.emptyLabel.Show()
	} else {
		app.emptyLabel.Hide()
	}
	app.statusLabel.SetText(app.statusText())
}

func (app *AddressBookApp) statusText() string {
	n := app.Book.Len()
	text := app.GetMsgCount(config.TKeyStatusCount, n,
		map[string]interface{}{"Count": n}, "%d", n)

	if app.Server != nil && app.Server.Port != "" {
		url := fmt.Sprintf(config.FormatFeedURL, config.LocalhostBindAddr, app.Server.Port)
		text += " · " + app.GetMsgData(config.TKeyStatusFeed, map[string]interface{}{"URL": url})
	}
	return text
}

// -----------------------------------------------------------------------------
// Undo affordance
// -----------------------------------------------------------------------------

// offerUndo shows the undo button until the window elapses.
func (app *AddressBookApp) offerUndo() {
	app.stopUndoTimer()
	if app.undoBtn != nil {
		app.undoBtn.Enable()
		app.undoBtn.Show()
	}
	gen := app.undoGen
	app.undoTimer = app.AfterFunc(app.Importer.UndoWindow, func() {
		fyne.Do(func() { app.expireUndoFor(gen) })
	})
}

// expireUndoFor expires the undo offer made at generation gen, unless a
// newer offer or an undo has superseded it.
func (app *AddressBookApp) expireUndoFor(gen uint64) {
	if gen != app.undoGen {
		return
	}
	app.expireUndo()
}

// expireUndo drops the snapshot and hides the button.
func (app *AddressBookApp) expireUndo() {
	app.Importer.Expire()
	if app.undoBtn != nil {
		app.undoBtn.Hide()
	}
}

// setUndoEnabled greys out the undo button without cancelling the offer.
func (app *AddressBookApp) setUndoEnabled(enabled bool) {
	if app.undoBtn == nil {
		return
	}
	if enabled {
		app.undoBtn.Enable()
	} else {
		app.undoBtn.Disable()
	}
}

func (app *AddressBookApp) performUndo() {
	app.stopUndoTimer()
	if app.undoBtn != nil {
		app.undoBtn.Hide()
	}
	if app.Importer.Undo() && app.Window != nil {
		dialog.ShowInformation(app.GetMsg(config.TKeyTitleImport), app.GetMsg(config.TKeyUndoDone), app.Window)
	}
}

func (app *AddressBookApp) stopUndoTimer() {
	app.undoGen++
	if app.undoTimer != nil {
		app.undoTimer.Stop()
		app.undoTimer = nil
	}
}
