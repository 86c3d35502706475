package ui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/codec"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/zalando/go-keyring"
)

// -----------------------------------------------------------------------------
// Import
// -----------------------------------------------------------------------------

// ShowImportDialog lets the user pick a spreadsheet or vCard file.
func (app *AddressBookApp) ShowImportDialog() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, app.Window)
			return
		}
		if r == nil {
			return
		}
		app.startImport(r.URI().Name(), r)
	}, app.Window)
	d.SetFilter(storage.NewExtensionFileFilter(codec.ImportExtensions))
	d.Show()
}

// errFetchFailed marks a remote import that never reached the decoder.
var errFetchFailed = errors.New(config.ErrFetchFailed)

// ImportFromURL downloads the configured remote file and imports it.
func (app *AddressBookApp) ImportFromURL() {
	target := app.Preferences.String(config.PrefRemoteURL)
	if target == "" {
		slog.Warn(config.ErrRemoteURLMissing, config.LogKeyComponent, config.CompUI)
		app.showInfo(config.TKeyTitleImport, app.GetMsg(config.TKeyRemoteMissing))
		return
	}
	if app.Fetcher == nil {
		slog.Error(config.ErrFetcherMissing, config.LogKeyComponent, config.CompUI)
		return
	}
	if !app.beginImport() {
		return
	}

	user := app.Preferences.String(config.PrefRemoteUser)
	pass := app.remotePassword(user)

	go func() {
		rc, err := app.Fetcher.Fetch(app.Ctx, target, user, pass)
		if err != nil {
			slog.Error(config.MsgFetchStatus,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyError, err)
			fetchErr := fmt.Errorf("%w: %w", errFetchFailed, err)
			fyne.Do(func() { app.finishImport(addressbook.Result{}, fetchErr) })
			return
		}
		app.runImport(path.Base(target), rc)
	}()
}

// remotePassword reads the stored password for user; a missing entry is not an error.
func (app *AddressBookApp) remotePassword(user string) string {
	if user == "" {
		return ""
	}
	p, err := keyring.Get(config.KeyringService, user)
	if err != nil {
		slog.Debug(config.MsgPassFail,
			config.LogKeyUser, user,
			config.LogKeyError, err,
			config.LogKeyComponent, config.CompUI)
		return ""
	}
	return p
}

// startImport claims the import slot and decodes rc in the background.
func (app *AddressBookApp) startImport(name string, rc io.ReadCloser) {
	if !app.beginImport() {
		_ = rc.Close()
		return
	}
	go app.runImport(name, rc)
}

// beginImport marks an import as running and disables the triggers.
// It reports false, after telling the user, when one is already running.
func (app *AddressBookApp) beginImport() bool {
	if !app.importing.CompareAndSwap(false, true) {
		slog.Warn(config.MsgImportRejected, config.LogKeyComponent, config.CompUI)
		app.showInfo(config.TKeyTitleImport, app.GetMsg(config.TKeyImportBusy))
		return false
	}
	app.setImportEnabled(false)
	return true
}

// runImport decodes and plans off the UI goroutine, then hands over to it.
func (app *AddressBookApp) runImport(name string, rc io.ReadCloser) {
	plan, err := app.decodeAndPlan(name, rc)
	fyne.Do(func() { app.presentPlan(plan, err) })
}

func (app *AddressBookApp) decodeAndPlan(name string, rc io.ReadCloser) (addressbook.ImportPlan, error) {
	defer func() { _ = rc.Close() }()

	slog.Info(config.MsgImportStarted,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyFile, name)

	rows, err := app.Importer.Decode(app.Ctx, codec.ForPath(name), rc)
	if err != nil {
		return addressbook.ImportPlan{}, err
	}
	return app.Importer.Plan(rows), nil
}

// presentPlan shows the preview when there is something to choose from,
// otherwise applies the plan right away so the summary explains why.
func (app *AddressBookApp) presentPlan(plan addressbook.ImportPlan, err error) {
	if err != nil {
		app.finishImport(addressbook.Result{}, err)
		return
	}
	if len(plan.Unique) == 0 || app.Window == nil {
		app.applyPlan(plan)
		return
	}
	app.showPreview(plan)
}

func (app *AddressBookApp) applyPlan(plan addressbook.ImportPlan) {
	res, err := app.Importer.Apply(plan)
	app.finishImport(res, err)
}

// finishImport releases the import slot, reports the outcome and offers undo.
func (app *AddressBookApp) finishImport(res addressbook.Result, err error) {
	app.importing.Store(false)
	app.setImportEnabled(true)

	app.showInfo(config.TKeyTitleImport, app.summaryMessage(res, err))
	if err == nil && res.UndoAvailable {
		app.offerUndo()
	}
}

// summaryMessage picks the user-facing sentence for an import outcome.
func (app *AddressBookApp) summaryMessage(res addressbook.Result, err error) string {
	if err != nil {
		switch {
		case errors.Is(err, addressbook.ErrImportInProgress):
			return app.GetMsg(config.TKeyImportBusy)
		case errors.Is(err, errFetchFailed):
			return app.GetMsgOr(config.TKeyFetchFailed, nil, config.FallbackFetchFailed)
		}
		return app.GetMsgOr(config.TKeyImportFailed, nil, config.FallbackImportFailed)
	}

	switch res.Outcome {
	case addressbook.OutcomeNoContacts:
		return app.GetMsgOr(config.TKeyImportEmpty, nil, config.FallbackImportEmpty)
	case addressbook.OutcomeAllDuplicates:
		return app.GetMsgOr(config.TKeyImportAllDup,
			map[string]interface{}{"Skipped": res.Duplicates},
			fmt.Sprintf(config.FallbackImportAllDup, res.Duplicates))
	default:
		return app.GetMsgOr(config.TKeyImportDone,
			map[string]interface{}{"Imported": res.Imported, "Skipped": res.Duplicates},
			fmt.Sprintf(config.FallbackImportDone, res.Imported, res.Duplicates))
	}
}

func (app *AddressBookApp) setImportEnabled(enabled bool) {
	for _, b := range app.importBtns {
		if enabled {
			b.Enable()
		} else {
			b.Disable()
		}
	}
}

func (app *AddressBookApp) showInfo(titleKey, msg string) {
	if app.Window == nil {
		slog.Info(msg, config.LogKeyComponent, config.CompUI)
		return
	}
	dialog.ShowInformation(app.GetMsg(titleKey), msg, app.Window)
}

// -----------------------------------------------------------------------------
// Preview
// -----------------------------------------------------------------------------

// showPreview lists the unique candidates with a checkbox each. Closing the
// window without importing abandons the run. Undo is paused while it is open
// so the Book cannot be rolled back under the plan being reviewed.
func (app *AddressBookApp) showPreview(plan addressbook.ImportPlan) {
	keep := make([]bool, len(plan.Unique))
	for i := range keep {
		keep[i] = true
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinPreview))
	app.previewWindow = w
	applied := false
	app.setUndoEnabled(false)

	found := widget.NewLabel(app.GetMsgCount(config.TKeyPreviewFound, len(plan.Unique),
		map[string]interface{}{"Count": len(plan.Unique)}, "%d", len(plan.Unique)))
	skipped := widget.NewLabel(app.GetMsgCount(config.TKeyPreviewSkipped, len(plan.Duplicates),
		map[string]interface{}{"Count": len(plan.Duplicates)}, "%d", len(plan.Duplicates)))
	if len(plan.Duplicates) == 0 {
		skipped.Hide()
	}
	selected := widget.NewLabel("")

	var btnImport *widget.Button
	var list *widget.List

	updateSelection := func() {
		n := countTrue(keep)
		selected.SetText(app.GetMsgData(config.TKeyPreviewSel,
			map[string]interface{}{"Selected": n, "Total": len(keep)}))
		if n == 0 {
			btnImport.Disable()
		} else {
			btnImport.Enable()
		}
	}

	list = widget.NewList(
		func() int { return len(plan.Unique) },
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewCheck("", nil), widget.NewLabel(config.TablePlaceholder))
		},
		func(id widget.ListItemID, o fyne.CanvasObject) {
			row := o.(*fyne.Container)
			check := row.Objects[0].(*widget.Check)
			c := plan.Unique[id]

			check.OnChanged = nil
			check.SetChecked(keep[id])
			check.OnChanged = func(b bool) {
				keep[id] = b
				updateSelection()
			}
			row.Objects[1].(*widget.Label).SetText(c.DisplayName() + "  " + listDetail(c))
		},
	)

	setAll := func(v bool) {
		for i := range keep {
			keep[i] = v
		}
		list.Refresh()
		updateSelection()
	}

	btnImport = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnImportSel), theme.ConfirmIcon(), func() {
		applied = true
		w.Close()
		app.applyPlan(plan.Only(keep))
	})
	btnImport.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	header := container.NewVBox(found, skipped,
		container.NewHBox(
			widget.NewButton(app.GetMsg(config.TKeyBtnSelectAll), func() { setAll(true) }),
			widget.NewButton(app.GetMsg(config.TKeyBtnSelectNone), func() { setAll(false) }),
			selected,
		))
	footer := container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnImport)

	w.SetContent(container.NewBorder(header, footer, nil, nil, list))
	w.Resize(fyne.NewSize(config.PreviewWindowWidth, config.PreviewWindowHeight))
	w.SetOnClosed(func() {
		app.previewWindow = nil
		app.setUndoEnabled(true)
		if !applied {
			app.importing.Store(false)
			app.setImportEnabled(true)
		}
	})

	updateSelection()
	w.Show()
}

func countTrue(bs []bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}

// -----------------------------------------------------------------------------
// Export
// -----------------------------------------------------------------------------

// ShowExportDialog saves the Book as contacts.xlsx.
func (app *AddressBookApp) ShowExportDialog() {
	app.showSaveDialog(config.ExportFileName, app.exportXLSX)
}

// ShowExportVCardDialog saves the Book as contacts.vcf.
func (app *AddressBookApp) ShowExportVCardDialog() {
	app.showSaveDialog(config.ExportVCardName, app.exportVCard)
}

func (app *AddressBookApp) showSaveDialog(name string, write func(io.Writer) error) {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, app.Window)
			return
		}
		if wc == nil {
			return
		}
		if err := app.writeExport(wc, write); err != nil {
			app.showInfo(config.TKeyTitleExport, app.GetMsg(config.TKeyExportFailed))
		}
	}, app.Window)
	d.SetFileName(name)
	d.Show()
}

// writeExport runs write against wc and always closes it.
func (app *AddressBookApp) writeExport(wc io.WriteCloser, write func(io.Writer) error) error {
	err := write(wc)
	if cerr := wc.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		slog.Error(config.ErrExportFailed,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return err
	}
	slog.Info(config.MsgExportDone,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, app.Book.Len())
	return nil
}

func (app *AddressBookApp) exportXLSX(w io.Writer) error {
	return codec.XLSX{}.Encode(w, addressbook.ToRows(app.Book.All()))
}

func (app *AddressBookApp) exportVCard(w io.Writer) error {
	return codec.VCard{}.Encode(w, app.Book.All())
}
