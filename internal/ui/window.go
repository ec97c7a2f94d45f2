// Package ui is the Fyne window around a rename session.
package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"BatchRenamer/internal/export"
	"BatchRenamer/internal/history"
	"BatchRenamer/internal/listing"
	"BatchRenamer/internal/naming"
	"BatchRenamer/internal/rename"
	"BatchRenamer/internal/session"
)

// Window owns the widgets. Every method runs on the Fyne event goroutine
// unless noted.
type Window struct {
	app  fyne.App
	win  fyne.Window
	sess *session.Session
	fs   afero.Fs
	log  zerolog.Logger

	items []string

	directoryLabel *widget.Label
	countLabel     *widget.Label
	itemList       *widget.List
	newNames       *widget.Entry
	filterEntry    *widget.Entry

	// enabled once a directory is selected
	gated []fyne.Disableable

	undoBtn *widget.Button
	redoBtn *widget.Button

	scans   int
	loading dialog.Dialog
}

func New(a fyne.App, sess *session.Session, afs afero.Fs, log zerolog.Logger, size fyne.Size) *Window {
	w := &Window{
		app:  a,
		win:  a.NewWindow("File and Folder Renamer"),
		sess: sess,
		fs:   afs,
		log:  log,
	}
	w.win.Resize(size)
	w.win.SetContent(w.build())
	return w
}

// ShowAndRun shows the window, lists the configured directory if any and
// blocks until the app quits.
func (w *Window) ShowAndRun() {
	if w.sess.HasDirectory() {
		w.directoryLabel.SetText("Selected Directory: " + w.sess.State().Directory)
		w.setGated(true)
		w.rescan()
	}
	w.win.ShowAndRun()
}

func (w *Window) build() fyne.CanvasObject {
	st := w.sess.State()

	/* -------------------- Directory -------------------- */

	w.directoryLabel = widget.NewLabel("No directory selected")
	w.directoryLabel.Truncation = fyne.TextTruncateEllipsis

	selectBtn := widget.NewButtonWithIcon("Select Directory", theme.FolderOpenIcon(), w.selectDirectory)
	refreshBtn := widget.NewButtonWithIcon("Refresh", theme.ViewRefreshIcon(), w.rescan)

	dirCard := widget.NewCard("", "Directory", container.NewBorder(nil, nil, nil,
		container.NewHBox(selectBtn, refreshBtn), w.directoryLabel))

	/* -------------------- Scan mode / sort -------------------- */

	modeRadio := widget.NewRadioGroup([]string{listing.Files.String(), listing.Folders.String()}, nil)
	modeRadio.Horizontal = true
	modeRadio.SetSelected(st.Mode.String())
	modeRadio.OnChanged = func(sel string) {
		m, err := listing.ParseScanMode(sel)
		if err != nil {
			return
		}
		if err := w.sess.SetMode(m); err != nil {
			dialog.ShowError(err, w.win)
			return
		}
		if w.sess.HasDirectory() {
			w.rescan()
		}
	}

	sortSelect := widget.NewSelect([]string{listing.ByName.String(), listing.ByDateModified.String()}, nil)
	sortSelect.SetSelected(st.SortBy.String())
	sortSelect.OnChanged = func(sel string) {
		k, err := listing.ParseSortKey(sel)
		if err != nil {
			return
		}
		if err := w.sess.SetSortBy(k); err != nil {
			dialog.ShowError(err, w.win)
			return
		}
		if w.sess.HasDirectory() {
			w.rescan()
		}
	}

	optionsRow := container.NewGridWithColumns(2,
		widget.NewCard("", "Scan Mode", modeRadio),
		widget.NewCard("", "Sort By", sortSelect),
	)

	/* -------------------- Items -------------------- */

	w.itemList = widget.NewList(
		func() int { return len(w.items) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < len(w.items) {
				obj.(*widget.Label).SetText(w.items[id])
			}
		},
	)
	w.countLabel = widget.NewLabel("Total items: 0")

	itemsCard := widget.NewCard("", "Items", container.NewBorder(nil, w.countLabel, nil, nil, w.itemList))

	/* -------------------- New names -------------------- */

	w.newNames = widget.NewMultiLineEntry()
	w.newNames.SetPlaceHolder("One new name per line, in the order of the items")
	w.newNames.SetMinRowsVisible(8)

	namesCard := widget.NewCard("", "New Names", container.NewBorder(w.buildGenerator(), nil, nil, nil, w.newNames))

	/* -------------------- Actions -------------------- */

	renameBtn := widget.NewButtonWithIcon("Batch Rename", theme.ConfirmIcon(), w.batchRename)
	renameBtn.Importance = widget.HighImportance
	previewBtn := widget.NewButton("Preview", w.showPreview)
	copyBtn := widget.NewButtonWithIcon("Copy to Clipboard", theme.ContentCopyIcon(), w.copyToClipboard)
	saveBtn := widget.NewButtonWithIcon("Save to Note", theme.DocumentSaveIcon(), w.saveToNote)

	w.filterEntry = widget.NewEntry()
	w.filterEntry.SetPlaceHolder("Filter…")
	w.filterEntry.SetText(st.Filter)
	w.filterEntry.OnSubmitted = func(string) { w.applyFilter() }
	filterBtn := widget.NewButtonWithIcon("Apply Filter", theme.SearchIcon(), w.applyFilter)

	w.undoBtn = widget.NewButtonWithIcon("Undo", theme.ContentUndoIcon(), w.undo)
	w.redoBtn = widget.NewButtonWithIcon("Redo", theme.ContentRedoIcon(), w.redo)

	w.gated = append(w.gated, renameBtn, previewBtn, copyBtn, saveBtn, filterBtn, refreshBtn)
	w.setGated(false)
	w.updateHistoryButtons()

	actions := container.NewBorder(nil, nil,
		container.NewHBox(renameBtn, previewBtn, copyBtn, saveBtn),
		container.NewHBox(w.undoBtn, w.redoBtn),
		container.NewBorder(nil, nil, nil, filterBtn, w.filterEntry),
	)

	split := container.NewVSplit(itemsCard, namesCard)
	split.Offset = 0.55

	return container.NewBorder(
		container.NewVBox(dirCard, optionsRow),
		actions,
		nil, nil,
		split,
	)
}

// buildGenerator is the single-step name generator above the new-names box.
func (w *Window) buildGenerator() fyne.CanvasObject {
	ops := make([]string, len(naming.Ops))
	for i, op := range naming.Ops {
		ops[i] = string(op)
	}

	a := widget.NewEntry()
	a.SetPlaceHolder("A")
	b := widget.NewEntry()
	b.SetPlaceHolder("B (Replace only)")

	opSelect := widget.NewSelect(ops, func(sel string) {
		b.Disable()
		switch naming.Op(sel) {
		case naming.OpRemoveText:
			a.SetPlaceHolder(`text to remove (e.g. vivek)`)
		case naming.OpReplaceText:
			a.SetPlaceHolder(`find (e.g. vivek)`)
			b.SetPlaceHolder(`replace with (e.g. Vivek)`)
			b.Enable()
		case naming.OpInsertBeforeExt, naming.OpAppend:
			a.SetPlaceHolder(`insert (e.g. (awesome))`)
		case naming.OpPrepend:
			a.SetPlaceHolder(`prepend (e.g. NEW_)`)
		case naming.OpChangeExt:
			a.SetPlaceHolder(`new ext (e.g. xyz or .xyz)`)
		}
	})
	opSelect.SetSelected(string(naming.OpReplaceText))

	fillBtn := widget.NewButton("Fill names", func() {
		step := naming.Step{Op: naming.Op(opSelect.Selected), A: a.Text, B: b.Text}
		w.newNames.SetText(strings.Join(naming.Generate(w.items, []naming.Step{step}), "\n"))
	})
	w.gated = append(w.gated, fillBtn)

	return container.NewBorder(nil, nil, opSelect, fillBtn, container.NewGridWithColumns(2, a, b))
}

func (w *Window) setGated(enabled bool) {
	for _, d := range w.gated {
		if enabled {
			d.Enable()
		} else {
			d.Disable()
		}
	}
}

func (w *Window) updateHistoryButtons() {
	h := w.sess.History()
	if h.CanUndo() {
		w.undoBtn.Enable()
	} else {
		w.undoBtn.Disable()
	}
	if h.CanRedo() {
		w.redoBtn.Enable()
	} else {
		w.redoBtn.Disable()
	}
}

// render copies the session's items into the list.
func (w *Window) render() {
	w.items = w.sess.Items()
	w.countLabel.SetText(fmt.Sprintf("Total items: %d", len(w.items)))
	w.itemList.UnselectAll()
	w.itemList.Refresh()
	w.updateHistoryButtons()
}

/* -------------------- Scanning -------------------- */

func (w *Window) selectDirectory() {
	dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, w.win)
			return
		}
		if uri == nil {
			return
		}
		if err := w.sess.SetDirectory(uri.Path()); err != nil {
			return
		}
		w.log.Info().Str("dir", uri.Path()).Msg("directory selected")
		w.directoryLabel.SetText("Selected Directory: " + w.sess.State().Directory)
		w.setGated(true)
		w.rescan()
	}, w.win).Show()
}

func (w *Window) applyFilter() {
	w.sess.SetFilter(strings.TrimSpace(w.filterEntry.Text))
	w.rescan()
}

// rescan lists the directory off the event goroutine and applies the
// result through fyne.Do.
func (w *Window) rescan() {
	if !w.sess.HasDirectory() {
		return
	}
	done := w.sess.Rescan(context.Background())
	w.showLoading()

	go func() {
		res := <-done
		fyne.Do(func() {
			w.hideLoading()
			if !w.sess.Apply(res) {
				return
			}
			if res.Err != nil {
				w.log.Error().Err(res.Err).Str("dir", res.State.Directory).Msg("listing failed")
				w.showError("Failed to list items", res.Err)
			}
			w.render()
		})
	}()
}

// showError puts the action that failed in the title and the error text
// in the body.
func (w *Window) showError(title string, err error) {
	dialog.ShowInformation(title, err.Error(), w.win)
}

func (w *Window) showLoading() {
	w.scans++
	if w.loading == nil {
		bar := widget.NewProgressBarInfinite()
		w.loading = dialog.NewCustomWithoutButtons("Loading",
			container.NewVBox(widget.NewLabel("Scanning, please wait..."), bar), w.win)
	}
	if w.scans == 1 {
		w.loading.Show()
	}
}

func (w *Window) hideLoading() {
	w.scans--
	if w.scans <= 0 {
		w.scans = 0
		w.loading.Hide()
	}
}

/* -------------------- Rename / undo / redo -------------------- */

func (w *Window) batchRename() {
	rep, err := w.sess.BatchRename(naming.Lines(w.newNames.Text))
	var vErr *rename.ValidationError
	switch {
	case errors.As(err, &vErr):
		dialog.ShowInformation("Invalid Input", vErr.Error(), w.win)
		return
	case errors.Is(err, session.ErrNoDirectory):
		dialog.ShowInformation("Rename", "Select a directory first.", w.win)
		return
	}

	w.newNames.SetText("")
	w.render()
	w.report("Rename", "Items renamed successfully!", "Renamed", rep, err)
}

func (w *Window) undo() {
	rep, err := w.sess.Undo()
	if errors.Is(err, history.ErrNothingToUndo) {
		dialog.ShowInformation("Undo", "Nothing to undo.", w.win)
		return
	}
	w.render()
	w.report("Undo", "Undo operation completed.", "Restored", rep, err)
}

func (w *Window) redo() {
	rep, err := w.sess.Redo()
	if errors.Is(err, history.ErrNothingToRedo) {
		dialog.ShowInformation("Redo", "Nothing to redo.", w.win)
		return
	}
	w.render()
	w.report("Redo", "Redo operation completed.", "Renamed", rep, err)
}

// report shows the outcome of a batch: a plain confirmation when every
// pair went through, otherwise the summary with the skipped items.
func (w *Window) report(title, okMsg, verb string, rep history.Report, refreshErr error) {
	if refreshErr != nil {
		w.showError("Failed to list items", refreshErr)
	}
	if len(rep.Failed) == 0 {
		dialog.ShowInformation(title, okMsg, w.win)
		return
	}
	title = "Item Not Found"
	for _, err := range rep.Failed {
		if !errors.Is(err, rename.ErrNotFound) {
			title = title + " / Error"
			break
		}
	}
	d := dialog.NewCustom(title, "OK", container.NewVScroll(widget.NewLabel(rep.Summary(verb))), w.win)
	d.Resize(fyne.NewSize(520, 320))
	d.Show()
}

func (w *Window) showPreview() {
	previews := naming.Check(w.fs, w.sess.State().Directory, w.items, naming.Lines(w.newNames.Text))

	var b strings.Builder
	for _, p := range previews {
		b.WriteString(p.Old + "  →  " + p.New)
		if p.Warning != "" {
			b.WriteString("  ⚠ " + p.Warning)
		}
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		b.WriteString("Nothing to preview.")
	}

	d := dialog.NewCustom("Preview", "Close", container.NewVScroll(widget.NewLabel(b.String())), w.win)
	d.Resize(fyne.NewSize(700, 420))
	d.Show()
}

/* -------------------- Export -------------------- */

func (w *Window) copyToClipboard() {
	w.app.Clipboard().SetContent(export.Text(w.items))
	dialog.ShowInformation("Copy", "List copied to clipboard!", w.win)
}

func (w *Window) saveToNote() {
	items := append([]string(nil), w.items...)

	d := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w.win)
			return
		}
		if uc == nil {
			return
		}

		path := uc.URI().Path()
		if filepath.Ext(path) == "" {
			// Re-create the file with the default extension.
			_ = uc.Close()
			_ = storage.Delete(uc.URI())
			path, err = export.Save(w.fs, path, items)
		} else {
			err = export.Write(uc, path, items)
			if cerr := uc.Close(); err == nil {
				err = cerr
			}
		}
		if err != nil {
			w.log.Error().Err(err).Str("path", path).Msg("save failed")
			w.showError("Failed to save list to note", err)
			return
		}
		w.log.Info().Str("path", path).Int("count", len(items)).Msg("list saved")
		dialog.ShowInformation("Save", "List saved to note!", w.win)
	}, w.win)
	d.SetFileName("items" + export.DefaultExt)
	d.Show()
}
