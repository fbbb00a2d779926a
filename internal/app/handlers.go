package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/wikistorm/internal/engine"
	"github.com/dshills/wikistorm/internal/engine/cursor"
	"github.com/dshills/wikistorm/internal/renderer/backend"
	"github.com/dshills/wikistorm/internal/renderer/statusline"
)

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		return app.handleResize(ev)
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventInterrupt:
		return ErrQuit
	default:
		return nil
	}
}

// handleResize processes terminal resize events.
func (app *Application) handleResize(ev backend.Event) error {
	app.renderer.Resize(ev.Width, ev.Height)
	return nil
}

// handleKeyEvent processes keyboard input events.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	quitting := app.quitArmed
	app.quitArmed = false
	app.renderer.StatusLine().ClearMessage()

	extend := ev.Mod.Has(backend.ModShift)
	doc := app.doc.Engine

	switch ev.Key {
	case backend.KeyLeft:
		if !extend && !app.sel.IsEmpty() {
			app.setSelection(app.sel.CollapseToStart())
			return nil
		}
		app.moveTo(cursor.Left(doc, app.sel.Head), extend)
	case backend.KeyRight:
		if !extend && !app.sel.IsEmpty() {
			app.setSelection(app.sel.CollapseToEnd())
			return nil
		}
		app.moveTo(cursor.Right(doc, app.sel.Head), extend)
	case backend.KeyUp:
		app.moveVertical(-1, extend)
	case backend.KeyDown:
		app.moveVertical(1, extend)
	case backend.KeyPageUp:
		app.moveVertical(-app.pageSize(), extend)
	case backend.KeyPageDown:
		app.moveVertical(app.pageSize(), extend)
	case backend.KeyHome:
		if ev.Mod.Has(backend.ModCtrl) {
			app.moveTo(cursor.DocStart(), extend)
		} else {
			app.moveTo(cursor.LineStart(doc, app.sel.Head), extend)
		}
	case backend.KeyEnd:
		if ev.Mod.Has(backend.ModCtrl) {
			app.moveTo(cursor.DocEnd(doc), extend)
		} else {
			app.moveTo(cursor.LineEnd(doc, app.sel.Head), extend)
		}

	case backend.KeyRune:
		app.edit("type", func() error { return doc.Type(string(ev.Rune)) })
	case backend.KeyTab:
		app.edit("type", func() error { return doc.Type("\t") })
	case backend.KeyEnter:
		app.edit("type", func() error { return doc.Type("\n") })
	case backend.KeyBackspace:
		app.edit("delete", func() error { return doc.DeleteBackward(1) })
	case backend.KeyDelete:
		app.edit("delete", func() error { return doc.DeleteForward(1) })

	case backend.KeyCtrlK:
		app.format("clear formatting", doc.ClearFormatting)
	case backend.KeyCtrlT:
		app.format("split markup", doc.SplitMarkup)
	case backend.KeyCtrlZ:
		app.edit("undo", doc.Undo)
	case backend.KeyCtrlY:
		app.edit("redo", doc.Redo)
	case backend.KeyCtrlS:
		app.save()

	case backend.KeyEscape:
		if !app.sel.IsEmpty() {
			app.setSelection(app.sel.Collapse())
			return nil
		}
		return app.quit(quitting)
	case backend.KeyCtrlQ, backend.KeyCtrlC:
		return app.quit(quitting)
	}
	return nil
}

// quit returns ErrQuit unless there are unsaved edits, in which case the
// first request only warns.
func (app *Application) quit(confirmed bool) error {
	if confirmed || !app.doc.IsModified() {
		return ErrQuit
	}
	app.quitArmed = true
	app.message("unsaved changes; quit again to discard", statusline.MessageWarning)
	return nil
}

func (app *Application) pageSize() int {
	return max(app.renderer.Viewport().Height()-1, 1)
}

// moveTo moves the caret to loc, extending the selection when extend is
// set.
func (app *Application) moveTo(loc cursor.Location, extend bool) {
	sel := app.sel.MoveTo(loc)
	if extend {
		sel = app.sel.Extend(loc)
	}
	app.setSelection(sel)
	app.goal = -1
}

func (app *Application) moveVertical(lines int, extend bool) {
	doc := app.doc.Engine
	tabWidth := doc.TabWidth()
	goal := app.goal
	if goal < 0 {
		goal = cursor.VisualColumn(doc.LineText(app.sel.Head.Line), app.sel.Head.Ch, tabWidth)
	}

	loc := app.sel.Head
	for i := 0; i < lines; i++ {
		loc = cursor.Down(doc, loc, goal, tabWidth)
	}
	for i := 0; i > lines; i-- {
		loc = cursor.Up(doc, loc, goal, tabWidth)
	}

	app.moveTo(loc, extend)
	app.goal = goal
}

// setSelection stores sel and pushes its range to the engine.
func (app *Application) setSelection(sel cursor.Selection) {
	if err := app.doc.Engine.SetSelection(sel.Range()); err != nil {
		app.log.WithError(err).Debug("set selection")
		return
	}
	app.sel = sel
}

// edit runs an editing operation and reports failures on the status line.
func (app *Application) edit(name string, fn func() error) {
	err := fn()
	app.syncSelection()
	switch {
	case err == nil:
	case errors.Is(err, engine.ErrReadOnly):
		app.message("document is read-only", statusline.MessageWarning)
	case errors.Is(err, engine.ErrNothingToUndo), errors.Is(err, engine.ErrNothingToRedo):
		app.message("nothing to "+name, statusline.MessageInfo)
	default:
		app.log.WithError(err).WithField("op", name).Error("edit failed")
		app.message(fmt.Sprintf("%s: %v", name, err), statusline.MessageError)
	}
}

// format runs a formatting command and reports whether it changed the
// document.
func (app *Application) format(name string, fn func() (bool, error)) {
	var changed bool
	app.edit(name, func() error {
		var err error
		changed, err = fn()
		return err
	})
	if app.renderer.StatusLine().Message() != "" {
		return
	}
	if changed {
		app.log.WithField("op", name).Debug("formatting applied")
		app.message(name, statusline.MessageInfo)
	} else {
		app.message("no markup to "+strings.Fields(name)[0], statusline.MessageInfo)
	}
}

func (app *Application) save() {
	if err := app.doc.Save(); err != nil {
		app.log.WithError(err).Error("save")
		app.message(err.Error(), statusline.MessageError)
		return
	}
	app.log.WithField("path", app.doc.Path).Info("document saved")
	app.message("saved "+app.doc.Name, statusline.MessageInfo)
}
