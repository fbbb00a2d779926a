package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dshills/wikistorm/internal/engine/cursor"
	"github.com/dshills/wikistorm/internal/engine/textrange"
	"github.com/dshills/wikistorm/internal/logging"
	"github.com/dshills/wikistorm/internal/renderer"
	"github.com/dshills/wikistorm/internal/renderer/backend"
	"github.com/dshills/wikistorm/internal/renderer/highlight"
	"github.com/dshills/wikistorm/internal/renderer/statusline"
	"github.com/dshills/wikistorm/internal/watch"
)

// Options configures the Application.
type Options struct {
	// Renderer configures the display.
	Renderer renderer.Options

	// Watcher reports changes to the document file on disk. Optional.
	// The application takes ownership and closes it on exit.
	Watcher watch.Watcher

	// Logger receives application logs. Defaults to a discarding logger.
	Logger logrus.FieldLogger
}

// Application is the interactive viewer. It owns the event loop; all
// document and renderer access happens on the loop goroutine.
type Application struct {
	doc      *Document
	backend  backend.Backend
	renderer *renderer.Renderer
	watcher  watch.Watcher
	log      logrus.FieldLogger
	opts     Options

	// sel keeps the selection direction the engine does not store.
	sel cursor.Selection
	// goal is the display column vertical motions aim for; -1 when unset.
	goal int
	// quitArmed is set after a quit request was refused for unsaved edits.
	quitArmed bool

	running  atomic.Bool
	done     chan struct{}
	doneOnce sync.Once
}

// New creates an application for doc drawing on b.
func New(doc *Document, b backend.Backend, opts Options) (*Application, error) {
	if b == nil {
		return nil, ErrNoBackend
	}
	if doc == nil {
		return nil, errors.New("nil document")
	}

	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	app := &Application{
		doc:     doc,
		backend: b,
		watcher: opts.Watcher,
		log:     logging.WithComponent(log, "app").WithField("session", uuid.NewString()),
		opts:    opts,
		sel:     cursor.FromRange(doc.Engine.Selection()),
		goal:    -1,
		done:    make(chan struct{}),
	}
	return app, nil
}

// Document returns the open document.
func (app *Application) Document() *Document {
	return app.doc
}

// Renderer returns the renderer. It is nil until Run starts.
func (app *Application) Renderer() *renderer.Renderer {
	return app.renderer
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Shutdown asks a running event loop to exit.
func (app *Application) Shutdown() {
	app.doneOnce.Do(func() { close(app.done) })
}

// Run initializes the backend and runs the event loop until ctx is
// cancelled, Shutdown is called or the user quits. An Application runs
// once.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	app.renderer = renderer.New(app.backend, &view{app: app}, app.opts.Renderer)

	if app.watcher != nil {
		defer app.watcher.Close()
		if !app.doc.IsScratch() {
			if err := app.watcher.Add(app.doc.Path); err != nil {
				app.log.WithError(err).Warn("watch document")
			}
		}
	}

	app.log.WithField("document", app.doc.Name).Info("viewer started")
	err := app.eventLoop(ctx)
	app.log.Info("viewer stopped")
	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}

// eventLoop is the main application loop. Input is polled on its own
// goroutine since PollEvent blocks.
func (app *Application) eventLoop(ctx context.Context) error {
	input := make(chan backend.Event)
	go func() {
		for {
			ev := app.backend.PollEvent()
			select {
			case input <- ev:
			case <-app.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
	defer app.Shutdown()

	var fileEvents <-chan watch.Event
	var fileErrors <-chan error
	if app.watcher != nil {
		fileEvents = app.watcher.Events()
		fileErrors = app.watcher.Errors()
	}

	app.render()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-app.done:
			return nil

		case ev := <-input:
			if err := app.handleBackendEvent(ev); err != nil {
				return err
			}

		case ev, ok := <-fileEvents:
			if !ok {
				fileEvents = nil
				continue
			}
			app.handleFileEvent(ev)

		case err, ok := <-fileErrors:
			if !ok {
				fileErrors = nil
				continue
			}
			app.log.WithError(err).Warn("file watcher")
		}
		app.render()
	}
}

// render refreshes the status line fields and draws a frame.
func (app *Application) render() {
	status := app.renderer.StatusLine()
	status.SetFilename(app.doc.Name)
	status.SetModified(app.doc.IsModified())
	status.SetReadOnly(app.doc.Engine.IsReadOnly())
	app.renderer.Render()
}

func (app *Application) message(msg string, kind statusline.MessageType) {
	app.renderer.StatusLine().SetMessage(msg, kind)
}

// handleFileEvent reloads the document after an external change unless
// there are unsaved edits.
func (app *Application) handleFileEvent(ev watch.Event) {
	entry := app.log.WithFields(logrus.Fields{"path": ev.Path, "op": ev.Op.String()})
	if ev.Op.Has(watch.OpRemove) || ev.Op.Has(watch.OpRename) {
		entry.Warn("document removed on disk")
		app.message("file removed on disk", statusline.MessageWarning)
		return
	}
	if app.doc.IsModified() {
		entry.Warn("document changed on disk with unsaved edits")
		app.message("file changed on disk; unsaved edits kept", statusline.MessageWarning)
		return
	}
	if err := app.doc.Reload(); err != nil {
		entry.WithError(err).Error("reload")
		app.message(err.Error(), statusline.MessageError)
		return
	}
	app.syncSelection()
	entry.Debug("document reloaded")
	app.message("reloaded", statusline.MessageInfo)
}

// syncSelection re-reads the engine selection after an edit.
func (app *Application) syncSelection() {
	app.sel = app.sel.Sync(app.doc.Engine.Selection())
	app.goal = -1
}

// view adapts the document for the renderer and reports the caret with
// its direction.
type view struct {
	app *Application
}

func (v *view) LineCount() int { return v.app.doc.Engine.LineCount() }
func (v *view) LineText(line int) string { return v.app.doc.Engine.LineText(line) }
func (v *view) TabWidth() int { return v.app.doc.Engine.TabWidth() }
func (v *view) Selection() textrange.ItemRange { return v.app.doc.Engine.Selection() }
func (v *view) Caret() textrange.ItemLocation { return v.app.sel.Head }
func (v *view) ActiveFormats() []string { return v.app.doc.Engine.ActiveFormats() }
func (v *view) UndoCount() int { return v.app.doc.Engine.UndoCount() }
func (v *view) Spans(line int) []highlight.Span { return v.app.doc.Engine.Spans(line) }
