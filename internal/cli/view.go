package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/wikistorm/internal/app"
	"github.com/dshills/wikistorm/internal/renderer"
	"github.com/dshills/wikistorm/internal/renderer/backend"
	"github.com/dshills/wikistorm/internal/watch"
)

// ErrNotTerminal is returned by view when stdout is not a terminal.
var ErrNotTerminal = errors.New("view needs a terminal")

type viewOptions struct {
	logFile string
	noWatch bool
}

func newCmdView(rt *runtime) *cobra.Command {
	opts := &viewOptions{}

	cmd := &cobra.Command{
		Use:   "view [FILE]",
		Short: "Open a file in the interactive viewer",
		Long: `Open a file in the terminal viewer. Move with the arrow keys and
select with shift. Ctrl-K clears the formatting of the selection,
Ctrl-T splits the markup around it, Ctrl-Z and Ctrl-Y undo and redo,
Ctrl-S saves and Ctrl-Q quits.

Without FILE an empty scratch document is opened.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(os.Stdout) {
				return ErrNotTerminal
			}
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return rt.runView(cmd, path, opts)
		},
	}

	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file while the viewer runs")
	cmd.Flags().BoolVar(&opts.noWatch, "no-watch", false, "do not reload the file when it changes on disk")

	return cmd
}

// rendererOptions builds the display options from the configuration.
func (rt *runtime) rendererOptions() (renderer.Options, error) {
	ropts := renderer.DefaultOptions()
	show, mode, ok := rt.cfg.LineNumbers()
	if !ok {
		return ropts, fmt.Errorf("editor.line_numbers: unknown mode %q", rt.cfg.Editor.LineNumbers)
	}
	ropts.ShowLineNumbers = show
	ropts.LineNumberMode = mode
	theme, err := rt.cfg.BuildTheme()
	if err != nil {
		return ropts, err
	}
	ropts.Theme = theme
	return ropts, nil
}

func (rt *runtime) runView(cmd *cobra.Command, path string, opts *viewOptions) error {
	// The screen belongs to the viewer; logs go to a file or nowhere.
	logOut := io.Discard
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	rt.log.SetOutput(logOut)

	engOpts, err := rt.cfg.EngineOptions(rt.log)
	if err != nil {
		return err
	}
	var doc *app.Document
	if path == "" {
		doc = app.NewScratchDocument("", engOpts...)
	} else if doc, err = app.Open(path, engOpts...); err != nil {
		return err
	}

	ropts, err := rt.rendererOptions()
	if err != nil {
		return err
	}
	aopts := app.Options{Renderer: ropts, Logger: rt.log}

	if !opts.noWatch && !doc.IsScratch() {
		fw, err := watch.NewFileWatcher(watch.WithLogger(rt.log))
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		delay, err := rt.cfg.WatchDebounce()
		if err != nil {
			fw.Close()
			return err
		}
		aopts.Watcher = fw
		if delay > 0 {
			aopts.Watcher = watch.NewDebouncedWatcher(fw, delay)
		}
	}

	term, err := backend.NewTerminal()
	if err != nil {
		if aopts.Watcher != nil {
			aopts.Watcher.Close()
		}
		return fmt.Errorf("create terminal: %w", err)
	}
	application, err := app.New(doc, term, aopts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return application.Run(ctx)
}
