package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/wikistorm/internal/engine"
	"github.com/dshills/wikistorm/internal/renderer/core"
	"github.com/dshills/wikistorm/internal/watch"
)

type highlightOptions struct {
	watch   bool
	noColor bool
}

func newCmdHighlight(rt *runtime) *cobra.Command {
	opts := &highlightOptions{}

	cmd := &cobra.Command{
		Use:   "highlight FILE",
		Short: "Print a file with syntax highlighting",
		Long: `Print a file colored by the configured theme. Colors are dropped when
the output is not a terminal. With --watch the file is printed again
every time it changes on disk.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noColor := opts.noColor || !isTerminal(rt.out)
			if !opts.watch {
				eng, err := rt.openEngine(args[0])
				if err != nil {
					return err
				}
				return writeHighlighted(rt.out, eng, noColor)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return rt.watchHighlight(ctx, args[0], noColor)
		},
	}

	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "print again whenever the file changes")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	return cmd
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ansi converts a theme style to a terminal color.
func ansi(s core.Style, noColor bool) *color.Color {
	c := color.New()
	if !s.Foreground.IsDefault() {
		c.AddRGB(int(s.Foreground.R), int(s.Foreground.G), int(s.Foreground.B))
	}
	if !s.Background.IsDefault() {
		c.AddBgRGB(int(s.Background.R), int(s.Background.G), int(s.Background.B))
	}
	for attr, ca := range map[core.Attribute]color.Attribute{
		core.AttrBold:          color.Bold,
		core.AttrDim:           color.Faint,
		core.AttrItalic:        color.Italic,
		core.AttrUnderline:     color.Underline,
		core.AttrReverse:       color.ReverseVideo,
		core.AttrStrikethrough: color.CrossedOut,
	} {
		if s.Attributes.Has(attr) {
			c.Add(ca)
		}
	}
	if noColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c
}

func writeHighlighted(w io.Writer, eng *engine.Engine, noColor bool) error {
	for line := 0; line < eng.LineCount(); line++ {
		text := eng.LineText(line)
		for _, span := range eng.Spans(line) {
			chunk := text[span.Start:span.End]
			var err error
			if noColor || span.Style.IsDefault() {
				_, err = io.WriteString(w, chunk)
			} else {
				_, err = ansi(span.Style, noColor).Fprint(w, chunk)
			}
			if err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// watchHighlight prints path, then prints it again after every change
// until ctx is done.
func (rt *runtime) watchHighlight(ctx context.Context, path string, noColor bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	eng, err := rt.openEngine(abs)
	if err != nil {
		return err
	}
	if err := writeHighlighted(rt.out, eng, noColor); err != nil {
		return err
	}

	fw, err := watch.NewFileWatcher(watch.WithLogger(rt.log))
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	delay, err := rt.cfg.WatchDebounce()
	if err != nil {
		return err
	}
	var w watch.Watcher = fw
	if delay > 0 {
		w = watch.NewDebouncedWatcher(fw, delay)
	}
	defer w.Close()
	if err := w.Add(abs); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	log := rt.log.WithField("path", abs)
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			if ev.Op.Has(watch.OpRemove) || ev.Op.Has(watch.OpRename) {
				log.Warn("file removed, still watching")
				continue
			}
			data, err := os.ReadFile(abs)
			if err != nil {
				log.WithError(err).Warn("reread")
				continue
			}
			if err := eng.SetContent(string(data)); err != nil {
				return err
			}
			log.WithFields(logrus.Fields{"op": ev.Op.String(), "lines": eng.LineCount()}).Debug("file changed")
			if _, err := fmt.Fprintf(rt.out, "\n--- %s ---\n", filepath.Base(abs)); err != nil {
				return err
			}
			if err := writeHighlighted(rt.out, eng, noColor); err != nil {
				return err
			}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watcher")
		}
	}
}
