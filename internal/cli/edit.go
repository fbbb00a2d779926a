package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dshills/wikistorm/internal/app"
	"github.com/dshills/wikistorm/internal/engine"
	"github.com/dshills/wikistorm/internal/engine/tracking"
)

type editOptions struct {
	sel   selectionFlags
	diff  bool
	write bool
	check bool
}

// formatCommand is one selection-aware formatting command.
type formatCommand struct {
	name  string
	can   func(*engine.Engine) bool
	apply func(*engine.Engine) (bool, error)
}

var (
	clearCommand = formatCommand{
		name:  "clear",
		can:   (*engine.Engine).CanClearFormatting,
		apply: (*engine.Engine).ClearFormatting,
	}
	splitCommand = formatCommand{
		name:  "split",
		can:   (*engine.Engine).CanSplitMarkup,
		apply: (*engine.Engine).SplitMarkup,
	}
)

func newCmdClear(rt *runtime) *cobra.Command {
	return newEditCommand(rt, clearCommand, &cobra.Command{
		Use:   "clear FILE",
		Short: "Clear the formatting of a selection",
		Long: `Remove bold, italic, links, headers and tags from the selected text.
Markup that continues past the selection keeps formatting the text
outside it.`,
		Example: `  # Show what clearing "line" in <u>under<b>line</b>lined</u> does
  wikistorm clear --from 1:12 --to 1:16 --diff Article.wiki

  # Apply it in place
  wikistorm clear --from 1:12 --to 1:16 --write Article.wiki`,
	})
}

func newCmdSplit(rt *runtime) *cobra.Command {
	return newEditCommand(rt, splitCommand, &cobra.Command{
		Use:   "split FILE",
		Short: "Split the markup around a selection",
		Long: `Close every markup item containing the selection just before it and
reopen it just after, leaving the selected text unformatted.`,
		Example: `  wikistorm split --from 1:6 --to 1:8 Article.wiki`,
	})
}

func newEditCommand(rt *runtime, fc formatCommand, cmd *cobra.Command) *cobra.Command {
	opts := &editOptions{}

	cmd.Args = cobra.ExactArgs(1)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return rt.runEdit(fc, args[0], opts)
	}

	cmd.Flags().StringVar(&opts.sel.from, "from", "", "selection start, LINE:COL")
	cmd.Flags().StringVar(&opts.sel.to, "to", "", "selection end, LINE:COL")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "print a unified diff instead of the result")
	cmd.Flags().BoolVar(&opts.write, "write", false, "write the result back to the file")
	cmd.Flags().BoolVar(&opts.check, "check", false, "only report whether the command applies")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	cmd.MarkFlagsMutuallyExclusive("check", "write")
	cmd.MarkFlagsMutuallyExclusive("diff", "write")

	return cmd
}

func (rt *runtime) runEdit(fc formatCommand, path string, opts *editOptions) error {
	engOpts, err := rt.cfg.EngineOptions(rt.log)
	if err != nil {
		return err
	}
	doc, err := app.Open(path, engOpts...)
	if err != nil {
		return err
	}
	eng := doc.Engine

	sel, err := opts.sel.resolve(eng)
	if err != nil {
		return err
	}
	if err := eng.SetSelection(sel); err != nil {
		return err
	}

	if opts.check {
		_, err := fmt.Fprintln(rt.out, fc.can(eng))
		return err
	}

	before := eng.CreateSnapshot(fc.name)
	changed, err := fc.apply(eng)
	if err != nil {
		return err
	}
	log := rt.log.WithFields(logrus.Fields{
		"command":   fc.name,
		"changed":   changed,
		"selection": fmt.Sprintf("%s-%s", formatLocation(eng.Selection().Start), formatLocation(eng.Selection().End)),
	})
	if !changed {
		log.Info("nothing to do")
	} else {
		log.Debug("applied")
	}

	if opts.diff {
		res, err := eng.DiffSinceSnapshot(before, tracking.DefaultDiffOptions())
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(rt.out, tracking.UnifiedDiff(res, path, path))
		return err
	}
	if opts.write {
		if !changed {
			return nil
		}
		return doc.Save()
	}
	_, err = eng.WriteTo(rt.out)
	return err
}
