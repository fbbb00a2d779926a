package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/wikistorm/internal/engine"
	"github.com/dshills/wikistorm/internal/engine/textrange"
	"github.com/dshills/wikistorm/internal/wikitext/markup"
)

type itemsOptions struct {
	line       int
	incomplete bool
}

func newCmdItems(rt *runtime) *cobra.Command {
	opts := &itemsOptions{}

	cmd := &cobra.Command{
		Use:   "items FILE",
		Short: "List the paired markup items of a file",
		Long: `List the markup items (bold, italic, links, headers, templates and
tags) found on each line, with their outer and inner ranges.`,
		Example: `  wikistorm items Article.wiki
  wikistorm items --line 12 --incomplete Article.wiki`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := rt.openEngine(args[0])
			if err != nil {
				return err
			}
			return writeItems(rt.out, eng, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.line, "line", "l", 0, "only list items on this line")
	cmd.Flags().BoolVar(&opts.incomplete, "incomplete", false, "include items whose closing delimiter is missing")

	return cmd
}

func writeItems(w io.Writer, eng *engine.Engine, opts *itemsOptions) error {
	lines := textrange.NewItemRange(
		textrange.NewItemLocation(0, 0),
		textrange.NewItemLocation(eng.LineCount()-1, 0),
	).LineNumbers()
	if opts.line != 0 {
		if opts.line < 1 || opts.line > eng.LineCount() {
			return fmt.Errorf("%w: line %d outside the document", ErrBadLocation, opts.line)
		}
		lines = []int{opts.line - 1}
	}

	items := markup.ItemsForLines(eng.LineTokens, lines)
	if !opts.incomplete {
		items = markup.Complete(items)
	}
	for _, it := range items {
		_, err := fmt.Fprintf(w, "%s\t%s\touter %s-%s\tinner %s-%s\n",
			it.Type, it.ButtonName(),
			formatLocation(it.OuterRange.Start), formatLocation(it.OuterRange.End),
			formatLocation(it.InnerRange.Start), formatLocation(it.InnerRange.End))
		if err != nil {
			return err
		}
	}
	return nil
}
