package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/dshills/wikistorm/internal/engine"
)

type tokensOptions struct {
	json bool
}

func newCmdTokens(rt *runtime) *cobra.Command {
	opts := &tokensOptions{}

	cmd := &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the highlighting tokens of every line",
		Example: `  # One token per row: line, byte span, text and style
  wikistorm tokens Article.wiki

  # Machine readable
  wikistorm tokens --json Article.wiki`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := rt.openEngine(args[0])
			if err != nil {
				return err
			}
			if opts.json {
				return writeTokensJSON(rt.out, args[0], eng)
			}
			return writeTokens(rt.out, eng)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "print tokens as JSON")

	return cmd
}

func writeTokens(w io.Writer, eng *engine.Engine) error {
	for line := 0; line < eng.LineCount(); line++ {
		for _, tok := range eng.LineTokens(line) {
			_, err := fmt.Fprintf(w, "%d\t%d-%d\t%s\t%s\n",
				line+1, tok.Start, tok.End, strconv.Quote(tok.String), tok.Style)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// writeTokensJSON writes {"file":..., "lines":[{"line":n,"tokens":[...]}]}
// with one-based line numbers and byte offsets into the line.
func writeTokensJSON(w io.Writer, name string, eng *engine.Engine) error {
	doc, err := sjson.Set(`{"lines":[]}`, "file", name)
	if err != nil {
		return err
	}
	for line := 0; line < eng.LineCount(); line++ {
		entry, err := sjson.Set(`{"tokens":[]}`, "line", line+1)
		if err != nil {
			return err
		}
		for _, tok := range eng.LineTokens(line) {
			entry, err = sjson.Set(entry, "tokens.-1", map[string]any{
				"start": tok.Start,
				"end":   tok.End,
				"text":  tok.String,
				"style": tok.Style,
			})
			if err != nil {
				return err
			}
		}
		if doc, err = sjson.SetRaw(doc, "lines.-1", entry); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w, doc)
	return err
}
