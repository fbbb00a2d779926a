// Package tokenizer implements a resumable wikitext highlighter.
//
// A Tokenizer reads one line at a time through a Stream and returns a
// space separated style string per token. All cross-line information lives
// in a State: the active parse Context, a stack of suspended contexts,
// ground counters for templates, parser functions and links, open HTML
// tags, and the state of any extension tag sub-mode. States are deep
// copyable so a host can cache the state at the start of every line and
// re-tokenize from the first edited line only.
//
// Style names follow the MediaWiki CodeMirror mode (mw-template-bracket,
// mw-link-bracket, mw-apostrophes-bold and so on). Styles produced inside
// templates, parser functions and links are prefixed with a ground tag such
// as "mw-template2-link-ground". Tags starting with "line-" apply to the
// whole line rather than the token.
//
// Tokenizing never fails. Malformed markup is styled "error" or left as
// text, and unterminated links and templates are dropped at the next line
// start so later lines resynchronize.
package tokenizer
