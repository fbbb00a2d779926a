// Package renderer draws a wikitext document onto a terminal backend.
//
// The renderer is responsible for:
//   - laying out lines with tab expansion and Unicode widths
//   - applying highlight spans from the tokenizer
//   - drawing the selection and caret
//   - the line number gutter and the status line
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│           Renderer (Facade)             │
//	├─────────────────────────────────────────┤
//	│  Viewport │ Layout │ Gutter │ Status    │
//	├─────────────────────────────────────────┤
//	│  Highlight (tokens → themed spans)      │
//	├─────────────────────────────────────────┤
//	│  Backend: Terminal (tcell) │ Null       │
//	└─────────────────────────────────────────┘
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	r := renderer.New(term, eng, renderer.DefaultOptions())
//	r.Render()
package renderer
