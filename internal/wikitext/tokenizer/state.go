package tokenizer

// State is the tokenizer state carried from one line to the next.
type State struct {
	// Context is the active parse continuation; Stack holds the contexts to
	// resume, innermost last.
	Context Context
	Stack   []Context

	// InHTMLTag is the stack of open HTML tag names.
	InHTMLTag []string

	// ExtName is the extension tag whose body is being read. ExtMode and
	// ExtState are its sub-mode and that mode's own state, if one is
	// registered for the tag.
	ExtName  string
	ExtMode  SubMode
	ExtState SubState

	// Ground counters. They never go below zero.
	NTemplate int
	NExt      int
	NLink     int

	bold   bool
	italic bool

	// Apostrophe rollback candidates, as stream offsets. Zero means unset.
	single int
	multi  int
	space  int

	snapshot  *State
	lastStyle string
	pending   []pendingToken
}

type pendingToken struct {
	end   int
	style string
}

// counter names the ground counter a closing delimiter decrements.
type counter int

const (
	noCounter counter = iota
	templateCounter
	extCounter
	linkCounter
)

// Copy returns a deep copy of st, including the nested sub-mode state.
func (st *State) Copy() *State {
	if st == nil {
		return nil
	}
	c := *st
	c.Stack = append([]Context(nil), st.Stack...)
	c.InHTMLTag = append([]string(nil), st.InHTMLTag...)
	if st.ExtState != nil {
		c.ExtState = st.ExtState.CopySubState()
	}
	c.pending = append([]pendingToken(nil), st.pending...)
	c.snapshot = st.snapshot.Copy()
	return &c
}

// CopySubState lets a State serve as the nested state of a sub-mode.
func (st *State) CopySubState() SubState {
	return st.Copy()
}

// Bold reports whether bold is active at the current position.
func (st *State) Bold() bool { return st.bold }

// Italic reports whether italic is active at the current position.
func (st *State) Italic() bool { return st.italic }

// Depth returns the number of suspended contexts.
func (st *State) Depth() int { return len(st.Stack) }

// push suspends the current context and enters next.
func (st *State) push(next Context) {
	st.Stack = append(st.Stack, st.Context)
	st.Context = next
}

// reenter suspends a copy of the current context without leaving it.
func (st *State) reenter() {
	st.Stack = append(st.Stack, st.Context)
}

// pop resumes the innermost suspended context. An empty stack resumes
// plain text.
func (st *State) pop() {
	if n := len(st.Stack); n > 0 {
		st.Context = st.Stack[n-1]
		st.Stack = st.Stack[:n-1]
		return
	}
	st.Context = textContext("", "")
}

func (st *State) popHTMLTag() string {
	n := len(st.InHTMLTag)
	if n == 0 {
		return ""
	}
	name := st.InHTMLTag[n-1]
	st.InHTMLTag = st.InHTMLTag[:n-1]
	return name
}

func (st *State) decrement(c counter) {
	switch c {
	case templateCounter:
		if st.NTemplate > 0 {
			st.NTemplate--
		}
	case extCounter:
		if st.NExt > 0 {
			st.NExt--
		}
	case linkCounter:
		if st.NLink > 0 {
			st.NLink--
		}
	}
}

func (st *State) leaveExtBody() {
	st.ExtName = ""
	st.ExtMode = nil
	st.ExtState = nil
}

func (st *State) resetLine() {
	st.bold = false
	st.italic = false
	st.resetCandidates()
	st.lastStyle = ""
}

func (st *State) resetCandidates() {
	st.single, st.multi, st.space = 0, 0, 0
	st.snapshot = nil
}

// candidate returns the winning rollback offset, or 0.
func (st *State) candidate() int {
	switch {
	case st.single != 0:
		return st.single
	case st.multi != 0:
		return st.multi
	default:
		return st.space
	}
}

// saveSnapshot records the state to restore when the line's apostrophes
// turn out to be unbalanced.
func (st *State) saveSnapshot() {
	snap := *st
	snap.snapshot = nil
	snap.pending = nil
	st.snapshot = snap.Copy()
}

// ground returns the ground prefix for the current counters.
func (st *State) ground() string {
	g := ""
	switch st.NTemplate {
	case 0:
	case 1:
		g += "-template"
	case 2:
		g += "-template2"
	default:
		g += "-template3"
	}
	switch st.NExt {
	case 0:
	case 1:
		g += "-ext"
	case 2:
		g += "-ext2"
	default:
		g += "-ext3"
	}
	if st.NLink > 0 {
		g += "-link"
	}
	return g
}

// local decorates style with the ground prefix.
func (st *State) local(style string) string {
	return st.localEnd(style, noCounter)
}

// localEnd decorates style with the ground it closes, then decrements c.
func (st *State) localEnd(style string, c counter) string {
	if g := st.ground(); g != "" {
		style = "mw" + g + "-ground " + style
	}
	st.decrement(c)
	return style
}

// styled adds the bold and italic flags before the ground prefix.
func (st *State) styled(style string) string {
	if st.bold {
		style += " strong"
	}
	if st.italic {
		style += " em"
	}
	return st.local(style)
}
