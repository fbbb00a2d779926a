package tokenizer

// ContextKind identifies the construct the tokenizer is currently inside.
type ContextKind int

// Parse contexts. The zero value is plain text.
const (
	CtxText ContextKind = iota
	CtxComment
	CtxLineEnd
	CtxCloseChar
	CtxSectionHeader
	CtxVariable
	CtxVariableDefault
	CtxParserFunctionName
	CtxParserFunctionArgs
	CtxTemplateName
	CtxTemplateArg
	CtxExtLinkProtocol
	CtxExtLink
	CtxExtLinkText
	CtxLink
	CtxLinkSection
	CtxLinkText
	CtxTagName
	CtxHTMLTagAttr
	CtxExtTagAttr
	CtxExtTagBody
	CtxExtCloseTag
	CtxExtTokens
	CtxTableStart
	CtxTableDefinition
	CtxTableCaption
	CtxTable
	CtxTableRow
	CtxFreeLinkProtocol
	CtxFreeLink
)

var contextNames = [...]string{
	CtxText:               "text",
	CtxComment:            "comment",
	CtxLineEnd:            "line-end",
	CtxCloseChar:          "close-char",
	CtxSectionHeader:      "section-header",
	CtxVariable:           "variable",
	CtxVariableDefault:    "variable-default",
	CtxParserFunctionName: "parser-function-name",
	CtxParserFunctionArgs: "parser-function-args",
	CtxTemplateName:       "template-name",
	CtxTemplateArg:        "template-arg",
	CtxExtLinkProtocol:    "extlink-protocol",
	CtxExtLink:            "extlink",
	CtxExtLinkText:        "extlink-text",
	CtxLink:               "link",
	CtxLinkSection:        "link-section",
	CtxLinkText:           "link-text",
	CtxTagName:            "tag-name",
	CtxHTMLTagAttr:        "htmltag-attr",
	CtxExtTagAttr:         "exttag-attr",
	CtxExtTagBody:         "exttag-body",
	CtxExtCloseTag:        "exttag-close",
	CtxExtTokens:          "exttag-tokens",
	CtxTableStart:         "table-start",
	CtxTableDefinition:    "table-definition",
	CtxTableCaption:       "table-caption",
	CtxTable:              "table",
	CtxTableRow:           "table-row",
	CtxFreeLinkProtocol:   "free-extlink-protocol",
	CtxFreeLink:           "free-extlink",
}

// String returns the context name.
func (k ContextKind) String() string {
	if k >= 0 && int(k) < len(contextNames) {
		return contextNames[k]
	}
	return "unknown"
}

// Context is one parse continuation. Only the fields meaningful to Kind
// are set; the rest stay zero so contexts compare with ==.
type Context struct {
	Kind ContextKind

	// Style and Mnemonic are the fallback styles of a text or line-end
	// context.
	Style    string
	Mnemonic string

	// Terminator ends a comment block.
	Terminator string

	// Char is the single character a CtxCloseChar context expects.
	Char rune

	// Name is the tag name of tag and extension contexts.
	Name string

	// Count is a byte count: the tag name length, the protocol length of an
	// external link, or the closing run of a section header.
	Count int

	// Close and HTML describe a tag name context.
	Close bool
	HTML  bool

	// Start and Head describe a table row.
	Start bool
	Head  bool

	// Ate is set once a template page name has been read.
	Ate bool

	// ArgName is set while a template argument may still be named.
	ArgName bool

	// Bold and Italic are the link text's own apostrophe toggles.
	Bold   bool
	Italic bool

	// Limited is set when an extension body ends on this line. Restore is
	// the stream end to reinstate once the body is consumed.
	Limited bool
	Restore int
}

func textContext(style, mnemonic string) Context {
	return Context{Kind: CtxText, Style: style, Mnemonic: mnemonic}
}
