package tokenizer

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("invalid tokenizer config")

// Synonyms lists names matched case-insensitively and case-sensitively.
type Synonyms struct {
	Insensitive []string `toml:"insensitive" yaml:"insensitive"`
	Sensitive   []string `toml:"sensitive" yaml:"sensitive"`
}

// Config describes the wiki the tokenizer highlights for.
type Config struct {
	// URLProtocols are the prefixes that start external links, tried in order.
	URLProtocols []string `toml:"url_protocols" yaml:"url_protocols"`

	// Tags are the extension tag names. Their bodies are not wikitext.
	Tags []string `toml:"tags" yaml:"tags"`

	// FunctionSynonyms are parser function names usable without '#'.
	FunctionSynonyms Synonyms `toml:"function_synonyms" yaml:"function_synonyms"`

	// DoubleUnderscore are the behavior switches such as __NOTOC__.
	DoubleUnderscore Synonyms `toml:"double_underscore" yaml:"double_underscore"`

	// TagModes maps an extension tag to the sub-mode tokenizing its body.
	TagModes map[string]string `toml:"tag_modes" yaml:"tag_modes"`
}

// Sub-mode names understood by the tokenizer.
const (
	ModeMediaWiki = "text/mediawiki"
	ModePre       = "mw-tag-pre"
	ModeNowiki    = "mw-tag-nowiki"
)

// DefaultConfig returns the configuration of a stock MediaWiki install with
// the common extensions enabled.
func DefaultConfig() Config {
	return Config{
		URLProtocols: []string{
			"bitcoin:", "ftp://", "ftps://", "geo:", "git://", "gopher://",
			"http://", "https://", "irc://", "ircs://", "magnet:", "mailto:",
			"mms://", "news:", "nntp://", "redis://", "sftp://", "sip:",
			"sips:", "sms:", "ssh://", "svn://", "tel:", "telnet://", "urn:",
			"worldwind://", "xmpp:", "//",
		},
		Tags: []string{
			"pre", "nowiki", "gallery", "indicator", "langconvert", "timeline",
			"hiero", "charinsert", "ref", "references", "inputbox", "imagemap",
			"source", "syntaxhighlight", "poem", "categorytree", "section",
			"score", "templatestyles", "templatedata", "math", "ce", "chem",
			"graph", "maplink", "mapframe",
		},
		FunctionSynonyms: Synonyms{
			Insensitive: []string{
				"ns", "nse", "urlencode", "lcfirst", "ucfirst", "lc", "uc",
				"localurl", "localurle", "fullurl", "fullurle", "canonicalurl",
				"canonicalurle", "formatnum", "grammar", "gender", "plural",
				"bidi", "numberingroup", "language", "padleft", "padright",
				"anchorencode", "filepath", "pageid", "int", "special",
				"speciale", "tag", "formatdate", "displaytitle", "defaultsort",
				"pagesincategory", "pagesize", "protectionlevel",
				"protectionexpiration", "if", "ifeq", "switch", "ifexist",
				"ifexpr", "iferror", "expr", "time", "timel", "rel2abs",
				"titleparts", "len", "pos", "rpos", "sub", "count", "replace",
				"explode", "urldecode", "invoke", "property", "statements",
				"lst", "lsth", "lstx", "target", "babel", "coordinates",
			},
			Sensitive: []string{
				"!", "=", "CURRENTYEAR", "CURRENTMONTH", "CURRENTDAY",
				"CURRENTTIME", "CURRENTTIMESTAMP", "LOCALYEAR", "SITENAME",
				"SERVER", "SERVERNAME", "SCRIPTPATH", "NUMBEROFPAGES",
				"NUMBEROFARTICLES", "NUMBEROFFILES", "NUMBEROFUSERS",
				"NUMBEROFACTIVEUSERS", "NUMBEROFEDITS", "NUMBEROFADMINS",
				"PAGENAME", "PAGENAMEE", "FULLPAGENAME", "FULLPAGENAMEE",
				"BASEPAGENAME", "ROOTPAGENAME", "SUBPAGENAME", "TALKPAGENAME",
				"SUBJECTPAGENAME", "NAMESPACE", "NAMESPACEE", "NAMESPACENUMBER",
				"TALKSPACE", "SUBJECTSPACE", "REVISIONID", "REVISIONUSER",
				"DISPLAYTITLE", "DEFAULTSORT", "DEFAULTSORTKEY",
				"PAGESINCATEGORY", "PAGESIZE", "PROTECTIONLEVEL",
			},
		},
		DoubleUnderscore: Synonyms{
			Insensitive: []string{
				"__notoc__", "__nogallery__", "__forcetoc__", "__toc__",
				"__noeditsection__", "__notitleconvert__", "__notc__",
				"__nocontentconvert__", "__nocc__", "__newsectionlink__",
				"__nonewsectionlink__", "__hiddencat__", "__index__",
				"__noindex__", "__staticredirect__", "__disambig__",
			},
			Sensitive: []string{
				"__EXPECTUNUSEDCATEGORY__", "__EXPECTUNUSEDTEMPLATE__",
				"__NOGLOBAL__",
			},
		},
		TagModes: map[string]string{
			"pre":    ModePre,
			"nowiki": ModeNowiki,
			"ref":    ModeMediaWiki,
		},
	}
}

// Validate checks the config for values the tokenizer cannot use.
func (c Config) Validate() error {
	if len(c.URLProtocols) == 0 {
		return fmt.Errorf("%w: no url protocols", ErrInvalidConfig)
	}
	for _, p := range c.URLProtocols {
		if p == "" {
			return fmt.Errorf("%w: empty url protocol", ErrInvalidConfig)
		}
	}
	tags := make(map[string]bool, len(c.Tags))
	for _, tag := range c.Tags {
		if tag == "" || strings.TrimSpace(tag) != tag {
			return fmt.Errorf("%w: bad extension tag name %q", ErrInvalidConfig, tag)
		}
		tags[strings.ToLower(tag)] = true
	}
	for tag := range c.TagModes {
		if !tags[strings.ToLower(tag)] {
			return fmt.Errorf("%w: tag mode for %q, which is not an extension tag", ErrInvalidConfig, tag)
		}
	}
	return nil
}

// Merge returns c with every non-empty field of other applied on top.
func (c Config) Merge(other Config) Config {
	if len(other.URLProtocols) > 0 {
		c.URLProtocols = other.URLProtocols
	}
	if len(other.Tags) > 0 {
		c.Tags = other.Tags
	}
	if len(other.FunctionSynonyms.Insensitive) > 0 {
		c.FunctionSynonyms.Insensitive = other.FunctionSynonyms.Insensitive
	}
	if len(other.FunctionSynonyms.Sensitive) > 0 {
		c.FunctionSynonyms.Sensitive = other.FunctionSynonyms.Sensitive
	}
	if len(other.DoubleUnderscore.Insensitive) > 0 {
		c.DoubleUnderscore.Insensitive = other.DoubleUnderscore.Insensitive
	}
	if len(other.DoubleUnderscore.Sensitive) > 0 {
		c.DoubleUnderscore.Sensitive = other.DoubleUnderscore.Sensitive
	}
	if len(other.TagModes) > 0 {
		modes := make(map[string]string, len(c.TagModes)+len(other.TagModes))
		for k, v := range c.TagModes {
			modes[k] = v
		}
		for k, v := range other.TagModes {
			modes[k] = v
		}
		c.TagModes = modes
	}
	return c
}

// lexicon is the lookup form of a Config.
type lexicon struct {
	protocols     []string
	tags          map[string]bool
	fnInsensitive map[string]bool
	fnSensitive   map[string]bool
	duInsensitive map[string]bool
	duSensitive   map[string]bool
	tagModes      map[string]string
}

func fold(s string) string {
	return cases.Fold().String(s)
}

func newLexicon(c Config) *lexicon {
	lx := &lexicon{
		protocols:     append([]string(nil), c.URLProtocols...),
		tags:          make(map[string]bool, len(c.Tags)),
		fnInsensitive: make(map[string]bool),
		fnSensitive:   make(map[string]bool),
		duInsensitive: make(map[string]bool),
		duSensitive:   make(map[string]bool),
		tagModes:      make(map[string]string, len(c.TagModes)),
	}
	for _, tag := range c.Tags {
		lx.tags[strings.ToLower(tag)] = true
	}
	for _, name := range c.FunctionSynonyms.Insensitive {
		lx.fnInsensitive[fold(name)] = true
	}
	for _, name := range c.FunctionSynonyms.Sensitive {
		lx.fnSensitive[name] = true
	}
	for _, name := range c.DoubleUnderscore.Insensitive {
		lx.duInsensitive[fold(name)] = true
	}
	for _, name := range c.DoubleUnderscore.Sensitive {
		lx.duSensitive[name] = true
	}
	for tag, mode := range c.TagModes {
		lx.tagModes[strings.ToLower(tag)] = mode
	}
	return lx
}

// protocolAt returns the length of the url protocol at the stream
// position, or 0. Protocols are tried in configured order.
func (lx *lexicon) protocolAt(s *Stream, consume bool) int {
	for _, p := range lx.protocols {
		if s.MatchFold(p, consume) {
			return len(p)
		}
	}
	return 0
}

func (lx *lexicon) isExtTag(name string) bool {
	return lx.tags[name]
}

func (lx *lexicon) isFunctionSynonym(name string) bool {
	return lx.fnInsensitive[fold(name)] || lx.fnSensitive[name]
}

func (lx *lexicon) isDoubleUnderscore(word string) bool {
	return lx.duInsensitive[fold(word)] || lx.duSensitive[word]
}

// extTags returns the extension tag names in sorted order.
func (lx *lexicon) extTags() []string {
	names := make([]string, 0, len(lx.tags))
	for name := range lx.tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
