package loader

import (
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
)

// DefaultEnvPrefix is the prefix of wikistorm environment variables.
const DefaultEnvPrefix = "WIKISTORM_"

// EnvLoader loads configuration from environment variables.
//
// Mapped variables use a short name (WIKISTORM_THEME). Any other
// prefixed variable names its path with double underscores between
// segments: WIKISTORM_EDITOR__TAB_WIDTH is editor.tab_width.
type EnvLoader struct {
	prefix  string
	mapping map[string]string // env var -> config path
	environ func() []string
}

// NewEnvLoader creates an environment loader for prefix, including its
// trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		environ: os.Environ,
	}
}

// WithEnviron replaces the environment source.
func (l *EnvLoader) WithEnviron(environ func() []string) *EnvLoader {
	l.environ = environ
	return l
}

func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL":     "log.level",
		prefix + "LOG_FORMAT":    "log.format",
		prefix + "THEME":         "theme.name",
		prefix + "TAB_WIDTH":     "editor.tab_width",
		prefix + "LINE_NUMBERS":  "editor.line_numbers",
		prefix + "MAX_UNDO":      "history.max_undo_entries",
		prefix + "MAX_CHANGES":   "history.max_changes",
		prefix + "URL_PROTOCOLS": "tokenizer.url_protocols",
		prefix + "TAGS":          "tokenizer.tags",
	}
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// Load returns the prefixed variables as a nested map keyed by config
// path. Empty values are kept.
func (l *EnvLoader) Load() map[string]any {
	config := make(map[string]any)
	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		setByPath(config, path, parseValue(value))
	}
	return config
}

// Apply decodes the environment overrides into v, a struct with toml
// tags.
func (l *EnvLoader) Apply(v any) error {
	config := l.Load()
	if len(config) == 0 {
		return nil
	}
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return Decode("environment", data, FormatTOML, v)
}

// envToPath converts WIKISTORM_EDITOR__TAB_WIDTH to editor.tab_width.
// Names without a double underscore have no path.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.TrimPrefix(env, l.prefix)
	if !strings.Contains(name, "__") {
		return ""
	}
	parts := strings.Split(strings.ToLower(name), "__")
	for _, p := range parts {
		if p == "" {
			return ""
		}
	}
	return strings.Join(parts, ".")
}

// parseValue parses s as a bool, an integer, a float or a JSON array, in
// that order, and otherwise keeps the string. A comma-separated value
// becomes a list of strings.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	// "on" and "off" stay strings: editor.line_numbers takes "off".
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") && !strings.Contains(s, ",") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	if strings.HasPrefix(s, "[") && gjson.Valid(s) {
		var list []any
		for _, item := range gjson.Parse(s).Array() {
			list = append(list, item.Value())
		}
		return list
	}
	if strings.Contains(s, ",") {
		var list []any
		for _, item := range strings.Split(s, ",") {
			if item = strings.TrimSpace(item); item != "" {
				list = append(list, item)
			}
		}
		return list
	}
	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
