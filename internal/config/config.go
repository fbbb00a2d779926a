package config

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dshills/wikistorm/internal/config/loader"
	"github.com/dshills/wikistorm/internal/engine"
	"github.com/dshills/wikistorm/internal/logging"
	"github.com/dshills/wikistorm/internal/renderer/gutter"
	"github.com/dshills/wikistorm/internal/renderer/highlight"
	"github.com/dshills/wikistorm/internal/wikitext/tokenizer"
)

//go:embed defaults.toml
var defaultsTOML []byte

// Config is the complete wikistorm configuration.
type Config struct {
	Log       logging.Config   `toml:"log" yaml:"log"`
	Tokenizer tokenizer.Config `toml:"tokenizer" yaml:"tokenizer"`
	Theme     ThemeConfig      `toml:"theme" yaml:"theme"`
	History   HistoryConfig    `toml:"history" yaml:"history"`
	Editor    EditorConfig     `toml:"editor" yaml:"editor"`
}

// ThemeConfig selects a built-in theme and overrides class styles.
type ThemeConfig struct {
	// Name is a built-in theme: dark or light.
	Name string `toml:"name" yaml:"name"`

	// Colors maps token classes to "#rrggbb [attr...]".
	Colors map[string]string `toml:"colors" yaml:"colors"`
}

// HistoryConfig bounds undo history and change tracking.
type HistoryConfig struct {
	MaxUndoEntries int `toml:"max_undo_entries" yaml:"max_undo_entries"`
	MaxChanges     int `toml:"max_changes" yaml:"max_changes"`
}

// EditorConfig holds viewer settings.
type EditorConfig struct {
	TabWidth int `toml:"tab_width" yaml:"tab_width"`

	// LineNumbers is off, absolute, relative or hybrid.
	LineNumbers string `toml:"line_numbers" yaml:"line_numbers"`

	// WatchDebounce coalesces file change events, e.g. "100ms".
	WatchDebounce string `toml:"watch_debounce" yaml:"watch_debounce"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{Tokenizer: tokenizer.DefaultConfig()}
	if err := loader.Decode("defaults.toml", defaultsTOML, loader.FormatTOML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load resolves the configuration from the defaults, the file at path
// (skipped when path is empty) and the environment. A named file that
// does not exist is an error.
func Load(path string) (*Config, error) {
	return LoadWith(loader.DefaultFS(), path, loader.NewEnvLoader(loader.DefaultEnvPrefix))
}

// LoadWith is Load with an explicit file system and environment.
func LoadWith(fsys loader.FileSystem, path string, env *loader.EnvLoader) (*Config, error) {
	cfg := Default()
	if path != "" {
		found, err := loader.LoadFile(fsys, path, cfg)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("config file %s: not found", path)
		}
	}
	if env != nil {
		if err := env.Apply(cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section and joins the failures.
func (c *Config) Validate() error {
	var errs []error
	fail := func(path string, value any, code ValidationErrorCode, msg string) {
		errs = append(errs, &ValidationError{Path: path, Value: value, Code: code, Message: msg})
	}

	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		fail("log.level", c.Log.Level, ErrCodeInvalidEnum, "must be trace, debug, info, warn or error")
	}
	if !strings.EqualFold(c.Log.Format, logging.FormatText) && !strings.EqualFold(c.Log.Format, logging.FormatJSON) {
		fail("log.format", c.Log.Format, ErrCodeInvalidEnum, "must be text or json")
	}

	if err := c.Tokenizer.Validate(); err != nil {
		fail("tokenizer", nil, ErrCodeInvalidValue, err.Error())
	}

	if _, err := c.BuildTheme(); err != nil {
		fail("theme", c.Theme.Name, ErrCodeInvalidValue, err.Error())
	}

	if c.History.MaxUndoEntries < 1 {
		fail("history.max_undo_entries", c.History.MaxUndoEntries, ErrCodeOutOfRange, "must be at least 1")
	}
	if c.History.MaxChanges < 1 {
		fail("history.max_changes", c.History.MaxChanges, ErrCodeOutOfRange, "must be at least 1")
	}

	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		fail("editor.tab_width", c.Editor.TabWidth, ErrCodeOutOfRange, "must be between 1 and 16")
	}
	if _, _, ok := c.LineNumbers(); !ok {
		fail("editor.line_numbers", c.Editor.LineNumbers, ErrCodeInvalidEnum, "must be off, absolute, relative or hybrid")
	}
	if _, err := c.WatchDebounce(); err != nil {
		fail("editor.watch_debounce", c.Editor.WatchDebounce, ErrCodeInvalidValue, err.Error())
	}

	return errors.Join(errs...)
}

// BuildTheme returns the configured theme with color overrides applied.
func (c *Config) BuildTheme() (*highlight.Theme, error) {
	theme, ok := highlight.ThemeByName(c.Theme.Name)
	if !ok {
		return nil, fmt.Errorf("unknown theme %q", c.Theme.Name)
	}
	if len(c.Theme.Colors) > 0 {
		if err := theme.Apply(c.Theme.Colors); err != nil {
			return nil, err
		}
	}
	return theme, nil
}

// LineNumbers reports whether line numbers are shown and in which mode.
func (c *Config) LineNumbers() (show bool, mode gutter.LineNumberMode, ok bool) {
	if strings.EqualFold(c.Editor.LineNumbers, "off") {
		return false, gutter.LineNumberAbsolute, true
	}
	mode, ok = gutter.ParseLineNumberMode(strings.ToLower(c.Editor.LineNumbers))
	return ok, mode, ok
}

// WatchDebounce returns the parsed debounce delay. Empty means zero.
func (c *Config) WatchDebounce() (time.Duration, error) {
	if c.Editor.WatchDebounce == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Editor.WatchDebounce)
	if err == nil && d < 0 {
		err = fmt.Errorf("negative duration %s", d)
	}
	return d, err
}

// Logger builds the logger described by the log section.
func (c *Config) Logger() *logrus.Logger {
	return logging.New(c.Log)
}

// NewTokenizer builds a tokenizer for the tokenizer section.
func (c *Config) NewTokenizer(log logrus.FieldLogger) (*tokenizer.Tokenizer, error) {
	return tokenizer.New(c.Tokenizer, tokenizer.WithLogger(log))
}

// EngineOptions returns the engine options this configuration implies.
func (c *Config) EngineOptions(log logrus.FieldLogger) ([]engine.Option, error) {
	tok, err := c.NewTokenizer(log)
	if err != nil {
		return nil, err
	}
	theme, err := c.BuildTheme()
	if err != nil {
		return nil, err
	}
	return []engine.Option{
		engine.WithLogger(log),
		engine.WithTokenizer(tok),
		engine.WithTheme(theme),
		engine.WithTabWidth(c.Editor.TabWidth),
		engine.WithMaxUndoEntries(c.History.MaxUndoEntries),
		engine.WithMaxChanges(c.History.MaxChanges),
	}, nil
}
