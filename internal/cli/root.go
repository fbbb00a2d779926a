// Package cli implements the wikistorm command line.
//
// Every subcommand works on one wikitext file. Global flags select the
// configuration file and logging; they can also be given as WIKISTORM_*
// environment variables.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dshills/wikistorm/internal/config"
	"github.com/dshills/wikistorm/internal/engine"
	"github.com/dshills/wikistorm/internal/logging"
)

// Version information, set by main.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// runtime is what every subcommand needs after the global flags are
// resolved.
type runtime struct {
	v   *viper.Viper
	cfg *config.Config
	log *logrus.Logger

	out    io.Writer
	errOut io.Writer
}

// load resolves the configuration and logger. Flags and environment set
// through viper win over the configuration file.
func (rt *runtime) load() error {
	cfg, err := config.Load(rt.v.GetString("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if level := rt.v.GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if format := rt.v.GetString("log-format"); format != "" {
		cfg.Log.Format = format
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg.Log.Output = rt.errOut

	rt.cfg = cfg
	rt.log = cfg.Logger()
	rt.log.WithFields(logrus.Fields{
		"config": rt.v.GetString("config"),
		"level":  cfg.Log.Level,
	}).Debug("configuration loaded")
	return nil
}

// openEngine reads path into an engine built from the configuration.
func (rt *runtime) openEngine(path string) (*engine.Engine, error) {
	opts, err := rt.cfg.EngineOptions(rt.log)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	opts = append(opts, engine.WithDetectedLineEnding())
	eng, err := engine.NewFromReader(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return eng, nil
}

// NewCmdRoot creates the root command writing to stdout and stderr.
func NewCmdRoot() *cobra.Command {
	return newCmdRoot(os.Stdout, os.Stderr)
}

func newCmdRoot(out, errOut io.Writer) *cobra.Command {
	rt := &runtime{v: viper.New(), out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:   "wikistorm",
		Short: "Highlight wikitext and edit its formatting",
		Long: `wikistorm tokenizes wikitext the way the MediaWiki source editor
highlights it and applies selection-aware formatting commands.

Locations are written LINE:COL, both starting at 1. Columns count bytes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.load()
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetVersionTemplate("wikistorm {{.Version}} (commit: " + Commit + ", built: " + Date + ")\n")

	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (toml or yaml)")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error")
	flags.String("log-format", "", "log format: "+logging.FormatText+" or "+logging.FormatJSON)

	rt.v.SetEnvPrefix("WIKISTORM")
	rt.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	rt.v.AutomaticEnv()
	for _, name := range []string{"config", "log-level", "log-format"} {
		_ = rt.v.BindPFlag(name, flags.Lookup(name))
	}

	cmd.AddCommand(newCmdTokens(rt))
	cmd.AddCommand(newCmdItems(rt))
	cmd.AddCommand(newCmdHighlight(rt))
	cmd.AddCommand(newCmdClear(rt))
	cmd.AddCommand(newCmdSplit(rt))
	cmd.AddCommand(newCmdView(rt))

	return cmd
}
