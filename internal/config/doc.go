// Package config holds the wikistorm configuration.
//
// Configuration is resolved in layers, later layers winning:
//
//  1. built-in defaults (defaults.toml, embedded)
//  2. the config file, TOML or YAML by extension
//  3. WIKISTORM_* environment variables
//
// Command line flags are applied on top by the CLI.
//
//	cfg, err := config.Load("wikistorm.toml")
//	if err != nil {
//		return err
//	}
//	eng := engine.New(cfg.EngineOptions(log)...)
package config
