// Package config loads runtime configuration for the todo binary. It
// exposes a Default() baseline, file loading by extension (TOML, YAML or
// JSON), an environment overlay of TODO_* variables, and Validate.
//
// Example:
//
//	cfg := config.Default()
//	if path := config.FindUserFile(); path != "" {
//	    loaded, err := config.Load(path)
//	    if err != nil {
//	        return err
//	    }
//	    cfg = loaded
//	}
//	config.FromEnv(&cfg)
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
