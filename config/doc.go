// Package config provides configuration loading for crosstalk buses.
//
// Configuration can come from TOML or YAML files, with environment
// variable overrides applied on top. A Watcher can monitor the file and
// publish reload events on the bus it configures.
//
// Typical usage:
//
//	cfg, err := config.Load("crosstalk.toml")
//	if err != nil {
//	    return err
//	}
//	bus := config.NewBus(cfg)
package config
