package cmd

import (
	"github.com/urfave/cli"

	"github.com/achilleasa/prism/config"
	"github.com/achilleasa/prism/log"
)

var logger = log.New("prism")

// Load the app config and set up logging. Command line flags take
// precedence over the config file.
func setup(ctx *cli.Context) (*config.Config, error) {
	overrides := config.Overrides{
		Width:     ctx.Int("width"),
		Height:    ctx.Int("height"),
		Workers:   ctx.Int("workers"),
		Scheduler: ctx.String("scheduler"),
		Gamma:     ctx.Float64("gamma"),
		Out:       ctx.String("out"),
		LogFile:   ctx.GlobalString("log-file"),
	}

	if ctx.GlobalBool("v") {
		overrides.LogLevel = "info"
	}

	if ctx.GlobalBool("vv") {
		overrides.LogLevel = "debug"
	}

	cfg, err := config.Load(ctx.GlobalString("config"), overrides)
	if err != nil {
		return nil, err
	}

	if err = setupLogging(cfg.Logging); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogging(cfg config.LoggingConfig) error {
	if cfg.File != "" {
		log.SetFileSink(cfg.File, log.Rotation{
			MaxSizeMB:  cfg.Rotation.MaxSizeMB,
			MaxBackups: cfg.Rotation.MaxBackups,
			MaxAgeDays: cfg.Rotation.MaxAgeDays,
			Compress:   cfg.Rotation.Compress,
		})
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	return nil
}
