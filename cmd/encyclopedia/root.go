package main

import (
	"encyclopedia/pkg/config"
	"encyclopedia/pkg/core"
	"encyclopedia/pkg/entry"
	"encyclopedia/pkg/markup"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	configPath string
	entriesDir string
	markup     string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "encyclopedia",
		Short:         "A personal wiki of Markdown entries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&opts.entriesDir, "entries", "", "directory holding the entries (overrides config)")
	root.PersistentFlags().StringVar(&opts.markup, "markup", "", "markup renderer: gomarkdown or goldmark (overrides config)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (overrides config)")

	root.AddCommand(newServeCmd(opts), newImportCmd(opts), newListCmd(opts))
	return root
}

// load resolves the config file plus any flag overrides.
func (o *options) load() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.entriesDir != "" {
		cfg.EntriesDir = o.entriesDir
	}
	if o.markup != "" {
		cfg.Markup = o.markup
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zcfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return logger, nil
}

func newCore(cfg *config.Config) (*core.CoreImpl, error) {
	store, err := entry.Connect(cfg.EntriesDir)
	if err != nil {
		return nil, errors.Wrap(err, "connect to entry store")
	}
	renderer, err := markup.New(cfg.Markup)
	if err != nil {
		return nil, err
	}
	return core.New(store, renderer), nil
}
