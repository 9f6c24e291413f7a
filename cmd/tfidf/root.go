package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cognicore/vectorize/internal/corpus"
	"github.com/cognicore/vectorize/pkg/vectorize"
	"github.com/cognicore/vectorize/pkg/vectorize/config"
	"github.com/cognicore/vectorize/pkg/vectorize/store"
	"github.com/cognicore/vectorize/pkg/vectorize/store/memstore"
	"github.com/cognicore/vectorize/pkg/vectorize/store/sqlite"
)

type commandContext struct {
	configPath string
	lowercase  bool
	workers    int
	format     string
	logLevel   string
	dbPath     string

	cfg    *config.Config
	logger *logrus.Logger
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "tfidf",
		Short:         "Turn a corpus of short documents into count and TF-IDF matrices",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.ensureConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.configPath, "config", "c", "", "Configuration file path (.yaml, .yml or .toml)")
	flags.BoolVar(&ctx.lowercase, "lowercase", true, "Lower-case documents before tokenizing")
	flags.IntVar(&ctx.workers, "workers", 1, "Goroutines used to count documents")
	flags.StringVar(&ctx.format, "format", config.FormatAuto, "Output format: auto, table or json")
	flags.StringVar(&ctx.logLevel, "log-level", "info", "Log level")
	flags.StringVar(&ctx.dbPath, "db", "", "SQLite database for saved runs")

	rootCmd.AddCommand(newVocabCommand(ctx))
	rootCmd.AddCommand(newCountCommand(ctx))
	rootCmd.AddCommand(newIDFCommand(ctx))
	rootCmd.AddCommand(newTransformCommand(ctx))
	rootCmd.AddCommand(newSimilarCommand(ctx))
	rootCmd.AddCommand(newRunsCommand(ctx))

	return rootCmd
}

// ensureConfig loads the config file, then applies explicitly set flags.
func (c *commandContext) ensureConfig(cmd *cobra.Command) error {
	cfg := config.Default()
	if c.configPath != "" {
		loaded, err := config.Load(c.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("lowercase") {
		cfg.Lowercase = c.lowercase
	}
	if flags.Changed("workers") {
		cfg.Workers = c.workers
	}
	if flags.Changed("format") {
		cfg.Format = c.format
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = c.logLevel
	}
	if flags.Changed("db") {
		cfg.Store.Driver = config.DriverSQLite
		cfg.Store.Path = c.dbPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetLevel(level)

	c.cfg = cfg
	c.logger = logger
	return nil
}

func (c *commandContext) log(component string) *logrus.Entry {
	return c.logger.WithField("component", component)
}

func (c *commandContext) pipeline() *vectorize.Pipeline {
	return vectorize.New(vectorize.Options{
		Lowercase: c.cfg.Lowercase,
		Workers:   c.cfg.Workers,
		Logger:    c.logger.WithField("service", "tfidf"),
	})
}

func (c *commandContext) loadCorpus(path string) ([]corpus.Document, error) {
	docs, err := corpus.NewLoader(c.logger.WithField("service", "tfidf")).Load(path)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	c.log("cli").WithFields(logrus.Fields{
		"path":      path,
		"documents": len(docs),
	}).Debug("loaded corpus")
	return docs, nil
}

func (c *commandContext) openStore(ctx context.Context) (store.Store, error) {
	switch c.cfg.Store.Driver {
	case config.DriverMemory:
		return memstore.New(), nil
	default:
		st, err := sqlite.OpenSQLite(ctx, c.cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("open store %s: %w", c.cfg.Store.Path, err)
		}
		return st, nil
	}
}
