package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/swdee/go-pageseg/config"
)

// app holds the state shared by the subcommands
type app struct {
	configPath string
	logLevel   string
	workers    int

	cfg *config.Config
	log *logrus.Logger
}

func main() {

	a := &app{}

	root := &cobra.Command{
		Use:           "pageseg",
		Short:         "Reconcile document layout regions with detector output",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level overriding the config file")
	root.PersistentFlags().IntVarP(&a.workers, "workers", "w", 0, "number of pages processed concurrently")

	root.AddCommand(a.classifyCmd())
	root.AddCommand(a.fromMasksCmd())
	root.AddCommand(a.projectCmd())
	root.AddCommand(a.inputCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration and creates the logger
func (a *app) setup() error {

	cfg, err := config.Parse(a.configPath)

	if err != nil {
		return err
	}

	if a.logLevel != "" {
		level, err := logrus.ParseLevel(a.logLevel)

		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}

		cfg.LogLevel = level
	}

	if a.workers > 0 {
		cfg.Workers = a.workers
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(cfg.LogLevel)

	a.cfg = cfg
	a.log = log

	return nil
}
