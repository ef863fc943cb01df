// Package cli implements the asyncgen command line tool.
package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/b97tsk/asyncgen/internal/config"
	"github.com/b97tsk/asyncgen/internal/logging"
)

// Execute runs the root command and exits the process on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// app carries what every subcommand needs once the root command has parsed
// its persistent flags.
type app struct {
	configPath string
	debug      bool
	cfg        config.Config
	log        *zap.Logger
}

// NewRootCmd returns the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	a := &app{
		cfg: config.Default(),
		log: zap.NewNop(),
	}

	cmd := &cobra.Command{
		Use:          "asyncgen",
		Short:        "Collect values from asynchronous generators",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.log.Sync()
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(collectCmd(a))
	cmd.AddCommand(measureCmd(a))

	return cmd
}

func (a *app) setup() error {
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	log, err := logging.New(logging.Config{
		Level:       a.cfg.Log.Level,
		Development: a.cfg.Log.Development,
		Debug:       a.debug,
	})
	if err != nil {
		return err
	}
	a.log = log

	a.log.Debug("Configuration loaded",
		zap.String("path", a.configPath),
		zap.Int("count", a.cfg.Generator.Count),
		zap.Duration("delay", a.cfg.Generator.Delay))

	return nil
}
