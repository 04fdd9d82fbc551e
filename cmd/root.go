package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kilianp07/vrptw/app"
	"github.com/kilianp07/vrptw/config"
	"github.com/kilianp07/vrptw/infra/logger"
)

var (
	cfgPath      string
	instancePath string
)

var rootCmd = &cobra.Command{
	Use:               "vrptw",
	Short:             "Solve vehicle routing problems with time windows",
	SilenceUsage:      true,
	PersistentPreRunE: loadEnv,
	RunE:              run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file")
	rootCmd.PersistentFlags().StringVarP(&instancePath, "instance", "i", "", "instance file, overrides instance.path")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// loadEnv reads an optional .env file so K_ overrides can live next to the
// binary.
func loadEnv(*cobra.Command, []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if instancePath != "" {
		cfg.Instance.Path = instancePath
		cfg.Instance.Format = ""
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return svc.Run(ctx)
}
