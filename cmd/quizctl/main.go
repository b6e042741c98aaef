package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"quiz-master/internal/app"
	"quiz-master/internal/config"
	"quiz-master/internal/i18n"
	"quiz-master/internal/logger"

	"github.com/spf13/cobra"
)

// cli is the state shared by every subcommand after PersistentPreRunE.
type cli struct {
	cfg *config.Config
	tr  *i18n.Translator
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:          "quizctl",
		Short:        "Play and manage quizzes from the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = logger.Sync()
		},
	}
	f := root.PersistentFlags()
	f.String("config", "", "path to config.yaml (default: ./config.yaml, ./configs/config.yaml)")
	f.StringP("lang", "l", "en", "message language (en, ko)")
	f.String("log-level", "", "log level (debug, info, warn, error); overrides logger.level")

	root.AddCommand(listCmd(c), playCmd(c), seedCmd(c), migrateCmd(c))
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	var err error
	if path != "" {
		c.cfg, err = config.LoadConfigFile(path)
	} else {
		c.cfg, err = config.LoadConfig()
	}
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		c.cfg.Logger.Level, _ = cmd.Flags().GetString("log-level")
	}
	if err := logger.InitializeTo(c.cfg.Logger, os.Stderr); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	lang, _ := cmd.Flags().GetString("lang")
	c.tr, err = i18n.New(lang)
	return err
}

// components opens storage for commands that need it. The caller must Close it.
func (c *cli) components(ctx context.Context) (*app.Components, error) {
	return app.Bootstrap(ctx, c.cfg)
}
