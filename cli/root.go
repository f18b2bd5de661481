// Package cli provides the command-line interface for hrslides.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hrslides/app"
	"hrslides/config"
	"hrslides/i18n"
	"hrslides/logger"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// env is what PersistentPreRunE prepares for the subcommands.
type env struct {
	cfgFile string
	cfg     *config.Config
	log     *logger.Logger
	app     *app.App
}

func (e *env) close() {
	if e.app != nil {
		e.app.Close()
		e.app = nil
	}
	if e.log != nil {
		e.log.Close()
		e.log = nil
	}
}

// newRoot creates the root command and the cleanup to run after Execute.
func newRoot() (*cobra.Command, func()) {
	e := &env{}

	rootCmd := &cobra.Command{
		Use:   "hrslides",
		Short: "hrslides - HR PowerPoint decks from plans",
		Long: `hrslides builds PowerPoint decks for HR presentations from a JSON or YAML
plan. Each slide of the plan names one of the built-in layouts and carries its
content; the design system (colors, fonts, margins) is fixed.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			return e.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&e.cfgFile, "config", "", "config file (default: ./hrslides.yaml)")
	rootCmd.PersistentFlags().String("lang", "", "language of generated labels and messages (en, fr)")
	rootCmd.PersistentFlags().String("log-dir", "", "directory for log files")
	rootCmd.PersistentFlags().String("out-dir", "", "directory for built decks")
	rootCmd.PersistentFlags().String("history-db", "", "build history database (file path or MySQL DSN)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "echo log lines to stderr")

	rootCmd.AddCommand(newBuildCmd(e))
	rootCmd.AddCommand(newInspectCmd(e))
	rootCmd.AddCommand(newPreviewCmd(e))
	rootCmd.AddCommand(newHistoryCmd(e))
	rootCmd.AddCommand(newLayoutsCmd())
	rootCmd.AddCommand(newInstallCmd(e))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd, e.close
}

// setup loads the configuration, then starts logging and the services.
func (e *env) setup(cmd *cobra.Command) error {
	loader := config.NewLoader("")
	cfg, err := loader.Load(e.cfgFile, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	e.cfg = cfg
	i18n.SyncLanguageFromConfig(cfg)

	e.log = logger.NewLogger()
	if cfg.Verbose {
		e.log.SetEcho(cmd.ErrOrStderr())
	}
	if cfg.LogDir != "" {
		if err := e.log.Init(cfg.LogDir); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: logging disabled: %v\n", err)
		}
	}
	if used := loader.FileUsed(); used != "" {
		e.log.Logf("Using config file: %s", used)
	}

	a, err := app.New(cmd.Context(), cfg, e.log.Log)
	if err != nil {
		return err
	}
	if err := a.Start(); err != nil {
		a.Close()
		return err
	}
	e.app = a
	return nil
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	rootCmd, cleanup := newRoot()
	defer cleanup()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
