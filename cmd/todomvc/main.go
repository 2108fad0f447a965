package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todomvc/internal/log"
	"github.com/sandeepkv93/todomvc/internal/model"
	"github.com/sandeepkv93/todomvc/internal/update"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logFile    string
	logLevel   string
	filterFlag string

	rootCmd = &cobra.Command{
		Use:           "todomvc",
		Short:         "A terminal TodoMVC",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
)

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file (default: discard)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "trace, debug, info, warn or error")
	rootCmd.Flags().StringVar(&filterFlag, "filter", "", "initial filter: all, active or completed")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "todomvc failed: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		log.Setup(f, cfg.LogLevel, cfg.LogFormat)
	}
	log.Debug().Msg("log initialized")

	p := update.NewProgram(cfg)
	defer p.Close()
	if _, err := tea.NewProgram(p).Run(); err != nil {
		log.Error().Err(err).Msg("program exited with error")
		return err
	}
	log.Info().Msg("program stopped")
	return nil
}

func loadConfig(cmd *cobra.Command) (update.RuntimeConfig, error) {
	cfg := update.DefaultRuntimeConfig()
	if configPath != "" {
		loaded, err := update.LoadRuntimeConfigFile(configPath, cfg)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	cfg = update.RuntimeConfigFromEnv(cfg)
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = logFile
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("filter") {
		f, err := model.ParseFilter(filterFlag)
		if err != nil {
			return cfg, err
		}
		cfg.Filter = f
	}
	return cfg, cfg.Validate()
}
