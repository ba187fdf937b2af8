package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/retrobuddy/internal/config"
	"github.com/fakeyudi/retrobuddy/internal/logs"
	"github.com/fakeyudi/retrobuddy/internal/profile"
)

// cfg holds the merged configuration, populated in PersistentPreRunE.
var cfg config.Config

// activeProfile holds the loaded scorer profile.
var activeProfile *profile.Profile

// logger is opened in PersistentPreRunE and closed after the command runs.
var logger = logs.Discard()

var (
	flagLogLevel  string
	flagOutputDir string
)

var rootCmd = &cobra.Command{
	Use:          "retrobuddy",
	Short:        "Transcribe baseball play-by-play into Retrosheet event files",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// First run: offer the setup wizard, but only on an interactive terminal.
		if !profile.Exists() && term.IsTerminal(os.Stdin.Fd()) {
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), "  Welcome to retrobuddy! Looks like this is your first time.")
			if err := runSetup(cmd, true); err != nil {
				return err
			}
		}

		activeProfile = nil
		if profile.Exists() {
			p, err := profile.Load()
			if err != nil {
				return fmt.Errorf("loading profile: %w", err)
			}
			activeProfile = p
		}

		global, err := config.LoadGlobal()
		if err != nil {
			return fmt.Errorf("loading global config: %w", err)
		}
		project, err := config.LoadProject()
		if err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		cfg = config.Merge(global, project)

		// Profile values fill in config gaps.
		if activeProfile != nil && activeProfile.OutputDir != "" && cfg.OutputDir == config.Defaults().OutputDir {
			cfg.OutputDir = activeProfile.OutputDir
		}

		if cmd.Flags().Changed("output-dir") {
			cfg.OutputDir = flagOutputDir
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = flagLogLevel
		}

		l, err := logs.New(logs.Options{Path: cfg.LogFile, Level: cfg.LogLevel, Journal: cfg.Journal})
		if err != nil {
			return err
		}
		logger = l
		logger.Debug("command started", "command", cmd.Name(), "output_dir", cfg.OutputDir)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		err := logger.Close()
		logger = logs.Discard()
		return err
	},
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetConfig returns the merged configuration for use by subcommands.
func GetConfig() config.Config {
	return cfg
}

// GetProfile returns the active scorer profile, or nil.
func GetProfile() *profile.Profile {
	return activeProfile
}

func inputter() string {
	if activeProfile == nil {
		return ""
	}
	return activeProfile.Inputter
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVarP(&flagOutputDir, "output-dir", "o", "", "directory for edited games")
}
