package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modforge/launchmeta/internal/branding"
	"github.com/modforge/launchmeta/internal/config"
	"github.com/modforge/launchmeta/internal/utils/logger"
	"github.com/modforge/launchmeta/internal/utils/security"
)

// Command-line flags that can override config file settings
var (
	configFile string = "" // Path to config file
	logLevel   string = "" // Empty means use config file value
)

func main() {
	// Initialize global configuration first
	configFilePath := configFile
	if configFilePath == "" {
		configFilePath = config.FindConfigFile()
	}

	globalConfig, err := config.LoadGlobalConfig(configFilePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Set global config singleton
	config.SetGlobal(globalConfig)

	// Setup logger with configured level and optional file tee
	_, cleanup, err := logger.InitWithConfig(logger.Config{
		Level:    globalConfig.Logging.Level,
		FilePath: globalConfig.Logging.File,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	// Install the outbound identification once; later attempts are rejected
	// by design, so a double-set only warrants a debug note.
	if err := branding.Set(branding.New(globalConfig.Branding.Name, globalConfig.Branding.Contact)); err != nil {
		logger.Logger().Debugf("branding: %v", err)
	}

	// Create and execute root command
	rootCmd := createRootCommand()
	security.AttachRecursive(rootCmd, security.DefaultLimits())

	// Handle log level override after flag parsing
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if logLevel != "" {
			globalConfig.Logging.Level = logLevel
			config.SetGlobal(globalConfig)
			logger.SetLogLevel(logLevel)
		}
	}

	log := logger.Logger()
	if configFilePath != "" {
		log.Infof("Using configuration from: %s", configFilePath)
	}
	outputDir, _ := config.OutputDir()
	log.Debugf("Config: workers=%d, output_dir=%s, mirrors=%d",
		config.Workers(), outputDir, len(config.Mirrors()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// createRootCommand creates and configures the root cobra command with all subcommands
func createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "launchmeta",
		Short: "Fetch and compose game launcher metadata",
		Long: `launchmeta retrieves version and manifest metadata for the game and its
mod loaders, verifies content integrity, and composes loader overlays with
base game versions into complete version documents.

Use 'launchmeta --help' to see available commands.
Use 'launchmeta <command> --help' for more information about a command.`,
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level (debug, info, warn, error)")

	// Add all subcommands
	rootCmd.AddCommand(createFetchCommand())
	rootCmd.AddCommand(createComposeCommand())
	rootCmd.AddCommand(createExportCommand())
	rootCmd.AddCommand(createValidateCommand())
	rootCmd.AddCommand(createConfigCommand())
	rootCmd.AddCommand(createVersionCommand())
	rootCmd.AddCommand(createInstallCompletionCommand())

	return rootCmd
}
