package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/spotskip/spotskip/pkg/spotskip/config"
	"github.com/spotskip/spotskip/pkg/spotskip/logging"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "spotskip [path]",
		Short: "Keep Spotlight out of dependency and build directories",
		Long: `Spotskip scans a directory tree for development-dependency folders
(node_modules, target, vendor, ...) and registers them as exclusions in
the Spotlight volume configuration, so the indexer skips them.

Editing the configuration requires sudo. A timestamped backup of the
plist is written before any change, and Spotlight is restarted afterwards
so the change takes effect immediately.

Examples:
  sudo spotskip                      # Scan the current directory
  sudo spotskip ~/repos              # Scan a specific directory
  sudo spotskip -a .idea -a .vscode  # Ignore extra directory names
  spotskip -n ~/repos                # Dry run, no sudo needed
  spotskip list                      # Show current exclusions`,
		Args:              cobra.MaximumNArgs(1),
		RunE:              runIgnore,
		PersistentPreRunE: initLogging,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/spotskip/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (pretty, plain, json, yaml)")
	rootCmd.PersistentFlags().String("store", "", "volume configuration plist to edit")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")

	// Flags for the scan-and-exclude run itself
	rootCmd.Flags().StringSliceP("also-ignore", "a", nil, "additional directory names to ignore (can be specified multiple times)")
	rootCmd.Flags().Bool("skip-defaults", false, "skip the built-in ignore names")
	rootCmd.Flags().BoolP("dry-run", "n", false, "show what would be excluded without making changes")
	rootCmd.Flags().String("backup-dir", "", "directory for plist backups (default: Desktop)")

	// Bind flags to viper
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("store_path", rootCmd.PersistentFlags().Lookup("store"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("also_ignore", rootCmd.Flags().Lookup("also-ignore"))
	_ = viper.BindPFlag("skip_defaults", rootCmd.Flags().Lookup("skip-defaults"))
	_ = viper.BindPFlag("dry_run", rootCmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("backup_dir", rootCmd.Flags().Lookup("backup-dir"))
}

// initConfig reads in config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		if dir, err := config.ConfigDir(); err == nil {
			viper.AddConfigPath(dir)
		}
	}

	viper.SetEnvPrefix("SPOTSKIP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("ignore_names", config.DefaultIgnoreNames)
	viper.SetDefault("store_path", config.DefaultStorePath)
	viper.SetDefault("service", config.DefaultService)
	viper.SetDefault("output", config.DefaultOutput)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.path", "")

	// Read config file (ignore if not found)
	_ = viper.ReadInConfig()
}

// initLogging initializes the logging system from the loaded config.
// Verbose runs mirror debug logs to stderr.
func initLogging(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logCfg := logging.Config{
		Level: cfg.Logging.Level,
		Path:  cfg.Logging.Path,
	}
	if getVerbose() {
		logCfg.Level = "debug"
		logCfg.ConsoleLevel = "debug"
	}
	if err := logging.Init(logCfg); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// getVerbose returns true if verbose mode is enabled.
func getVerbose() bool {
	return viper.GetBool("verbose")
}

// getQuiet returns true if quiet mode is enabled.
func getQuiet() bool {
	return viper.GetBool("quiet")
}

// printVerbose prints a message if verbose mode is enabled.
func printVerbose(format string, args ...interface{}) {
	if getVerbose() && !getQuiet() {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// printInfo prints a message if quiet mode is not enabled.
func printInfo(format string, args ...interface{}) {
	if !getQuiet() {
		fmt.Printf(format+"\n", args...)
	}
}

// printWarning prints a warning message to stderr.
func printWarning(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}
