package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/joshuapare/regkit/cmd/regctl/logger"
	"github.com/joshuapare/regkit/registry"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	configFile string

	// reg is the registry every command works against; set before RunE.
	reg *registry.Registry

	closeLog = func() error { return nil }
)

// noRegistry marks commands that run without opening a registry.
const noRegistry = "regctl/no-registry"

var rootCmd = &cobra.Command{
	Use:   "regctl",
	Short: "Read and modify the Windows registry",
	Long: `regctl reads and writes registry keys and values, and converts
between the registry and regedit .reg files.

With --engine memory the registry lives in the process only: use --seed to
load a .reg file into it before the command runs.`,
	Version:            "0.1.0",
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error { return closeLog() },
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ~/.regctl.yaml)")
	addConfigFlags(rootCmd.PersistentFlags())
}

// addConfigFlags registers the flags that override config file keys.
func addConfigFlags(fs *pflag.FlagSet) {
	fs.String("width", "wide", "Character width: wide or narrow")
	fs.String("engine", defaultEngine(), "Registry engine: host or memory")
	fs.String("seed", "", ".reg file imported into the memory engine at startup")
	fs.Bool("log", false, "Write a debug log under ~/.regctl/logs")
}

func setup(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[noRegistry] != "" {
		return nil
	}

	v, err := loadConfig(configFile, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	s, err := resolveSettings(v)
	if err != nil {
		return err
	}
	if closeLog, err = logger.Init(s.log); err != nil {
		return fmt.Errorf("init log: %w", err)
	}
	if v.ConfigFileUsed() != "" {
		printVerbose("Using config: %s\n", v.ConfigFileUsed())
	}

	reg, err = newRegistry(s, logger.L)
	return err
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
