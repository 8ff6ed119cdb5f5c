package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"library-catalog/library"
)

var (
	configFile  string
	catalogFile string
	scriptFile  string
	verbose     bool
	version     = "dev"
)

var rootCmd = &cobra.Command{
	Use:     "libsim",
	Short:   "In-memory library circulation simulator",
	Version: version,
	Long: `libsim runs a library of items and patrons in memory and lets you check
items out, return them, place holds, pay fines and advance the clock.
Commands are read from stdin, or from a script file with --script.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "libsim.toml", "Path to config file")
	rootCmd.Flags().StringVar(&catalogFile, "catalog", "", "Catalog file to seed the library with (overrides the config file)")
	rootCmd.Flags().StringVarP(&scriptFile, "script", "s", "", "Read commands from a file instead of stdin")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every circulation transition to stderr")
}

// SetVersion sets the version string reported by --version.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func run(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr(), verbose)

	cfg, err := library.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if catalogFile != "" {
		cfg.Catalog = catalogFile
	}
	logger.Debug("configuration loaded", "fine_per_day", cfg.FinePerDay, "catalog", cfg.Catalog)

	mgr, err := library.NewLibraryManager(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to start library: %w", err)
	}
	defer mgr.Close()

	in := cmd.InOrStdin()
	interactive := false
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		in = f
	} else if f, ok := in.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}

	return NewShell(mgr, cmd.OutOrStdout(), interactive).Run(in)
}
