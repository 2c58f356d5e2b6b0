package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/metaphox/pas-lang/config"
	"github.com/metaphox/pas-lang/render"
)

var (
	cfgFile string
	verbose bool
	noColor bool

	settings = config.Default()
	logger   = slog.New(slog.NewTextHandler(io.Discard, nil))
)

var rootCmd = &cobra.Command{
	Use:   "pas",
	Short: "Interpreter for a small Pascal subset",
	Long: `pas lexes, parses and evaluates programs written in a small Pascal
subset: a PROGRAM header, VAR declarations of INTEGER and REAL
variables, and a BEGIN ... END. block of assignments.

Commands:
  run     - evaluate a program and print the final variable bindings
  parse   - print the syntax tree
  tokens  - print the token stream
  calc    - evaluate a single arithmetic expression`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the command tree and prints any failure to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), render.Error(err, useColor()))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file, TOML or YAML (default: $PAS_CONFIG or ./pas.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")
}

// setup loads the configuration and builds the logger shared by every command.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		settings, err = config.Load(cfgFile)
	} else {
		settings, err = config.LoadFromEnv()
	}
	if err != nil {
		settings = config.Default()
		return fmt.Errorf("load config: %w", err)
	}
	logger = newLogger(cmd.ErrOrStderr(), settings, verbose)
	logger.Debug("command start", "command", cmd.Name(), "args", args)
	return nil
}

// newLogger builds a text or JSON slog logger tagged with a fresh run_id.
func newLogger(w io.Writer, cfg *config.Config, debug bool) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelWarn
	}
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("run_id", uuid.NewString())
}

func useColor() bool {
	return !noColor && settings.UseColor()
}

// readSource returns the contents of path, or of stdin when path is "-".
func readSource(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	logger.Debug("read source", "path", path, "bytes", len(data))
	return string(data), nil
}
