// Package main provides the vibe-cardio command-line tool.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Config keys shared by flags, the config file and VIBE_CARDIO_* variables.
const (
	keyOutputDir = "output_dir"
	keyRunName   = "run_name"
	keyGenes     = "genes"
	keyFormat    = "format"
	keyVerbose   = "verbose"
)

const configName = ".vibe-cardio"

// usageError marks errors caused by invalid invocation.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// exactArgs is cobra.ExactArgs reporting a usage error with msg.
func exactArgs(n int, msg string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return &usageError{errors.New(msg)}
		}
		return nil
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		var uerr *usageError
		if errors.As(err, &uerr) {
			return ExitUsage
		}
		return ExitError
	}
	return ExitSuccess
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vibe-cardio",
		Short: "Filter annotated variants in cardiac genes into a report table",
		Long: `vibe-cardio selects variants in a curated list of cardiac genes that are
flagged pathogenic by ClinVar, damaging by SIFT, or scored by CardioBoost,
and stores them in the "cardio" table of <output-dir>/<run-name>_longevity.sqlite.`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &usageError{err}
	})

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log every stored variant")
	_ = viper.BindPFlag(keyVerbose, cmd.PersistentFlags().Lookup("verbose"))

	cmd.AddCommand(newFilterCmd())
	cmd.AddCommand(newGenesCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// initConfig loads ~/.vibe-cardio.yaml if present and enables VIBE_CARDIO_* overrides.
func initConfig() error {
	viper.SetEnvPrefix("VIBE_CARDIO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	path, err := configPath()
	if err != nil {
		return nil
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(viper.ConfigFileUsed()); errors.Is(statErr, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", viper.ConfigFileUsed(), err)
	}
	return nil
}

// newLogger builds a console logger on stderr. Verbose enables debug output.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
