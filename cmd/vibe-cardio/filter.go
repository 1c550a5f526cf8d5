package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vibe-cardio/internal/pipeline"
	"github.com/inodb/vibe-cardio/internal/record"
	"github.com/inodb/vibe-cardio/internal/sink"
)

func newFilterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter [flags] <records.tsv>",
		Short: "Filter annotated variant records into the cardio table",
		Long: `Read tab-separated annotation records (OakVar column keys such as
base__hugo, clinvar__sig, sift__prediction) and store the variants that pass
the cardiac gene and pathogenicity filters. The table is cleared at the start
of every run. Use '-' to read from stdin; gzipped input is detected.`,
		Example: `  vibe-cardio filter -o results -n sample1 sample1.variant.tsv
  vibe-cardio filter --genes my_genes.txt --format duckdb sample1.tsv.gz
  zcat sample1.tsv.gz | vibe-cardio filter -n sample1 -`,
		Args: exactArgs(1, "input file argument required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringP("output-dir", "o", ".", "Directory for the result store")
	flags.StringP("run-name", "n", "", "Run name used in the result file name (default: input base name)")
	flags.String("genes", "", "Gene list file, one symbol per line (default: bundled cardiac genes)")
	flags.String("format", "sqlite", "Result store format: sqlite, duckdb")

	_ = viper.BindPFlag(keyOutputDir, flags.Lookup("output-dir"))
	_ = viper.BindPFlag(keyRunName, flags.Lookup("run-name"))
	_ = viper.BindPFlag(keyGenes, flags.Lookup("genes"))
	_ = viper.BindPFlag(keyFormat, flags.Lookup("format"))

	return cmd
}

func runFilter(inputPath string) error {
	format, err := sink.ParseFormat(viper.GetString(keyFormat))
	if err != nil {
		return &usageError{err}
	}

	runName := viper.GetString(keyRunName)
	if runName == "" {
		runName = defaultRunName(inputPath)
	}
	if runName == "" {
		return &usageError{errors.New("--run-name is required when reading from stdin")}
	}

	logger, err := newLogger(viper.GetBool(keyVerbose))
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	parser, err := record.NewParser(inputPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w (check that the file path is correct)", err)
		}
		return err
	}
	defer parser.Close()

	session, err := pipeline.Open(pipeline.Config{
		OutputDir: viper.GetString(keyOutputDir),
		RunName:   runName,
		GenesPath: viper.GetString(keyGenes),
		Format:    format,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	if err := pipeline.Process(parser, session); err != nil {
		return err
	}

	stats := session.Stats()
	logger.Info("filter complete",
		zap.String("input", inputPath),
		zap.String("output", session.Path()),
		zap.Int("rows", stats.Written))
	return nil
}

// defaultRunName derives a run name from the input file name by stripping
// directory and extensions (sample1.variant.tsv.gz -> sample1).
func defaultRunName(inputPath string) string {
	if inputPath == "-" {
		return ""
	}
	base := filepath.Base(inputPath)
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}
