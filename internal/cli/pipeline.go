package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/tripload/internal/columnar"
	"github.com/vvka-141/tripload/internal/tui"
	"github.com/vvka-141/tripload/pkg/tripload"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline <month>",
	Short: "Write the sample table with a month column to Parquet",
	Long: `Pipeline builds a small fixed table (day, num_passengers), adds a month
column holding <month> on every row and writes it to
<output-dir>/output_day_<month>.parquet, replacing any existing file.

Arguments:
  month    Value of the month column, also used in the file name

Examples:
  tripload pipeline 2021-01
  tripload pipeline 7 --output-dir ./out --compression zstd --show`,
	Args: RequireMonthArg,
	RunE: runPipeline,
}

type pipelineFlagValues struct {
	outputDir   string
	compression string
	show        bool
}

var pipelineFlags pipelineFlagValues

func init() {
	rootCmd.AddCommand(pipelineCmd)

	pipelineCmd.Flags().StringVar(&pipelineFlags.outputDir, "output-dir", tripload.DefaultOutputDir,
		"Directory the Parquet file is written to")
	pipelineCmd.Flags().StringVar(&pipelineFlags.compression, "compression", tripload.DefaultCompression,
		"Parquet compression: snappy|gzip|zstd|none")
	pipelineCmd.Flags().BoolVar(&pipelineFlags.show, "show", false,
		"Print the first rows of the written file")
	_ = pipelineCmd.RegisterFlagCompletionFunc("compression", completeCompressions)
	_ = pipelineCmd.RegisterFlagCompletionFunc("output-dir", completeDirectories)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger, err := newLogger(cmd, verbose)
	if err != nil {
		return err
	}

	month := args[0]
	logger.Verbose("Writing month %q to %s (%s)", month, pipelineFlags.outputDir, pipelineFlags.compression)

	path, err := columnar.Append(month, pipelineFlags.outputDir, columnar.Options{
		Compression: pipelineFlags.compression,
	})
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	if pipelineFlags.show {
		t, err := columnar.ReadParquet(context.Background(), path, nil)
		if err != nil {
			return fmt.Errorf("failed to read back %s: %w", path, err)
		}
		defer t.Release()

		preview, err := columnar.Preview(t, 5)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), preview)
	}

	if tui.IsInteractive() {
		fmt.Fprintln(os.Stderr, tui.SuccessStyle.Render(tui.SymbolCheck+" wrote "+path))
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
