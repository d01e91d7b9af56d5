package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/tripload/internal/logging"
	"github.com/vvka-141/tripload/pkg/tripload"
)

var rootCmd = &cobra.Command{
	Use:   "tripload",
	Short: "Load NYC taxi trip releases into PostgreSQL",
	Long: `tripload downloads a monthly taxi trip release (gzip CSV) and copies it into a
PostgreSQL table in fixed-size chunks. The first chunk replaces the table's
schema, every chunk is appended with COPY.

It also ships a small columnar pipeline that tags a fixed table with a month
value and writes it as Parquet.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  11 - Database connection failed
  12 - Source unavailable (download or file read failed)
  13 - Schema mismatch or unparseable field
  14 - Database failed during the load`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is normal.
		_ = godotenv.Load()
	},
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for tripload")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("log-format", logging.FormatText,
		"Log output format: text|json|console")
	_ = rootCmd.RegisterFlagCompletionFunc("log-format", completeLogFormats)
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

// newLogger builds the logger selected by --log-format for a command.
func newLogger(cmd *cobra.Command, verbose bool) (tripload.Logger, error) {
	format, err := cmd.Flags().GetString("log-format")
	if err != nil {
		format = logging.FormatText
	}
	return logging.New(format, cmd.Name(), verbose)
}
