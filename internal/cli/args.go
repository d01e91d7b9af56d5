package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireMonthArg validates that exactly one month argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireMonthArg(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <month>

Usage: %s

Example:
  %s 2021-01`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}
