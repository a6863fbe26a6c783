package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"algoviz/internal/harness"
)

// validateCmd runs the static pre-flight checks on a submission
var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a submission without executing it",
	Long: `Runs the same static checks the sandbox applies before execution:
non-empty source, balanced brackets, and at least one function declaration.

Exits non-zero when the submission would be rejected.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read submission: %w", err)
		}
		if err := harness.ValidateCode(string(source)); err != nil {
			return fmt.Errorf("invalid submission: %s", err)
		}
		fmt.Println("OK")
		return nil
	},
}
