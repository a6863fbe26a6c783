package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"algoviz/internal/harness"
)

var referenceJSON bool

// referenceCmd executes a scenario's bundled reference solution
var referenceCmd = &cobra.Command{
	Use:   "reference [scenario-id]",
	Short: "Run a scenario's reference solution",
	Long: `Executes the reference solution bundled with a scenario through the
same sandbox learner code runs in, and reports its result. Useful for
checking that a suite's references actually pass their own scenarios.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		o := harness.New(cat, sandboxConfig())

		sc, ok := o.Scenario(args[0])
		if !ok {
			return fmt.Errorf("unknown scenario %q", args[0])
		}
		res, err := o.RunReference(cmd.Context(), sc)
		if err != nil {
			return err
		}

		if referenceJSON {
			return json.NewEncoder(os.Stdout).Encode(res)
		}
		return printResults([]harness.TestResult{res})
	},
}

func init() {
	referenceCmd.Flags().BoolVar(&referenceJSON, "json", false, "emit the result as JSON")
}
