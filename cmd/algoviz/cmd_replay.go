package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"algoviz/internal/harness"
)

// replayCmd replays a scenario's expected-operation script
var replayCmd = &cobra.Command{
	Use:   "replay [scenario-id]",
	Short: "Replay a scenario's expected operation script",
	Long: `Drives a fresh instrumented structure through the scenario's
expected-operation script and prints the resulting step stream as JSON.
This is the stream playback shows in expected-output mode.`,
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
		if len(sc.ExpectedScript) == 0 {
			return fmt.Errorf("scenario %q has no expected script", args[0])
		}

		steps, err := o.ReplayExpected(sc)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(steps)
	},
}
