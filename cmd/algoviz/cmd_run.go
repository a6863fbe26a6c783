package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"algoviz/internal/harness"
	"algoviz/internal/step"
)

var (
	runKind       string
	runDifficulty string
	runTestID     string
	runJSON       bool
)

// runCmd executes a submission against scenario tests
var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a submission against its scenario tests",
	Long: `Reads a Go source file and executes it in the sandbox against the
scenarios selected by --kind (and optionally --difficulty or --test).

Example:
  algoviz run solution.go --kind stack
  algoviz run solution.go --kind binaryTree --difficulty hard
  algoviz run solution.go --test stack-sum-top-two --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmission,
}

func init() {
	runCmd.Flags().StringVar(&runKind, "kind", "", "structure kind to test against")
	runCmd.Flags().StringVar(&runDifficulty, "difficulty", "", "restrict to one difficulty level")
	runCmd.Flags().StringVar(&runTestID, "test", "", "run a single scenario by ID")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "emit results as JSON, steps included")
}

func runSubmission(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read submission: %w", err)
	}

	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	o := harness.New(cat, sandboxConfig())

	var results []harness.TestResult
	switch {
	case runTestID != "":
		sc, ok := o.Scenario(runTestID)
		if !ok {
			return fmt.Errorf("unknown scenario %q", runTestID)
		}
		results = []harness.TestResult{o.RunTest(cmd.Context(), string(source), sc)}
	case runKind != "":
		kind := step.Target(runKind)
		if !kind.Valid() {
			return fmt.Errorf("unknown structure kind %q", runKind)
		}
		if runDifficulty != "" {
			results = o.RunTestsByDifficulty(cmd.Context(), string(source), kind, runDifficulty)
		} else {
			results = o.RunTests(cmd.Context(), string(source), kind)
		}
	default:
		return fmt.Errorf("either --kind or --test is required")
	}

	logger.Info("run finished", zap.Int("scenarios", len(results)))

	if runJSON {
		return json.NewEncoder(os.Stdout).Encode(results)
	}
	return printResults(results)
}

func printResults(results []harness.TestResult) error {
	if len(results) == 0 {
		fmt.Println("No scenarios matched.")
		return nil
	}

	failed := 0
	for _, r := range results {
		status := "PASS"
		if !r.Passed {
			status = "FAIL"
			failed++
		}
		fmt.Printf("%-4s %-30s %4d steps  %s\n", status, r.TestID, len(r.Steps), r.Elapsed)
		if r.Error != "" {
			fmt.Printf("     %s\n", r.Error)
		}
		for _, rec := range r.Console {
			fmt.Printf("     console[%s]: %v\n", rec.Level, rec.Args)
		}
	}
	fmt.Printf("\n%d/%d passed\n", len(results)-failed, len(results))

	if failed > 0 {
		return fmt.Errorf("%d scenario(s) failed", failed)
	}
	return nil
}
