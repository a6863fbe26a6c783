package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"algoviz/internal/catalog"
	"algoviz/internal/step"
)

var (
	scenariosKind       string
	scenariosDifficulty string
	scenariosJSON       bool
)

// scenariosCmd lists the loaded scenario catalog
var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List available scenarios",
	Long: `Lists the scenarios in the active catalog (embedded defaults, or the
directory given with --scenarios), optionally filtered by structure kind and
difficulty.`,
	RunE: listScenarios,
}

func init() {
	scenariosCmd.Flags().StringVar(&scenariosKind, "kind", "", "filter by structure kind")
	scenariosCmd.Flags().StringVar(&scenariosDifficulty, "difficulty", "", "filter by difficulty")
	scenariosCmd.Flags().BoolVar(&scenariosJSON, "json", false, "emit the scenario list as JSON")
}

func listScenarios(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	var scenarios []catalog.Scenario
	switch {
	case scenariosKind != "" && scenariosDifficulty != "":
		scenarios = cat.ByDifficulty(step.Target(scenariosKind), scenariosDifficulty)
	case scenariosKind != "":
		scenarios = cat.ByKind(step.Target(scenariosKind))
	default:
		scenarios = cat.All()
	}

	if scenariosJSON {
		return json.NewEncoder(os.Stdout).Encode(scenarios)
	}

	if len(scenarios) == 0 {
		fmt.Println("No scenarios matched.")
		return nil
	}
	for _, sc := range scenarios {
		fmt.Printf("%-28s %-12s %-8s %s\n", sc.ID, sc.Kind, sc.Difficulty, sc.Title)
	}
	return nil
}
