package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"algoviz/internal/catalog"
	"algoviz/internal/config"
	"algoviz/internal/logging"
)

var (
	// Global flags
	debugMode    bool
	logLevel     string
	scenariosDir string
	timeoutMs    int

	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "algoviz",
	Short: "algoviz - instrumented execution engine for data structure exercises",
	Long: `algoviz runs learner-submitted Go code against instrumented data
structures inside an interpreter sandbox. Every structure operation the code
performs is captured as a step record suitable for visual playback.

Commands validate submissions, run them against scenario suites, execute
bundled reference solutions, and replay a scenario's canonical operation
script.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		err := logging.Initialize(config.LoggingConfig{
			DebugMode: debugMode,
			Level:     logLevel,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		logger = logging.Get(logging.CategoryCLI)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level when --debug is set")
	rootCmd.PersistentFlags().StringVar(&scenariosDir, "scenarios", "", "directory of scenario suite YAML files (default: embedded suite)")
	rootCmd.PersistentFlags().IntVar(&timeoutMs, "timeout-ms", 0, "sandbox wall-clock budget per run (default 5000)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(referenceCmd)
	rootCmd.AddCommand(replayCmd)
}

// loadCatalog resolves the scenario source: a suite directory when given,
// the embedded defaults otherwise.
func loadCatalog() (*catalog.Catalog, error) {
	return catalog.FromConfig(context.Background(), config.CatalogConfig{Dir: scenariosDir})
}

func sandboxConfig() config.SandboxConfig {
	cfg := config.DefaultSandboxConfig()
	if timeoutMs > 0 {
		cfg.TimeoutMs = timeoutMs
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
