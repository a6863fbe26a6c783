package config

// SandboxConfig configures the learner-code execution sandbox.
type SandboxConfig struct {
	// Wall-clock budget for one run, in milliseconds.
	TimeoutMs int `yaml:"timeout_ms" json:"timeout_ms,omitempty"`

	// Iteration ceiling injected into unbounded-looking loops. The guard is
	// a heuristic, not a termination proof: a large-but-finite loop can trip
	// it and loops hidden behind recursion escape it. Tune per deployment.
	IterationCeiling int `yaml:"iteration_ceiling" json:"iteration_ceiling,omitempty"`

	// Capture flags.
	CaptureSteps   bool `yaml:"capture_steps" json:"capture_steps,omitempty"`
	CaptureConsole bool `yaml:"capture_console" json:"capture_console,omitempty"`

	// Stdlib packages interpreted code may import. The instrumented
	// structure package is always allowed in addition to this list.
	AllowedImports []string `yaml:"allowed_imports" json:"allowed_imports,omitempty"`
}

// DefaultSandboxConfig returns the sandbox defaults: a 5 second budget, a
// ten-million iteration ceiling, both captures on, and a safe stdlib
// whitelist (no filesystem, network, exec or unsafe access).
func DefaultSandboxConfig() SandboxConfig {
	return SandboxConfig{
		TimeoutMs:        5000,
		IterationCeiling: 10_000_000,
		CaptureSteps:     true,
		CaptureConsole:   true,
		AllowedImports: []string{
			"errors",
			"fmt",
			"math",
			"sort",
			"strconv",
			"strings",
			"unicode",
		},
	}
}
