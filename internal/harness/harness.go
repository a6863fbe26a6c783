package harness

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"algoviz/internal/catalog"
	"algoviz/internal/config"
	"algoviz/internal/logging"
	"algoviz/internal/sandbox"
	"algoviz/internal/step"
)

// TestResult is the per-scenario outcome handed to callers. One is produced
// for every scenario attempted, pass or fail; a failing scenario never
// aborts the suite.
type TestResult struct {
	TestID  string                  `json:"testId"`
	Passed  bool                    `json:"passed"`
	Error   string                  `json:"error,omitempty"`
	Elapsed time.Duration           `json:"executionTime"`
	Steps   []step.Step             `json:"steps"`
	Console []sandbox.ConsoleRecord `json:"consoleRecords,omitempty"`
}

// Orchestrator runs learner submissions against catalog scenarios. It owns
// the validation gate and the catalog-to-sandbox mapping; the sandbox stays
// ignorant of catalogs and the catalog of interpreters.
type Orchestrator struct {
	sb  *sandbox.Sandbox
	cat *catalog.Catalog
	log *zap.Logger
}

// New creates an orchestrator over the given catalog using the sandbox
// configuration provided.
func New(cat *catalog.Catalog, cfg config.SandboxConfig) *Orchestrator {
	return &Orchestrator{
		sb:  sandbox.New(cfg),
		cat: cat,
		log: logging.Get(logging.CategoryHarness),
	}
}

// RunTest executes source against a single scenario. Invalid submissions
// fail fast without touching the interpreter.
func (o *Orchestrator) RunTest(ctx context.Context, source string, sc catalog.Scenario) TestResult {
	if err := ValidateCode(source); err != nil {
		o.log.Debug("submission rejected before execution",
			zap.String("scenario", sc.ID), zap.String("reason", err.Error()))
		return TestResult{TestID: sc.ID, Error: err.Error()}
	}

	res := o.sb.Run(ctx, source, toSandboxScenario(sc))
	o.log.Info("scenario executed",
		zap.String("scenario", sc.ID),
		zap.Bool("passed", res.Success),
		zap.Duration("elapsed", res.Elapsed))

	return TestResult{
		TestID:  sc.ID,
		Passed:  res.Success,
		Error:   res.Error,
		Elapsed: res.Elapsed,
		Steps:   res.Steps,
		Console: res.Console,
	}
}

// RunTests executes source against every scenario for a structure kind, in
// catalog order. All scenarios run even when earlier ones fail.
func (o *Orchestrator) RunTests(ctx context.Context, source string, kind step.Target) []TestResult {
	return o.runAll(ctx, source, o.cat.ByKind(kind))
}

// RunTestsByDifficulty restricts the suite to one difficulty level. An
// unknown level yields no results rather than an error.
func (o *Orchestrator) RunTestsByDifficulty(ctx context.Context, source string, kind step.Target, difficulty string) []TestResult {
	return o.runAll(ctx, source, o.cat.ByDifficulty(kind, difficulty))
}

func (o *Orchestrator) runAll(ctx context.Context, source string, scenarios []catalog.Scenario) []TestResult {
	results := make([]TestResult, 0, len(scenarios))
	for _, sc := range scenarios {
		results = append(results, o.RunTest(ctx, source, sc))
	}
	return results
}

// RunReference executes the scenario's bundled reference solution. It runs
// through the same sandbox as learner code, so its step stream is directly
// comparable to a submission's.
func (o *Orchestrator) RunReference(ctx context.Context, sc catalog.Scenario) (TestResult, error) {
	if sc.Reference == "" {
		return TestResult{}, fmt.Errorf("scenario %q has no reference solution", sc.ID)
	}
	res := o.RunTest(ctx, sc.Reference, sc)
	if !res.Passed {
		// A reference that fails its own scenario is a catalog defect.
		o.log.Error("reference solution failed",
			zap.String("scenario", sc.ID), zap.String("error", res.Error))
	}
	return res, nil
}

// Scenario exposes catalog lookup so callers holding only an orchestrator
// can resolve IDs.
func (o *Orchestrator) Scenario(id string) (catalog.Scenario, bool) {
	return o.cat.Get(id)
}

func toSandboxScenario(sc catalog.Scenario) sandbox.Scenario {
	hash := config.DefaultHashConfig()
	if sc.HashCapacity > 0 {
		hash.InitialCapacity = sc.HashCapacity
	}
	if sc.HashLoad > 0 {
		hash.LoadFactor = sc.HashLoad
	}
	return sandbox.Scenario{
		Kind:        step.Target(sc.Kind),
		InitialData: sc.InitialData,
		Args:        sc.Args,
		Expected:    sc.Expected,
		Assert:      sc.Assert,
		Directed:    sc.Directed,
		Hash:        hash,
	}
}
