// Package catalog supplies test scenarios per structure kind and difficulty
// level. Scenarios are YAML-defined suites loaded from disk (or the
// embedded default suite), consumed read-only by the test orchestrator and
// the reference-solution runner. Lookup misses yield empty slices, never
// errors: a missing scenario is an empty lesson, not a failure.
package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"algoviz/internal/config"
	"algoviz/internal/logging"
	"algoviz/internal/step"
)

// Difficulty levels a scenario may declare.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Op is one scripted operation of an expected-output trace: a method name
// in the structure's vocabulary plus its arguments.
type Op struct {
	Op   string `yaml:"op"`
	Args []any  `yaml:"args,omitempty"`
}

// Scenario is one test case for a structure/difficulty pair.
type Scenario struct {
	ID          string `yaml:"id"`
	Kind        string `yaml:"kind"`
	Difficulty  string `yaml:"difficulty"`
	Title       string `yaml:"title,omitempty"`
	Description string `yaml:"description,omitempty"`

	InitialData any    `yaml:"initial_data,omitempty"`
	Args        []any  `yaml:"args,omitempty"`
	Expected    any    `yaml:"expected,omitempty"`
	Assert      string `yaml:"assert,omitempty"`

	// Reference is the instructor's solution source; Skeleton is the
	// starting code shown to the learner.
	Reference string   `yaml:"reference,omitempty"`
	Skeleton  string   `yaml:"skeleton,omitempty"`
	Hints     []string `yaml:"hints,omitempty"`

	// ExpectedScript replays directly against a fresh structure to produce
	// the expected-output timeline without a sandbox run.
	ExpectedScript []Op `yaml:"expected_script,omitempty"`

	// Graph orientation and hash sizing, where applicable.
	Directed     bool    `yaml:"directed,omitempty"`
	HashCapacity int     `yaml:"hash_capacity,omitempty"`
	HashLoad     float64 `yaml:"hash_load,omitempty"`
}

// Suite is one YAML scenario file.
type Suite struct {
	Version   int        `yaml:"version"`
	Scenarios []Scenario `yaml:"scenarios"`
}

// Catalog holds the loaded scenario set. Safe for concurrent readers; the
// watcher is the only writer after load.
type Catalog struct {
	mu        sync.RWMutex
	scenarios []Scenario
	dir       string
	log       *zap.Logger
}

//go:embed defaults.yaml
var defaultSuite []byte

// New builds a catalog from in-memory scenarios, bypassing the filesystem.
func New(scenarios ...Scenario) *Catalog {
	c := &Catalog{log: logging.Get(logging.CategoryCatalog)}
	c.scenarios = append(c.scenarios, scenarios...)
	sort.SliceStable(c.scenarios, func(i, j int) bool { return c.scenarios[i].ID < c.scenarios[j].ID })
	return c
}

// Default returns a catalog holding only the embedded default suite.
func Default() *Catalog {
	c := &Catalog{log: logging.Get(logging.CategoryCatalog)}
	var suite Suite
	if err := yaml.Unmarshal(defaultSuite, &suite); err != nil {
		// The embedded suite is compiled in; a parse failure is a build
		// defect surfaced loudly in tests, not at runtime.
		c.log.Error("embedded suite is invalid", zap.Error(err))
		return c
	}
	c.scenarios = suite.Scenarios
	return c
}

// FromConfig resolves a catalog from configuration: the embedded defaults
// when no directory is set, otherwise the directory's suites, hot-reloaded
// until ctx is cancelled when Watch is enabled.
func FromConfig(ctx context.Context, cfg config.CatalogConfig) (*Catalog, error) {
	if cfg.Dir == "" {
		return Default(), nil
	}
	c, err := Load(cfg.Dir)
	if err != nil {
		return nil, err
	}
	if cfg.Watch {
		if err := c.Watch(ctx); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Load reads every *.yaml/*.yml suite file under dir. Files that fail to
// parse are skipped with a log entry; one bad suite never hides the rest.
func Load(dir string) (*Catalog, error) {
	c := &Catalog{dir: dir, log: logging.Get(logging.CategoryCatalog)}
	if err := c.reload(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) reload() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("failed to read scenario directory: %w", err)
	}

	var scenarios []Scenario
	for _, entry := range entries {
		if entry.IsDir() || !isSuiteFile(entry.Name()) {
			continue
		}
		path := filepath.Join(c.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			c.log.Warn("skipping unreadable suite", zap.String("path", path), zap.Error(err))
			continue
		}
		var suite Suite
		if err := yaml.Unmarshal(data, &suite); err != nil {
			c.log.Warn("skipping invalid suite", zap.String("path", path), zap.Error(err))
			continue
		}
		scenarios = append(scenarios, suite.Scenarios...)
	}

	sort.SliceStable(scenarios, func(i, j int) bool { return scenarios[i].ID < scenarios[j].ID })

	c.mu.Lock()
	c.scenarios = scenarios
	c.mu.Unlock()
	c.log.Info("catalog loaded", zap.Int("scenarios", len(scenarios)))
	return nil
}

func isSuiteFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// All returns every scenario in ID order.
func (c *Catalog) All() []Scenario {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Scenario(nil), c.scenarios...)
}

// ByKind returns the scenarios for one structure kind.
func (c *Catalog) ByKind(kind step.Target) []Scenario {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Scenario
	for _, sc := range c.scenarios {
		if sc.Kind == string(kind) {
			out = append(out, sc)
		}
	}
	return out
}

// ByDifficulty returns the scenarios for one structure kind and difficulty
// level. Unknown levels yield an empty result set.
func (c *Catalog) ByDifficulty(kind step.Target, difficulty string) []Scenario {
	var out []Scenario
	for _, sc := range c.ByKind(kind) {
		if sc.Difficulty == difficulty {
			out = append(out, sc)
		}
	}
	return out
}

// Get returns the scenario with the given ID.
func (c *Catalog) Get(id string) (Scenario, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, sc := range c.scenarios {
		if sc.ID == id {
			return sc, true
		}
	}
	return Scenario{}, false
}
