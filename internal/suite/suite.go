// Package suite runs YAML manifests that exercise an external sort program
// end to end: generate fixtures, run the sorter out of band, then verify
// its outputs. A manifest bundles the generate and verify steps so a whole
// fixture suite is reproducible from one file.
package suite

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hawaka-joe/recfix/internal/fixture"
	"github.com/hawaka-joe/recfix/internal/verify"
)

// Manifest describes a fixture suite.
//
// Fixture paths and check paths are resolved relative to the manifest file
// location, so suites can live next to the data they govern.
type Manifest struct {
	// Name identifies the suite in reports.
	Name string `yaml:"name"`

	// Description explains what the suite exercises.
	Description string `yaml:"description,omitempty"`

	// Fixtures are generated first, in order.
	Fixtures []FixtureStep `yaml:"fixtures,omitempty"`

	// Checks are verified after all fixtures are generated.
	Checks []CheckStep `yaml:"checks,omitempty"`
}

// FixtureStep generates one fixture file.
type FixtureStep struct {
	Path    string `yaml:"path"`
	Records int64  `yaml:"records"`
	Mode    string `yaml:"mode,omitempty"` // default "random"

	// Seed pins the random source for deterministic fixtures.
	// When nil the step is freshly seeded on every run.
	Seed *int64 `yaml:"seed,omitempty"`
}

// CheckStep verifies the record order of one file.
type CheckStep struct {
	Path string `yaml:"path"`

	// Expect is "sorted" (default) or "unsorted". An unsorted expectation
	// lets a suite pin down that a deliberately shuffled input really is
	// shuffled before it is handed to the sorter.
	Expect string `yaml:"expect,omitempty"`
}

const (
	ExpectSorted   = "sorted"
	ExpectUnsorted = "unsorted"
)

// LoadManifest reads and validates a suite manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks manifest consistency before any file is touched.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest: name is required")
	}
	if len(m.Fixtures) == 0 && len(m.Checks) == 0 {
		return fmt.Errorf("manifest %q: no fixtures or checks", m.Name)
	}

	for i, f := range m.Fixtures {
		if f.Path == "" {
			return fmt.Errorf("manifest %q: fixture %d: path is required", m.Name, i)
		}
		if f.Records < 0 {
			return fmt.Errorf("manifest %q: fixture %d: records must be >= 0, got %d", m.Name, i, f.Records)
		}
		if f.Mode != "" {
			if _, err := fixture.ParseDistribution(f.Mode); err != nil {
				return fmt.Errorf("manifest %q: fixture %d: %w", m.Name, i, err)
			}
		}
	}

	for i, c := range m.Checks {
		if c.Path == "" {
			return fmt.Errorf("manifest %q: check %d: path is required", m.Name, i)
		}
		switch c.Expect {
		case "", ExpectSorted, ExpectUnsorted:
		default:
			return fmt.Errorf("manifest %q: check %d: expect must be %q or %q, got %q",
				m.Name, i, ExpectSorted, ExpectUnsorted, c.Expect)
		}
	}

	return nil
}

// StepReport records the outcome of one manifest step.
type StepReport struct {
	Kind   string `json:"kind"` // "fixture" or "check"
	Path   string `json:"path"`
	Pass   bool   `json:"pass"`
	Detail string `json:"detail,omitempty"`
}

// Report is the outcome of a whole suite run.
type Report struct {
	Name  string       `json:"name"`
	Pass  bool         `json:"pass"`
	Steps []StepReport `json:"steps"`
}

// Run executes the manifest with paths resolved against baseDir (normally
// the manifest's directory). I/O failures abort the run with an error; a
// check whose expectation is not met marks the report failed but the
// remaining checks still run, so one suite run reports every mismatch.
func (m *Manifest) Run(baseDir string) (*Report, error) {
	report := &Report{Name: m.Name, Pass: true}

	for _, f := range m.Fixtures {
		mode := f.Mode
		if mode == "" {
			mode = "random"
		}
		dist, err := fixture.ParseDistribution(mode)
		if err != nil {
			return nil, err
		}

		gen := fixture.NewEntropy()
		if f.Seed != nil {
			gen = fixture.NewSeeded(*f.Seed)
		}

		path := resolve(baseDir, f.Path)
		summary, err := gen.Generate(path, f.Records, dist)
		if err != nil {
			return nil, fmt.Errorf("suite %q: %w", m.Name, err)
		}

		report.Steps = append(report.Steps, StepReport{
			Kind:   "fixture",
			Path:   f.Path,
			Pass:   true,
			Detail: fmt.Sprintf("%d records, %d bytes, %s", summary.Records, summary.Bytes, dist),
		})
	}

	for _, c := range m.Checks {
		result, err := verify.Check(resolve(baseDir, c.Path))
		if err != nil {
			return nil, fmt.Errorf("suite %q: %w", m.Name, err)
		}

		expect := c.Expect
		if expect == "" {
			expect = ExpectSorted
		}

		step := StepReport{Kind: "check", Path: c.Path}
		switch {
		case expect == ExpectSorted && result.Sorted:
			step.Pass = true
			step.Detail = fmt.Sprintf("sorted, %d records", result.Records)
		case expect == ExpectUnsorted && !result.Sorted:
			step.Pass = true
			step.Detail = fmt.Sprintf("unsorted as expected: record %d key %d < previous key %d",
				result.Index, result.Key, result.PrevKey)
		case expect == ExpectSorted:
			step.Detail = fmt.Sprintf("record %d: key %d < previous key %d",
				result.Index, result.Key, result.PrevKey)
		default:
			step.Detail = fmt.Sprintf("expected unsorted but all %d records are in order", result.Records)
		}

		if !step.Pass {
			report.Pass = false
		}
		report.Steps = append(report.Steps, step)
	}

	return report, nil
}

func resolve(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
