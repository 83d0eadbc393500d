package cli

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/hawaka-joe/recfix/internal/fixture"
)

// Golden files pin the exact text surface of the CLI. Regenerate with:
//
//	go test ./internal/cli -update
//
// Paths printed by these commands would differ per run, so the golden
// scenarios only cover outputs that are path-free and fully determined by
// seeded fixtures.

func execGolden(t *testing.T, cmd *cobra.Command, args ...string) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	_ = cmd.Execute() // verdict failures still produce the output under test
	return buf.Bytes()
}

func TestGoldenVerifyPass(t *testing.T) {
	path := generateFixture(t, 5, fixture.Ascending)

	out := execGolden(t, NewVerifyCommand(&RootOptions{Format: "text"}), path)

	g := goldie.New(t)
	g.Assert(t, "verify_pass", out)
}

func TestGoldenVerifyFail(t *testing.T) {
	path := generateFixture(t, 5, fixture.Descending)

	out := execGolden(t, NewVerifyCommand(&RootOptions{Format: "text"}), path)

	g := goldie.New(t)
	g.Assert(t, "verify_fail", out)
}

func TestGoldenInspect(t *testing.T) {
	path := generateFixture(t, 5, fixture.Descending)

	out := execGolden(t, NewInspectCommand(&RootOptions{Format: "text"}), path, "--limit", "5")

	g := goldie.New(t)
	g.Assert(t, "inspect", out)
}

func TestGoldenSuitePass(t *testing.T) {
	tmpDir := t.TempDir()
	manifest := writeSuiteManifest(t, tmpDir, `
name: golden
fixtures:
  - path: sorted.dat
    records: 3
    mode: ascending
    seed: 1
checks:
  - path: sorted.dat
`)

	out := execGolden(t, NewSuiteCommand(&RootOptions{Format: "text"}), manifest)

	g := goldie.New(t)
	g.Assert(t, "suite_pass", out)
}

func TestGoldenSuiteFail(t *testing.T) {
	tmpDir := t.TempDir()
	manifest := writeSuiteManifest(t, tmpDir, `
name: golden-fail
fixtures:
  - path: reverse.dat
    records: 3
    mode: descending
    seed: 1
checks:
  - path: reverse.dat
`)

	out := execGolden(t, NewSuiteCommand(&RootOptions{Format: "text"}), manifest)
	require.NotEmpty(t, out)

	g := goldie.New(t)
	g.Assert(t, "suite_fail", out)
}
