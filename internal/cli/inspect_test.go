package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawaka-joe/recfix/internal/fixture"
)

// execInspect runs the inspect command and returns its combined output.
func execInspect(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewInspectCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestInspectShowsKeysAndOffsets(t *testing.T) {
	path := generateFixture(t, 5, fixture.Descending)

	out, err := execInspect(t, "text", path, "--limit", "3")
	require.NoError(t, err)

	assert.Contains(t, out, "INDEX")
	assert.Contains(t, out, "OFFSET")
	assert.Contains(t, out, "KEY")
	// keys [4 3 2 1 0], offsets step by the record size
	assert.Regexp(t, `0\s+0\s+4`, out)
	assert.Regexp(t, `1\s+100\s+3`, out)
	assert.Regexp(t, `2\s+200\s+2`, out)
	assert.NotRegexp(t, `3\s+300`, out, "limit must cap the listing")
}

func TestInspectDefaultLimit(t *testing.T) {
	path := generateFixture(t, 25, fixture.Ascending)

	out, err := execInspect(t, "json", path)
	require.NoError(t, err)

	var response CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &response))

	data, err := json.Marshal(response.Data)
	require.NoError(t, err)
	var result InspectResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Len(t, result.Records, 10)
}

func TestInspectNegativeLimit(t *testing.T) {
	path := generateFixture(t, 5, fixture.Ascending)

	out, err := execInspect(t, "text", path, "--limit", "-1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "E_USAGE")
	assert.Contains(t, out, "limit must be >= 0")
}

func TestInspectShortFile(t *testing.T) {
	path := generateFixture(t, 2, fixture.Ascending)

	out, err := execInspect(t, "json", path, "--limit", "50")
	require.NoError(t, err)

	var response CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &response))

	data, err := json.Marshal(response.Data)
	require.NoError(t, err)
	var result InspectResult
	require.NoError(t, json.Unmarshal(data, &result))
	require.Len(t, result.Records, 2)
	assert.Equal(t, uint32(0), result.Records[0].Key)
	assert.Equal(t, int64(100), result.Records[1].Offset)
}

func TestInspectFragmentOnlyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fragment.dat")
	require.NoError(t, os.WriteFile(path, make([]byte, 99), 0644))

	out, err := execInspect(t, "text", path)
	require.NoError(t, err)
	assert.Equal(t, "no complete records\n", out)
}

func TestInspectMissingFile(t *testing.T) {
	out, err := execInspect(t, "text", filepath.Join(t.TempDir(), "nope.dat"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "E_IO")
}
