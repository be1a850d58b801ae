package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/income-strategist/internal/display"
	"github.com/jonathan/income-strategist/internal/types"
)

func TestParseCommand_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleReport), 0o600))

	stdout, _, err := execute(t, "", "parse", path)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Niche:\n  Micro-SaaS tools")
	assert.NotContains(t, stdout, display.UnparsedNotice)
}

func TestParseCommand_StdinJSON(t *testing.T) {
	stdout, _, err := execute(t, "Nothing structured here.", "parse", "--json")
	require.NoError(t, err)

	var resp types.ReportResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.True(t, resp.Unparsed)
	assert.Nil(t, resp.Parsed)
	assert.Equal(t, "Nothing structured here.", resp.Report)
}

func TestParseCommand_Errors(t *testing.T) {
	_, _, err := execute(t, "", "parse")
	assert.EqualError(t, err, "report is empty")

	_, _, err = execute(t, "", "parse", filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "failed to read report")

	_, _, err = execute(t, "", "parse", "a", "b")
	assert.Error(t, err)
}
