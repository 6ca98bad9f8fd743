package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func exportDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	avatar := `{
  "s1": {"user_id": "u1", "segment": "X", "session_duration": 120, "session_value": 40, "avatar_value": 50, "updated_at": "2024-03-05T10:00:00Z", "signal": [1, 2, 3]},
  "s2": {"user_id": "u2", "session_duration": 60, "session_value": 60, "avatar_value": 70, "updated_at": "2024-01-10T10:00:00Z"}
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "avatar.json"), []byte(avatar), 0o644))
	return dir
}

func TestSummarize_Engagement(t *testing.T) {
	out, err := run(t, "summarize", "engagement", "--dir", exportDir(t))
	require.NoError(t, err)

	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, true, v["available"])
	assert.Equal(t, float64(2), v["participants"])
	assert.Equal(t, float64(180), v["total_duration_seconds"])
	assert.Equal(t, "0h 3m", v["duration_label"])
}

func TestSummarize_OverviewIsPartialWithoutExports(t *testing.T) {
	out, err := run(t, "summarize", "overview", "--dir", exportDir(t))
	require.NoError(t, err)

	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, true, v["partial"])
	assert.ElementsMatch(t, []any{"meditation", "questionary", "performance"}, v["unavailable"])
}

func TestSummarize_UnknownView(t *testing.T) {
	_, err := run(t, "summarize", "heatmap", "--dir", exportDir(t))
	assert.ErrorContains(t, err, "unknown view")
}

func TestSignal(t *testing.T) {
	out, err := run(t, "signal", "sessionAvatar", "s1", "--dir", exportDir(t))
	require.NoError(t, err)

	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "s1", v["id"])
	assert.Len(t, v["samples"], 3)
}

func TestSchemas(t *testing.T) {
	out, err := run(t, "schemas")
	require.NoError(t, err)
	assert.Contains(t, out, "schemas:")
	assert.Contains(t, out, "avatar:")
	assert.Contains(t, out, "user_field: user_id")
}
