package version

import (
	"bytes"
	"encoding/json"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	info := New("procmanage")
	assert.Equal(t, "procmanage", info.Name)
	assert.Equal(t, "0.0.0-dev", info.Version)
	assert.Equal(t, "unknown", info.BuildDate)
	assert.Equal(t, "unknown", info.GitCommit)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestInfoString(t *testing.T) {
	info := &Info{Name: "procmanage", Version: "1.2.3", BuildDate: "2026-01-01", GitCommit: "abc123"}
	assert.Equal(t, "procmanage version 1.2.3 (commit: abc123, built: 2026-01-01)", info.String())
}

func execute(t *testing.T, format *string, args ...string) string {
	t.Helper()
	cmd := NewCommand(New("procmanage"), format)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(append([]string{}, args...))
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestNewCommandHumanReadable(t *testing.T) {
	output := execute(t, nil)
	for _, want := range []string{"procmanage", "Version", "Build Date", "Git Commit", "Platform"} {
		assert.Contains(t, output, want)
	}
}

func TestNewCommandJSON(t *testing.T) {
	format := "json"
	output := execute(t, &format)

	var parsed Info
	require.NoError(t, json.Unmarshal([]byte(output), &parsed))
	assert.Equal(t, "procmanage", parsed.Name)
	assert.Equal(t, "0.0.0-dev", parsed.Version)
}

func TestNewCommandQuiet(t *testing.T) {
	output := execute(t, nil, "--quiet")
	assert.Equal(t, "0.0.0-dev", strings.TrimSpace(output))
}

func TestNewCommandRejectsArgs(t *testing.T) {
	cmd := NewCommand(New("procmanage"), nil)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"extra"})
	assert.Error(t, cmd.Execute())
}

func TestNewCommandRejectsUnknownFormat(t *testing.T) {
	format := "xml"
	cmd := NewCommand(New("procmanage"), &format)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	assert.ErrorContains(t, cmd.Execute(), "invalid output format")
}
