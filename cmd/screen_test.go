package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talent-pipeline/screening"
)

func TestReadResume(t *testing.T) {
	text, err := readResume(strings.NewReader("CFO at Deloitte"), nil)
	require.NoError(t, err)
	assert.Equal(t, "CFO at Deloitte", text)

	file := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(file, []byte("Operating Partner\n"), 0o600))
	text, err = readResume(nil, []string{file})
	require.NoError(t, err)
	assert.Equal(t, "Operating Partner", text)

	_, err = readResume(nil, []string{filepath.Join(t.TempDir(), "missing.txt")})
	assert.Error(t, err)
}

func TestScreenCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader("Chief Executive Officer, 12 years of experience"))
	rootCmd.SetArgs([]string{"screen"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	var res screening.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.True(t, res.Qualified)
	assert.Equal(t, 10, res.Analysis.Seniority)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "talent-pipeline version: unknown\n", out.String())
}
