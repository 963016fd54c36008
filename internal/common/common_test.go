package common

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hireup/internal/errors"
)

func TestReadBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello resume"), 0600))

	fp := NewFileProcessor(nil)

	content, err := fp.ReadBytes(path, 0)
	require.NoError(t, err)
	assert.Equal(t, "hello resume", string(content))

	_, err = fp.ReadBytes(path, 5)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, "FILE_TOO_LARGE"))

	_, err = fp.ReadBytes(filepath.Join(dir, "missing.txt"), 0)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, "INVALID_INPUT_FILE"))

	text, err := fp.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello resume", text)
}

func TestHandleOutputToWriterAndFile(t *testing.T) {
	var buf bytes.Buffer
	oh := NewOutputHandler(&buf, nil)

	require.NoError(t, oh.HandleOutput(map[string]int{"score": 79}, CommandConfig{OutputFormat: "json"}))
	assert.Contains(t, buf.String(), `"score": 79`)

	out := filepath.Join(t.TempDir(), "reports", "out.json")
	require.NoError(t, oh.HandleOutput(map[string]int{"score": 80}, CommandConfig{OutputFile: out, OutputFormat: "json"}))
	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(written), `"score": 80`)

	err = oh.HandleOutput(map[string]int{}, CommandConfig{OutputFormat: "text"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidFormat))
}

func TestRunCommand(t *testing.T) {
	var buf bytes.Buffer
	cfg := CommandConfig{OutputFormat: "json"}
	formats := []string{"json", "text"}

	err := RunCommand(context.Background(), nil, cfg, formats, &buf, "test",
		func(context.Context) (map[string]string, error) {
			return map[string]string{"status": "ok"}, nil
		})
	require.NoError(t, err)
	assert.True(t, strings.Contains(buf.String(), `"status": "ok"`))

	called := false
	err = RunCommand(context.Background(), nil, CommandConfig{OutputFormat: "xml"}, formats, &buf, "test",
		func(context.Context) (string, error) {
			called = true
			return "", nil
		})
	require.Error(t, err)
	assert.False(t, called)
}
