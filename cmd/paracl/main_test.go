package main

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paracl/src/util"
)

func runSource(t *testing.T, src, stdin string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "program.pcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	var out bytes.Buffer
	streams := &util.Streams{
		In:  bufio.NewReader(strings.NewReader(stdin)),
		Out: bufio.NewWriter(&out),
	}
	err := run(util.Options{Src: path}, streams)
	_ = streams.Out.Flush()
	return out.String(), err
}

func TestRunHelloCompute(t *testing.T) {
	out, err := runSource(t, "a = 2; b = 3; print a * b + 1;", "")
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestRunUndefinedVariableExitsWithError(t *testing.T) {
	_, err := runSource(t, "{ y = 7; } print y;", "")
	assert.Error(t, err)
}

func TestRunDivisionByZeroExitsWithError(t *testing.T) {
	_, err := runSource(t, "print 10 / 0;", "")
	assert.Error(t, err)
}

func TestRunMissingSourceFile(t *testing.T) {
	streams := util.NewStreams()
	err := run(util.Options{Src: "/nonexistent/path/to/file.pcl"}, streams)
	assert.Error(t, err)
}

func TestRunDebugDumpWritesTokenASTAndSymbolDumps(t *testing.T) {
	t.Setenv(debugDumpEnv, "1")
	dir := t.TempDir()
	path := filepath.Join(dir, "program.pcl")
	require.NoError(t, os.WriteFile(path, []byte("a = 2; print a;"), 0644))

	var out bytes.Buffer
	streams := &util.Streams{In: bufio.NewReader(strings.NewReader("")), Out: bufio.NewWriter(&out)}
	require.NoError(t, run(util.Options{Src: path}, streams))

	for _, ext := range []string{".tokens", ".ast.dot", ".st_dump"} {
		b, err := os.ReadFile(path + ext)
		require.NoErrorf(t, err, "expected debug dump %s to be written", ext)
		assert.NotEmpty(t, b)
	}
}
