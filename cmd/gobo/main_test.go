// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoke(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestUsage(t *testing.T) {
	t.Parallel()

	code, _, stderr := invoke(t)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "usage: gobo")

	code, _, _ = invoke(t, "lint", "x.gml")
	assert.Equal(t, exitUsage, code)

	code, _, _ = invoke(t, "-bogus", "format", "x.gml")
	assert.Equal(t, exitUsage, code)

	code, stdout, _ := invoke(t, "-version")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "gobo dev\n", stdout)
}

func TestMissingPath(t *testing.T) {
	t.Parallel()

	code, _, stderr := invoke(t, "format", filepath.Join(t.TempDir(), "missing.gml"))
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "error:")
}

func TestInvalidOptions(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "a.gml", "a=1")
	code, _, stderr := invoke(t, "-width", "0", "format", path)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "width")

	code, _, _ = invoke(t, "-brace-style", "sideways", "format", path)
	assert.Equal(t, exitUsage, code)
	assert.Equal(t, "a=1", readFile(t, path))
}

func TestFormatStdout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.gml", "if (x) {y()}")

	code, stdout, _ := invoke(t, "-stdout", "format", path)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "if (x) {\n    y();\n}\n", stdout)
	assert.Equal(t, "if (x) {y()}", readFile(t, path))

	code, stdout, _ = invoke(t, "-stdout", "-tabs", "-brace-style", "newLine", "format", path)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "if (x)\n{\n\ty();\n}\n", stdout)

	code, _, stderr := invoke(t, "-stdout", "-debug", "format", path)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr, "<group")

	code, _, _ = invoke(t, "-stdout", "format", dir)
	assert.Equal(t, exitUsage, code)
}

func TestFormatConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "gobo.json", `{"tabWidth": 2}`)
	path := writeFile(t, dir, "src/a.gml", "if (x) {y()}")

	code, stdout, _ := invoke(t, "-stdout", "format", path)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "if (x) {\n  y();\n}\n", stdout)

	// Flags win over the file.
	code, stdout, _ = invoke(t, "-stdout", "-tab-width", "3", "format", path)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "if (x) {\n   y();\n}\n", stdout)
}

func TestFormatDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.gml", "a=1")
	b := writeFile(t, dir, "nested/b.gml", "b = 2;\n")

	code, _, stderr := invoke(t, "-validate", "-cache", filepath.Join(t.TempDir(), "cache.db"), "format", dir)
	assert.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "a = 1;\n", readFile(t, a))
	assert.Equal(t, "b = 2;\n", readFile(t, b))
}

func TestCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.gml", "a=1\n")
	writeFile(t, dir, "b.gml", "b = 2;\n")

	code, stdout, _ := invoke(t, "-check", "format", dir)
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stdout, "-a=1")
	assert.Contains(t, stdout, "+a = 1;")
	assert.NotContains(t, stdout, "b.gml")
	assert.Equal(t, "a=1\n", readFile(t, a))

	code, stdout, _ = invoke(t, "-write=false", "format", dir)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, a+"\n", stdout)

	code, _, _ = invoke(t, "format", dir)
	assert.Equal(t, exitOK, code)
	code, stdout, _ = invoke(t, "-check", "format", dir)
	assert.Equal(t, exitOK, code)
	assert.Empty(t, stdout)
}

func TestSyntaxError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.gml", "if (")
	good := writeFile(t, dir, "good.gml", "a=1")

	code, _, stderr := invoke(t, "format", dir)
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "syntax error")
	assert.Equal(t, "if (", readFile(t, bad))
	// Other files are still formatted.
	assert.Equal(t, "a = 1;\n", readFile(t, good))
}
