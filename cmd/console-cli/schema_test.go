// Copyright 2025 Arcade Team
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
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/console/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newSchemaCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSchemaDump_JSON(t *testing.T) {
	out, err := run(t, "dump", "account", "-o", "json")
	require.NoError(t, err)

	var v map[string]any
	require.NoError(t, sonic.UnmarshalString(out, &v))
	assert.Equal(t, "account", v["name"])
}

func TestSchemaDump_YAMLRoundTrip(t *testing.T) {
	out, err := run(t, "dump", "mfApi")
	require.NoError(t, err)

	doc := bytes.TrimPrefix([]byte(out), []byte("---\n"))
	v, err := schema.LoadYAML(doc, nil)
	require.NoError(t, err)
	assert.Equal(t, "mfApi", v.Name)
	assert.Len(t, v.EditForm, 11)
}

func TestSchemaDump_Errors(t *testing.T) {
	_, err := run(t, "dump", "missing")
	assert.ErrorIs(t, err, schema.ErrViewNotFound)

	_, err = run(t, "dump", "account", "-o", "xml")
	assert.Error(t, err)
}

func TestSchemaLint(t *testing.T) {
	out, err := run(t, "lint")
	require.NoError(t, err)
	assert.Contains(t, out, "ok")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(`
name: broken
columns:
  - title: a
    dataIndex: a
  - title: b
    dataIndex: a
editForm:
  - field: x
    label: X
    component: Nope
`), 0o644))

	_, err = run(t, "lint", "-f", bad)
	assert.Error(t, err)
}
