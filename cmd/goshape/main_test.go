package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/reoring/goshape"
)

func init() { color.NoColor = true }

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

const annYAML = `name: Ann
age: 30
tags: [a, b]
role: editor
address:
  street: Main St
  city: Springfield
`

func TestInspect(t *testing.T) {
	doc := writeFile(t, "ann.yaml", annYAML)
	var out bytes.Buffer
	require.NoError(t, inspectCmd([]string{"-type", "person", "-f", doc}, &out))
	require.Contains(t, out.String(), "person: catalog.Person\n")
	require.Contains(t, out.String(), `  name: "Ann" string`)
	require.Contains(t, out.String(), "  tags: [2]\n")
	require.Contains(t, out.String(), "  role: editor {viewer|editor|admin}\n")
	require.Contains(t, out.String(), "    city: \"Springfield\" string\n")
	require.Contains(t, out.String(), "  session: 0s duration\n")
}

func TestInspect_DefaultJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, inspectCmd([]string{"-type", "person", "-json"}, &out))
	require.Contains(t, out.String(), `"identifier": "session"`)
	require.Contains(t, out.String(), `"value": "30m0s"`)
}

func TestInspect_DuplicateKey(t *testing.T) {
	doc := writeFile(t, "dup.yaml", "name: Ann\nname: Bob\n")
	err := inspectCmd([]string{"-type", "person", "-f", doc}, &bytes.Buffer{})
	require.ErrorContains(t, err, `duplicate YAML key "name"`)
}

func TestInspect_JSONInput(t *testing.T) {
	doc := writeFile(t, "ann.json", `{"name":"Ann","tags":["a"],"role":"admin"}`)
	var out bytes.Buffer
	require.NoError(t, inspectCmd([]string{"-type", "person", "-f", doc}, &out))
	require.Contains(t, out.String(), "  role: admin {viewer|editor|admin}\n")

	dup := writeFile(t, "dup.json", `{"name":"Ann","address":{"city":"a","city":"b"}}`)
	err := inspectCmd([]string{"-type", "person", "-f", dup}, &bytes.Buffer{})
	require.ErrorContains(t, err, `duplicate JSON key "city" at /address/city`)
}

func TestInspect_UnknownType(t *testing.T) {
	err := inspectCmd([]string{"-type", "robot"}, &bytes.Buffer{})
	require.EqualError(t, err, `unknown type "robot", want one of address, person, team`)

	err = inspectCmd([]string{"-type", "persn"}, &bytes.Buffer{})
	require.EqualError(t, err, `unknown type "persn", did you mean "person"?`)
}

func TestSchema(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, schemaCmd([]string{"-type", "address"}, &out))
	require.Contains(t, out.String(), `"type": "object"`)
	require.Contains(t, out.String(), `"required": [`)
	require.Contains(t, out.String(), `"street"`)
}

func TestRoundtrip(t *testing.T) {
	doc := writeFile(t, "ann.yaml", annYAML)
	var out bytes.Buffer
	require.NoError(t, roundtripCmd([]string{"-type", "person", "-f", doc}, &out))
	require.Contains(t, out.String(), "name: Ann\n")
	require.Contains(t, out.String(), "role: editor\n")
	require.Contains(t, out.String(), "  city: Springfield\n")
}

func TestRoundtrip_RenameClash(t *testing.T) {
	doc := writeFile(t, "ann.yaml", annYAML)
	err := roundtripCmd([]string{"-type", "person", "-f", doc, "-rename", "/address/city=street"}, &bytes.Buffer{})
	require.True(t, goshape.HasCode(err, goshape.CodeDuplicateIdentifier))
}

func TestRoundtrip_RenameBreaksDecode(t *testing.T) {
	doc := writeFile(t, "ann.yaml", annYAML)
	err := roundtripCmd([]string{"-type", "person", "-f", doc, "-rename", "name=fullName"}, &bytes.Buffer{})
	require.True(t, goshape.HasCode(err, goshape.CodeMissingProperty))
	iss, _ := goshape.AsIssues(err)
	require.Equal(t, "/fullName", iss[0].Path)
}

func TestRoundtrip_FoldedConfig(t *testing.T) {
	doc := writeFile(t, "ann.yaml", annYAML)
	cfg := writeFile(t, "cfg.yaml", "identifiers:\n  comparison: fold\n")
	err := roundtripCmd([]string{"-type", "person", "-f", doc, "-config", cfg, "-rename", "age=NAME"}, &bytes.Buffer{})
	require.True(t, goshape.HasCode(err, goshape.CodeDuplicateIdentifier))
}
