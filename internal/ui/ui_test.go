package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWarningsGoToErr(t *testing.T) {
	var out, errOut bytes.Buffer
	r := New(&out, &errOut)

	r.Success("copied %d files", 3)
	r.Warn("cleanup failed")
	r.Fail("install failed")

	assert.Contains(t, out.String(), "copied 3 files")
	assert.NotContains(t, out.String(), "cleanup failed")
	assert.Contains(t, errOut.String(), "[!]")
	assert.Contains(t, errOut.String(), "cleanup failed")
	assert.Contains(t, errOut.String(), "install failed")
}

func TestStepAndRow(t *testing.T) {
	var out bytes.Buffer
	r := New(&out, &out)

	r.Step(2, 8, "Creating package.json")
	r.Row("done", "Manifest", "")
	r.Row("warning", "Git hooks", "npx not found")

	s := out.String()
	assert.Contains(t, s, "[2/8]")
	assert.Contains(t, s, "Creating package.json")
	assert.Contains(t, s, "Manifest")
	assert.Contains(t, s, "npx not found")
}
