package pkgmgr

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JuanVilla424/devtools/internal/prompt"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0644))
	}
}

// failResolver fails the test if the detector prompts.
func failResolver(t *testing.T) prompt.Resolver {
	return prompt.Func(func(string, []prompt.Option) (string, error) {
		t.Fatal("unexpected prompt")
		return "", nil
	})
}

func TestDetectNoLockFileDefaultsToPNPM(t *testing.T) {
	d, err := Detect(t.TempDir(), failResolver(t))
	require.NoError(t, err)
	assert.Equal(t, PNPM, d.Manager)
	assert.True(t, d.Defaulted)
	assert.False(t, d.Prompted)
}

func TestDetectSingleLockFile(t *testing.T) {
	cases := map[string]Manager{
		"package-lock.json": NPM,
		"yarn.lock":         Yarn,
		"pnpm-lock.yaml":    PNPM,
	}
	for file, want := range cases {
		t.Run(file, func(t *testing.T) {
			dir := t.TempDir()
			touch(t, dir, file)
			d, err := Detect(dir, failResolver(t))
			require.NoError(t, err)
			assert.Equal(t, want, d.Manager)
			assert.False(t, d.Defaulted)
			assert.False(t, d.Prompted)
		})
	}
}

func TestDetectMultipleLockFilesPrompts(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "pnpm-lock.yaml", "yarn.lock")

	var offered []prompt.Option
	r := prompt.Func(func(_ string, options []prompt.Option) (string, error) {
		offered = options
		return "yarn", nil
	})

	d, err := Detect(dir, r)
	require.NoError(t, err)
	assert.Equal(t, Yarn, d.Manager)
	assert.True(t, d.Prompted)
	assert.Equal(t, []Manager{PNPM, Yarn}, d.Found)
	require.Len(t, offered, 2)
	assert.Equal(t, "pnpm (pnpm-lock.yaml)", offered[0].Label)
	assert.Equal(t, "yarn (yarn.lock)", offered[1].Label)
}

func TestDetectMultipleLockFilesWithoutTerminalFails(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "pnpm-lock.yaml", "package-lock.json")

	_, err := Detect(dir, prompt.Disabled)
	require.Error(t, err)
	assert.True(t, errors.Is(err, prompt.ErrUnavailable))
}

func TestDetectRejectsChoiceOutsideCandidates(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "pnpm-lock.yaml", "yarn.lock")

	r := prompt.Func(func(string, []prompt.Option) (string, error) { return "npm", nil })
	_, err := Detect(dir, r)
	require.Error(t, err)
}

func TestParse(t *testing.T) {
	m, err := Parse(" Yarn ")
	require.NoError(t, err)
	assert.Equal(t, Yarn, m)

	_, err = Parse("bun")
	assert.Error(t, err)
}

func TestLockFile(t *testing.T) {
	assert.Equal(t, "package-lock.json", NPM.LockFile())
	assert.Equal(t, "yarn.lock", Yarn.LockFile())
	assert.Equal(t, "pnpm-lock.yaml", PNPM.LockFile())
	assert.Equal(t, []string{"install"}, PNPM.InstallArgs())
}
