package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JuanVilla424/devtools/internal/config"
	"github.com/JuanVilla424/devtools/internal/installer"
	"github.com/JuanVilla424/devtools/internal/prompt"
)

func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.EnvTemplatesDir, "")
	t.Setenv(config.EnvDebug, "")
	t.Setenv(config.EnvNoPrompt, "")
}

func execute(t *testing.T, args ...string) (*installer.Options, string, error) {
	t.Helper()
	var got *installer.Options
	cmd := newRootCmd(func(_ context.Context, opts installer.Options) error {
		got = &opts
		return nil
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return got, out.String(), err
}

func TestInstallDefaultsToWorkingDirectory(t *testing.T) {
	isolateConfig(t)
	wd, err := os.Getwd()
	require.NoError(t, err)

	opts, out, err := execute(t, "install")
	require.NoError(t, err)
	require.NotNil(t, opts)
	assert.Equal(t, wd, opts.Dir)
	assert.NotNil(t, opts.Templates)
	assert.Contains(t, out, "devtools installed")
}

func TestInstallDirFlagWinsOverArgument(t *testing.T) {
	isolateConfig(t)
	flagDir := t.TempDir()

	opts, _, err := execute(t, "install", "somewhere-else", "--dir", flagDir)
	require.NoError(t, err)
	assert.Equal(t, flagDir, opts.Dir)
}

func TestInstallRelativeArgumentIsMadeAbsolute(t *testing.T) {
	isolateConfig(t)
	wd, err := os.Getwd()
	require.NoError(t, err)

	opts, _, err := execute(t, "install", "project")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "project"), opts.Dir)
}

func TestInstallNoPromptDisablesResolver(t *testing.T) {
	isolateConfig(t)
	t.Setenv(config.EnvNoPrompt, "true")

	opts, _, err := execute(t, "install", t.TempDir())
	require.NoError(t, err)
	_, err = opts.Resolver.Choose("pick", []prompt.Option{{Label: "a", Value: "a"}})
	assert.ErrorIs(t, err, prompt.ErrUnavailable)
}

func TestInstallFailureReturnsError(t *testing.T) {
	isolateConfig(t)
	boom := errors.New("package.json: boom")
	cmd := newRootCmd(func(context.Context, installer.Options) error { return boom })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"install", t.TempDir()})

	err := cmd.Execute()
	assert.ErrorIs(t, err, boom)
	assert.NotContains(t, out.String(), "boom")
	assert.NotContains(t, out.String(), "devtools installed")
}

func TestInstallFailurePrintedOnce(t *testing.T) {
	isolateConfig(t)
	cmd := newRootCmd(runInstall)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"install", filepath.Join(t.TempDir(), "missing")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, 1, strings.Count(out.String(), "install failed"))
	assert.Equal(t, 1, strings.Count(out.String(), "target directory"))
}

func TestInstallRejectsBadConfig(t *testing.T) {
	isolateConfig(t)
	t.Setenv(config.EnvDebug, "maybe")

	opts, _, err := execute(t, "install")
	require.Error(t, err)
	assert.Nil(t, opts)
}

func TestInstallTooManyArguments(t *testing.T) {
	isolateConfig(t)
	_, _, err := execute(t, "install", "a", "b")
	assert.Error(t, err)
}

func TestVersionFlag(t *testing.T) {
	_, out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}
