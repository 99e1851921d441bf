package installer

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/JuanVilla424/devtools/internal/manifest"
	"github.com/JuanVilla424/devtools/internal/prompt"
	"github.com/JuanVilla424/devtools/internal/ui"
)

type call struct {
	dir    string
	line   string
	stream bool
}

// fakeRunner records invocations. Commands listed in failures fail that many
// times before succeeding; "git init" creates .git like the real thing.
type fakeRunner struct {
	calls    []call
	failures map[string]int
	output   map[string]string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{failures: map[string]int{}, output: map[string]string{}}
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) error {
	return f.exec(dir, name, args, true)
}

func (f *fakeRunner) Output(_ context.Context, dir, name string, args ...string) (string, error) {
	err := f.exec(dir, name, args, false)
	return f.output[commandLine(name, args)], err
}

func (f *fakeRunner) exec(dir, name string, args []string, stream bool) error {
	line := commandLine(name, args)
	f.calls = append(f.calls, call{dir: dir, line: line, stream: stream})
	if f.failures[line] > 0 {
		f.failures[line]--
		return errors.New("exit status 1")
	}
	if line == "git init" {
		return os.MkdirAll(filepath.Join(dir, ".git"), 0755)
	}
	return nil
}

func (f *fakeRunner) lines() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.line
	}
	return out
}

var errDiskRead = errors.New("input/output error")

// brokenFS fails to open one name.
type brokenFS struct {
	fs.FS
	name string
}

func (b brokenFS) Open(name string) (fs.File, error) {
	if name == b.name {
		return nil, &fs.PathError{Op: "open", Path: name, Err: errDiskRead}
	}
	return b.FS.Open(name)
}

func testTemplates() fstest.MapFS {
	return fstest.MapFS{
		"eslint.config.mjs":       {Data: []byte("export default {}\n")},
		"commitlint.config.cjs":   {Data: []byte("module.exports = {}\n")},
		".ls-lint.yml":            {Data: []byte("ls: {}\n")},
		".vscode/settings.json":   {Data: []byte("{}\n")},
		".vscode/extensions.json": {Data: []byte("{\"recommendations\": []}\n")},
	}
}

type testEnv struct {
	dir    string
	runner *fakeRunner
	out    *bytes.Buffer
	in     *Installer
}

func newTestEnv(t *testing.T, resolver prompt.Resolver) *testEnv {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "my-app")
	require.NoError(t, os.Mkdir(dir, 0755))
	if resolver == nil {
		resolver = prompt.Func(func(string, []prompt.Option) (string, error) {
			t.Fatal("unexpected prompt")
			return "", nil
		})
	}
	env := &testEnv{dir: dir, runner: newFakeRunner(), out: &bytes.Buffer{}}
	env.in = New(Options{
		Dir:       dir,
		Resolver:  resolver,
		Runner:    env.runner,
		Templates: testTemplates(),
		Reporter:  ui.New(env.out, env.out),
	})
	return env
}

func (e *testEnv) write(t *testing.T, rel, content string) {
	t.Helper()
	path := filepath.Join(e.dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func (e *testEnv) read(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(e.dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func (e *testEnv) exists(rel string) bool {
	_, err := os.Stat(filepath.Join(e.dir, filepath.FromSlash(rel)))
	return err == nil
}

func (e *testEnv) manifest(t *testing.T) *manifest.Manifest {
	t.Helper()
	m, err := manifest.Load(manifest.PathIn(e.dir))
	require.NoError(t, err)
	return m
}

func (e *testEnv) section(t *testing.T, key string) *manifest.Section {
	t.Helper()
	s, err := e.manifest(t).Section(key)
	require.NoError(t, err)
	return s
}
