package installer

import (
	"os"
	"path/filepath"

	"github.com/JuanVilla424/devtools/internal/manifest"
	"github.com/JuanVilla424/devtools/internal/toolchain"
)

// ensureManifest writes a default package.json named after the directory
// when none exists. It reports whether it created one.
func (in *Installer) ensureManifest() (bool, error) {
	path := manifest.PathIn(in.dir)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}
	name := filepath.Base(filepath.Clean(in.dir))
	if err := manifest.Default(path, name).Save(); err != nil {
		return false, err
	}
	in.log.Debug("created manifest", "path", path, "name", name)
	return true, nil
}

// mergeManifest applies the toolchain's dependencies, scripts, hooks and
// lint-staged rules. Dependency and script entries are overlaid; the hook
// and lint-staged blocks are replaced outright.
func (in *Installer) mergeManifest() error {
	m, err := manifest.Load(manifest.PathIn(in.dir))
	if err != nil {
		return err
	}
	if err := applyToolchain(m); err != nil {
		return err
	}
	return m.Save()
}

func applyToolchain(m *manifest.Manifest) error {
	if err := m.MergeSection("devDependencies", toolchain.Latest()); err != nil {
		return err
	}
	if err := m.MergeSection("scripts", toolchain.Scripts()); err != nil {
		return err
	}

	hooks := manifest.NewSection()
	for _, h := range toolchain.GitHooks() {
		hooks.SetString(h.Name, h.Value)
	}
	m.SetSection(toolchain.HooksKey, hooks)

	staged := manifest.NewSection()
	for _, r := range toolchain.LintStaged() {
		staged.SetStrings(r.Glob, r.Commands)
	}
	m.SetSection(toolchain.LintStagedKey, staged)
	return nil
}
