package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JuanVilla424/devtools/internal/manifest"
	"github.com/JuanVilla424/devtools/internal/toolchain"
)

type cleanResult struct {
	Files   int
	Deps    int
	Scripts int
	Blocks  int
	// ManifestChanged is set once the pruned package.json has been written.
	ManifestChanged bool
}

func (c cleanResult) total() int {
	return c.Files + c.Deps + c.Scripts + c.Blocks
}

// cleanConfigs removes config files, dependencies, scripts and package.json
// blocks left behind by tooling this toolchain replaces. package.json is
// rewritten only when something was removed from it.
func (in *Installer) cleanConfigs() (cleanResult, error) {
	var res cleanResult

	for _, name := range toolchain.ConfigFilesToClean() {
		rel := filepath.FromSlash(strings.TrimSuffix(name, "/"))
		path := filepath.Join(in.dir, rel)
		if _, err := os.Lstat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return res, err
		}
		if err := os.RemoveAll(path); err != nil {
			return res, fmt.Errorf("remove %s: %w", name, err)
		}
		res.Files++
		in.log.Debug("removed config", "path", name)
	}

	path := manifest.PathIn(in.dir)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return res, nil
	}
	m, err := manifest.Load(path)
	if err != nil {
		return res, err
	}

	for _, key := range []string{"devDependencies", "dependencies"} {
		n, err := pruneSection(m, key, toolchain.DependenciesToClean())
		if err != nil {
			return res, err
		}
		res.Deps += n
	}
	n, err := pruneSection(m, "scripts", withoutOwned(toolchain.ScriptsToClean()))
	if err != nil {
		return res, err
	}
	res.Scripts = n

	for _, block := range withoutOwned(toolchain.BlocksToClean()) {
		if m.Delete(block) {
			res.Blocks++
			in.log.Debug("removed config block", "key", block)
		}
	}

	if res.Deps+res.Scripts+res.Blocks == 0 {
		return res, nil
	}
	if err := m.Save(); err != nil {
		return res, err
	}
	res.ManifestChanged = true
	return res, nil
}

// withoutOwned drops the scripts and blocks the merge writes. The merge has
// already replaced any stale value under those keys.
func withoutOwned(names []string) []string {
	owned := map[string]bool{toolchain.HooksKey: true, toolchain.LintStagedKey: true}
	for _, e := range toolchain.Scripts() {
		owned[e.Name] = true
	}
	out := names[:0]
	for _, name := range names {
		if !owned[name] {
			out = append(out, name)
		}
	}
	return out
}

// pruneSection deletes names from the object under key and returns how many
// were present. A missing section is left missing.
func pruneSection(m *manifest.Manifest, key string, names []string) (int, error) {
	if !m.Has(key) {
		return 0, nil
	}
	s, err := m.Section(key)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, name := range names {
		if s.Delete(name) {
			removed++
		}
	}
	if removed > 0 {
		m.SetSection(key, s)
	}
	return removed, nil
}
