package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// AugmentPath probes for well-known Node toolchain directories and appends
// the ones that exist to the process PATH, so npm, yarn, pnpm, npx and git
// are found however devtools was launched. It returns the directories added.
func AugmentPath() []string {
	home := os.Getenv("HOME")
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	if home == "" {
		return nil
	}
	path, added := augment(home, os.Getenv("PATH"), os.Getenv("PNPM_HOME"), os.Getenv("VOLTA_HOME"))
	if len(added) > 0 {
		os.Setenv("PATH", path)
	}
	return added
}

func augment(home, current, pnpmHome, voltaHome string) (string, []string) {
	if voltaHome == "" {
		voltaHome = filepath.Join(home, ".volta")
	}
	if pnpmHome == "" {
		pnpmHome = filepath.Join(home, ".local", "share", "pnpm")
	}

	extra := []string{
		pnpmHome,
		filepath.Join(voltaHome, "bin"),
		filepath.Join(home, ".yarn", "bin"),
		filepath.Join(home, ".npm-global", "bin"),
		filepath.Join(home, ".local", "bin"),
		filepath.Join(home, ".bun", "bin"),
		"/usr/local/bin",
		"/usr/bin",
		"/opt/homebrew/bin",
		"/snap/bin",
	}

	// nvm: pick the latest installed node version.
	nvmDir := filepath.Join(home, ".nvm", "versions", "node")
	if entries, err := os.ReadDir(nvmDir); err == nil {
		for i := len(entries) - 1; i >= 0; i-- {
			if !entries[i].IsDir() {
				continue
			}
			binDir := filepath.Join(nvmDir, entries[i].Name(), "bin")
			if _, err := os.Stat(binDir); err == nil {
				extra = append(extra, binDir)
				break
			}
		}
	}

	existing := make(map[string]bool)
	for _, p := range filepath.SplitList(current) {
		existing[p] = true
	}

	var toAdd []string
	for _, p := range extra {
		if existing[p] {
			continue
		}
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			toAdd = append(toAdd, p)
			existing[p] = true
		}
	}
	if len(toAdd) == 0 {
		return current, nil
	}
	sep := string(os.PathListSeparator)
	if current == "" {
		return strings.Join(toAdd, sep), toAdd
	}
	return current + sep + strings.Join(toAdd, sep), toAdd
}
