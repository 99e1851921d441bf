// Package pkgmgr works out which Node package manager governs a project.
package pkgmgr

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JuanVilla424/devtools/internal/prompt"
)

type Manager string

const (
	NPM  Manager = "npm"
	Yarn Manager = "yarn"
	PNPM Manager = "pnpm"
)

// Default is used when a project has no lock file at all.
const Default = PNPM

// Probe order; also the order candidates are offered in.
var lockFiles = []struct {
	file    string
	manager Manager
}{
	{"pnpm-lock.yaml", PNPM},
	{"yarn.lock", Yarn},
	{"package-lock.json", NPM},
}

func (m Manager) String() string { return string(m) }

// LockFile returns the lock file name the manager writes.
func (m Manager) LockFile() string {
	for _, lf := range lockFiles {
		if lf.manager == m {
			return lf.file
		}
	}
	return ""
}

// InstallArgs returns the arguments for "<manager> install".
func (m Manager) InstallArgs() []string {
	return []string{"install"}
}

// Parse accepts a manager name as typed by a person.
func Parse(s string) (Manager, error) {
	switch Manager(strings.ToLower(strings.TrimSpace(s))) {
	case NPM:
		return NPM, nil
	case Yarn:
		return Yarn, nil
	case PNPM:
		return PNPM, nil
	}
	return "", fmt.Errorf("unknown package manager %q", s)
}

// Detection is the outcome of Detect.
type Detection struct {
	Manager Manager
	// Found lists every manager whose lock file is present, in probe order.
	Found []Manager
	// Defaulted is set when no lock file exists and Default was picked.
	Defaulted bool
	// Prompted is set when the operator had to choose.
	Prompted bool
}

// Found reports which managers have a lock file in dir.
func Found(dir string) []Manager {
	var found []Manager
	for _, lf := range lockFiles {
		if _, err := os.Stat(filepath.Join(dir, lf.file)); err == nil {
			found = append(found, lf.manager)
		}
	}
	return found
}

// Detect inspects dir's lock files. With none it falls back to Default, with
// one it uses that manager, and with several it asks r to pick among them.
// Nothing on disk is touched.
func Detect(dir string, r prompt.Resolver) (Detection, error) {
	found := Found(dir)
	switch len(found) {
	case 0:
		return Detection{Manager: Default, Defaulted: true}, nil
	case 1:
		return Detection{Manager: found[0], Found: found}, nil
	}

	options := make([]prompt.Option, len(found))
	names := make([]string, len(found))
	for i, m := range found {
		options[i] = prompt.Option{Label: fmt.Sprintf("%s (%s)", m, m.LockFile()), Value: m.String()}
		names[i] = m.String()
	}
	choice, err := r.Choose("Several lock files found. Which package manager should be used?", options)
	if err != nil {
		return Detection{Found: found}, fmt.Errorf("lock files for %s found, choose one: %w", strings.Join(names, ", "), err)
	}
	m, err := Parse(choice)
	if err != nil {
		return Detection{Found: found}, err
	}
	for _, f := range found {
		if f == m {
			return Detection{Manager: m, Found: found, Prompted: true}, nil
		}
	}
	return Detection{Found: found}, fmt.Errorf("%s is not one of the detected managers (%s)", m, strings.Join(names, ", "))
}
