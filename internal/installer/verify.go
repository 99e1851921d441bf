package installer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"

	"github.com/JuanVilla424/devtools/internal/manifest"
	"github.com/JuanVilla424/devtools/internal/toolchain"
)

type versionCheck struct {
	Name      string
	Installed string
	Range     string
	Missing   bool
	InRange   bool
}

// checkInstalledVersions compares what landed in node_modules with the
// pinned fallback ranges.
func checkInstalledVersions(dir string) []versionCheck {
	var checks []versionCheck
	for _, e := range toolchain.Fallback() {
		c := versionCheck{Name: e.Name, Range: e.Value}
		m, err := manifest.Load(filepath.Join(dir, "node_modules", filepath.FromSlash(e.Name), manifest.FileName))
		if err != nil {
			c.Missing = true
			checks = append(checks, c)
			continue
		}
		c.Installed, _ = m.String("version")
		v, verr := semver.NewVersion(c.Installed)
		constraint, ok := toolchain.FallbackConstraint(e.Name)
		c.InRange = verr == nil && ok && constraint.Check(v)
		checks = append(checks, c)
	}
	return checks
}

// verifyVersions reports installed toolchain versions as a step status and
// summary. It never fails the run.
func (in *Installer) verifyVersions() (string, string) {
	if _, err := os.Stat(filepath.Join(in.dir, "node_modules")); err != nil {
		in.report.Info("no node_modules directory, skipping version check")
		return StatusSkipped, "no node_modules"
	}
	checks := checkInstalledVersions(in.dir)
	inRange, missing := 0, 0
	for _, c := range checks {
		switch {
		case c.Missing:
			missing++
			in.log.Debug("package not found in node_modules", "name", c.Name)
		case c.InRange:
			inRange++
		default:
			in.report.Info("%s %s is outside the pinned range %s", c.Name, c.Installed, c.Range)
		}
	}
	if missing > 0 {
		in.report.Info("%d package(s) not found in node_modules", missing)
	}
	summary := fmt.Sprintf("%d/%d within pinned ranges", inRange, len(checks))
	in.report.Success("%s", summary)
	return StatusDone, summary
}
