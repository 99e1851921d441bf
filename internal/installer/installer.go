// Package installer migrates a project onto the devtools lint and commit
// toolchain. Steps run strictly in order and communicate only through
// package.json on disk.
package installer

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/JuanVilla424/devtools/internal/pkgmgr"
	"github.com/JuanVilla424/devtools/internal/prompt"
	"github.com/JuanVilla424/devtools/internal/templates"
	"github.com/JuanVilla424/devtools/internal/toolchain"
	"github.com/JuanVilla424/devtools/internal/ui"
)

// Step statuses.
const (
	StatusDone    = "done"
	StatusSkipped = "skipped"
	StatusWarning = "warning"
	StatusFailed  = "failed"
)

const totalSteps = 8

type Options struct {
	// Dir is the project root. It must already exist.
	Dir string
	// Resolver picks a package manager when several lock files exist.
	Resolver prompt.Resolver
	Runner   Runner
	// Templates is the source of the copied configuration files.
	Templates fs.FS
	Reporter  *ui.Reporter
	Logger    *slog.Logger
}

type Installer struct {
	dir       string
	resolver  prompt.Resolver
	runner    Runner
	templates fs.FS
	report    *ui.Reporter
	log       *slog.Logger
}

// StepResult records how one step ended.
type StepResult struct {
	Name    string
	Status  string
	Message string
}

type Result struct {
	Manager      pkgmgr.Manager
	UsedFallback bool
	Steps        []StepResult
}

// Step returns the result recorded under name.
func (r *Result) Step(name string) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return StepResult{}, false
}

func (r *Result) add(name, status, msg string) {
	r.Steps = append(r.Steps, StepResult{Name: name, Status: status, Message: msg})
}

// New fills unset options with the real terminal, processes and bundled templates.
func New(opts Options) *Installer {
	in := &Installer{
		dir:       opts.Dir,
		resolver:  opts.Resolver,
		runner:    opts.Runner,
		templates: opts.Templates,
		report:    opts.Reporter,
		log:       opts.Logger,
	}
	if in.resolver == nil {
		in.resolver = prompt.Auto(os.Stdin, os.Stdout)
	}
	if in.runner == nil {
		in.runner = NewExecRunner()
	}
	if in.templates == nil {
		in.templates = templates.Bundled()
	}
	if in.report == nil {
		in.report = ui.Stdio()
	}
	if in.log == nil {
		in.log = slog.New(slog.DiscardHandler)
	}
	return in
}

// Run performs the whole migration. Package-manager detection, the
// package.json merge, template copying and dependency installation are
// fatal; cleanup, .gitignore normalization and hook setup only warn.
func (in *Installer) Run(ctx context.Context) (*Result, error) {
	res := &Result{}
	if err := toolchain.Validate(); err != nil {
		return res, in.abort(fmt.Errorf("toolchain tables: %w", err))
	}
	info, err := os.Stat(in.dir)
	if err != nil {
		return res, in.abort(fmt.Errorf("target directory: %w", err))
	}
	if !info.IsDir() {
		return res, in.abort(fmt.Errorf("target %s is not a directory", in.dir))
	}
	in.log.Debug("starting install", "dir", in.dir)

	// Step 1: detect before anything on disk changes.
	in.report.Step(1, totalSteps, "Detecting package manager...")
	det, err := pkgmgr.Detect(in.dir, in.resolver)
	if err != nil {
		return res, in.fatal(res, "Package manager", err)
	}
	res.Manager = det.Manager
	switch {
	case det.Defaulted:
		in.report.Warn("no lock file found, defaulting to %s", det.Manager)
	case det.Prompted:
		in.report.Success("using %s", det.Manager)
	default:
		in.report.Success("project uses %s (%s)", det.Manager, det.Manager.LockFile())
	}
	res.add("Package manager", StatusDone, det.Manager.String())

	// Step 2: package.json
	in.report.Step(2, totalSteps, "Updating package.json...")
	created, err := in.ensureManifest()
	if err != nil {
		return res, in.fatal(res, "package.json", err)
	}
	if created {
		in.report.Success("package.json created")
	}
	if err := in.mergeManifest(); err != nil {
		return res, in.fatal(res, "package.json", err)
	}
	in.report.Success("package.json updated")
	res.add("package.json", StatusDone, "")

	// Step 3: cleanup of previous tooling
	in.report.Step(3, totalSteps, "Cleaning existing configuration...")
	cleaned, err := in.cleanConfigs()
	if err != nil {
		in.log.Debug("cleanup failed", "err", err)
		in.report.Warn("cleanup failed, the install will continue: %v", err)
		in.report.Warn("check for conflicting config files and remove them by hand")
		res.add("Cleanup", StatusWarning, err.Error())
	} else {
		in.log.Debug("cleanup finished", "removed", cleaned.total(), "manifest_rewritten", cleaned.ManifestChanged)
		if cleaned.total() > 0 {
			in.report.Success("removed %d files, %d dependencies, %d scripts, %d config blocks",
				cleaned.Files, cleaned.Deps, cleaned.Scripts, cleaned.Blocks)
		} else {
			in.report.Success("nothing to clean")
		}
		res.add("Cleanup", StatusDone, "")
	}

	// Step 4: .gitignore
	in.report.Step(4, totalSteps, "Checking .gitignore...")
	removed, found, err := in.normalizeGitignore()
	switch {
	case err != nil:
		in.report.Warn(".gitignore could not be updated: %v", err)
		in.report.Warn("remove the %s ignore rules by hand", editorDirRule)
		res.add(".gitignore", StatusWarning, err.Error())
	case !found:
		in.report.Info("no .gitignore")
		res.add(".gitignore", StatusSkipped, "not found")
	case removed > 0:
		in.report.Success("removed %d %s rule(s) from .gitignore", removed, editorDirRule)
		res.add(".gitignore", StatusDone, "")
	default:
		in.report.Success(".gitignore has no %s rules", editorDirRule)
		res.add(".gitignore", StatusDone, "")
	}

	// Step 5: templates
	in.report.Step(5, totalSteps, "Copying configuration files...")
	copied, err := in.copyTemplates()
	if err != nil {
		return res, in.fatal(res, "Templates", err)
	}
	in.report.Success("copied %d configuration files", copied)
	res.add("Templates", StatusDone, "")

	// Step 6: dependencies
	in.report.Step(6, totalSteps, fmt.Sprintf("Installing dependencies with %s...", det.Manager))
	usedFallback, err := in.installDependencies(ctx, det.Manager)
	res.UsedFallback = usedFallback
	if err != nil {
		return res, in.fatal(res, "Dependencies", err)
	}
	if usedFallback {
		res.add("Dependencies", StatusDone, "pinned versions")
	} else {
		res.add("Dependencies", StatusDone, "latest versions")
	}

	// Step 7: git hooks
	in.report.Step(7, totalSteps, "Initializing git hooks...")
	if err := in.initGitHooks(ctx); err != nil {
		in.log.Debug("hook setup failed", "err", err)
		in.report.Warn("git hooks were not installed: %v", err)
		in.report.Warn("run by hand: git init && npx %s", hookCommand)
		res.add("Git hooks", StatusWarning, err.Error())
	} else {
		in.report.Success("git hooks installed")
		res.add("Git hooks", StatusDone, "")
	}

	// Step 8: report installed versions
	in.report.Step(8, totalSteps, "Checking installed versions...")
	status, summary := in.verifyVersions()
	res.add("Versions", status, summary)

	in.printSummary(res)
	return res, nil
}

// fatal records a failed step. The error is reported here, callers only
// propagate it.
func (in *Installer) fatal(res *Result, step string, err error) error {
	res.add(step, StatusFailed, err.Error())
	return in.abort(fmt.Errorf("%s: %w", step, err))
}

func (in *Installer) abort(err error) error {
	in.report.Fail("install failed: %v", err)
	return err
}

func (in *Installer) printSummary(res *Result) {
	in.report.Title("Summary")
	for _, s := range res.Steps {
		in.report.Row(s.Status, s.Name, s.Message)
	}
}
