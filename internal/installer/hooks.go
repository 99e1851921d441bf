package installer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/JuanVilla424/devtools/internal/toolchain"
)

const hookCommand = toolchain.HookCommand

// initGitHooks makes sure the project is a git repository, then registers
// the hooks declared in package.json.
func (in *Installer) initGitHooks(ctx context.Context) error {
	if _, err := os.Stat(filepath.Join(in.dir, ".git")); os.IsNotExist(err) {
		in.report.Info("no git repository, running git init")
		args := []string{"init"}
		if out, err := in.runner.Output(ctx, in.dir, "git", args...); err != nil {
			return commandError("git", args, out, err)
		}
	}
	args := []string{hookCommand}
	out, err := in.runner.Output(ctx, in.dir, "npx", args...)
	if err != nil {
		return commandError("npx", args, out, err)
	}
	in.log.Debug("hooks registered", "output", out)
	return nil
}
