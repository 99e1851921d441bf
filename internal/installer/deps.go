package installer

import (
	"context"
	"fmt"

	"github.com/JuanVilla424/devtools/internal/manifest"
	"github.com/JuanVilla424/devtools/internal/pkgmgr"
	"github.com/JuanVilla424/devtools/internal/toolchain"
)

// installDependencies runs the manager's install with the "latest" set. If
// that fails the pinned fallback ranges are written to package.json and the
// install is retried once; a second failure is returned.
func (in *Installer) installDependencies(ctx context.Context, mgr pkgmgr.Manager) (usedFallback bool, err error) {
	in.report.Info("installing latest versions with %s", mgr)
	err = in.runner.Run(ctx, in.dir, mgr.String(), mgr.InstallArgs()...)
	if err == nil {
		in.report.Success("dependencies installed (%s, latest versions)", mgr)
		return false, nil
	}
	in.log.Debug("latest install failed", "manager", mgr, "err", err)
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	in.report.Warn("installing latest versions failed, retrying with pinned versions")

	if err := pinFallbackVersions(manifest.PathIn(in.dir)); err != nil {
		return true, fmt.Errorf("write pinned versions: %w", err)
	}
	if err := in.runner.Run(ctx, in.dir, mgr.String(), mgr.InstallArgs()...); err != nil {
		return true, fmt.Errorf("%s install failed with pinned versions: %w", mgr, err)
	}
	in.report.Success("dependencies installed (%s, pinned versions)", mgr)
	in.report.Warn("fell back to pinned versions for compatibility")
	return true, nil
}

func pinFallbackVersions(path string) error {
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}
	if err := m.MergeSection("devDependencies", toolchain.Fallback()); err != nil {
		return err
	}
	return m.Save()
}
