package installer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/JuanVilla424/devtools/internal/toolchain"
)

// copyTemplates copies the configuration files and the editor directory from
// the template source into the project, overwriting what is there. Templates
// missing from the source are skipped.
func (in *Installer) copyTemplates() (int, error) {
	copied := 0
	for _, name := range toolchain.TemplateFiles() {
		data, err := fs.ReadFile(in.templates, name)
		if errors.Is(err, fs.ErrNotExist) {
			in.log.Debug("template missing, skipped", "name", name)
			continue
		}
		if err != nil {
			return copied, fmt.Errorf("read template %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(in.dir, name), data, 0644); err != nil {
			return copied, err
		}
		copied++
	}

	info, err := fs.Stat(in.templates, toolchain.EditorDir)
	if errors.Is(err, fs.ErrNotExist) {
		return copied, nil
	}
	if err != nil {
		return copied, err
	}
	if !info.IsDir() {
		return copied, fmt.Errorf("template %s is not a directory", toolchain.EditorDir)
	}
	n, err := copyTree(in.templates, toolchain.EditorDir, in.dir)
	return copied + n, err
}

// copyTree copies root and everything below it from src into dst, keeping
// relative paths.
func copyTree(src fs.FS, root, dst string) (int, error) {
	copied := 0
	err := fs.WalkDir(src, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dst, filepath.FromSlash(p))
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		data, err := fs.ReadFile(src, p)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0644); err != nil {
			return err
		}
		copied++
		return nil
	})
	return copied, err
}
