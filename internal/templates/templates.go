// Package templates holds the configuration files copied into projects.
package templates

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed all:files
var embeddedFiles embed.FS

// Bundled returns the templates compiled into the binary.
func Bundled() fs.FS {
	sub, _ := fs.Sub(embeddedFiles, "files")
	return sub
}

// Source returns dir as a filesystem when set, the bundled templates otherwise.
func Source(dir string) fs.FS {
	if dir == "" {
		return Bundled()
	}
	return os.DirFS(dir)
}
