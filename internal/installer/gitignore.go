package installer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/JuanVilla424/devtools/internal/toolchain"
)

const editorDirRule = toolchain.EditorDir + "/"

// Exact rules that ignore, or un-ignore, the whole editor directory.
var editorDirRules = map[string]bool{
	toolchain.EditorDir:       true,
	editorDirRule:             true,
	editorDirRule + "*":       true,
	"!" + toolchain.EditorDir: true,
	"!" + editorDirRule:       true,
	"!" + editorDirRule + "*": true,
}

// normalizeGitignore drops .gitignore rules that keep the editor directory
// out of version control. found is false when there is no .gitignore.
func (in *Installer) normalizeGitignore() (removed int, found bool, err error) {
	path := filepath.Join(in.dir, ".gitignore")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, true, err
	}
	out, removed := stripEditorRules(string(data))
	if removed == 0 {
		return 0, true, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, true, err
	}
	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return 0, true, err
	}
	return removed, true, nil
}

// stripEditorRules removes exact editor-directory rules and any negation of
// a path inside it. Unrelated lines are kept byte for byte.
func stripEditorRules(content string) (string, int) {
	lines := strings.Split(content, "\n")
	kept := lines[:0]
	removed := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if editorDirRules[trimmed] || strings.HasPrefix(trimmed, "!"+editorDirRule) {
			removed++
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n"), removed
}
