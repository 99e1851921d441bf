package toolchain

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Entry is one name/value pair of a fixed table. Tables are slices so the
// order in which keys are appended to package.json is stable.
type Entry struct {
	Name  string
	Value string
}

// StagedRule maps a file glob to the commands lint-staged runs on it.
type StagedRule struct {
	Glob     string
	Commands []string
}

const (
	// HooksKey and LintStagedKey are the package.json blocks this toolchain owns.
	HooksKey      = "simple-git-hooks"
	LintStagedKey = "lint-staged"

	// EditorDir is the editor-config directory shipped with the templates.
	EditorDir = ".vscode"

	// HookCommand registers the hooks declared under HooksKey.
	HookCommand = "simple-git-hooks"
)

var latest = []Entry{
	{"@antfu/eslint-config", "latest"},
	{"@commitlint/cli", "latest"},
	{"@commitlint/config-conventional", "latest"},
	{"@ls-lint/ls-lint", "latest"},
	{"czg", "latest"},
	{"eslint", "latest"},
	{"eslint-plugin-format", "latest"},
	{"lint-staged", "latest"},
	{"simple-git-hooks", "latest"},
}

// Known-good ranges used when installing "latest" fails.
var fallback = []Entry{
	{"@antfu/eslint-config", "^4.17.0"},
	{"@commitlint/cli", "^19.8.1"},
	{"@commitlint/config-conventional", "^19.8.1"},
	{"@ls-lint/ls-lint", "^2.3.1"},
	{"czg", "^1.12.0"},
	{"eslint", "^9.31.0"},
	{"eslint-plugin-format", "^1.0.1"},
	{"lint-staged", "^16.1.2"},
	{"simple-git-hooks", "^2.13.0"},
}

var scripts = []Entry{
	{"lint:eslint", "eslint --fix"},
	{"lint:ls", "ls-lint"},
	{"lint", "git add . && npx lint-staged"},
	{"commit", "git add . && czg && git pull && git push"},
}

var gitHooks = []Entry{
	{"commit-msg", "npx commitlint --config commitlint.config.cjs --edit"},
	{"pre-commit", "npx lint-staged"},
}

var lintStaged = []StagedRule{
	{Glob: "*", Commands: []string{"ls-lint", "eslint --fix"}},
}

var configFilesToClean = []string{
	// eslint
	".eslintrc.js",
	".eslintrc.cjs",
	".eslintrc.json",
	".eslintrc.yml",
	".eslintrc.yaml",
	"eslint.config.js",
	"eslint.config.ts",
	"eslint.config.mjs",
	"eslint.config.cjs",
	// prettier
	".prettierrc",
	".prettierrc.json",
	".prettierrc.yml",
	".prettierrc.yaml",
	".prettierrc.js",
	".prettierrc.cjs",
	".prettierrc.mjs",
	"prettier.config.js",
	"prettier.config.cjs",
	"prettier.config.mjs",
	// commitlint
	"commitlint.config.js",
	"commitlint.config.ts",
	"commitlint.config.cjs",
	"commitlint.config.mjs",
	".commitlintrc.js",
	".commitlintrc.json",
	".commitlintrc.yml",
	".commitlintrc.yaml",
	// husky
	".husky/",
	// ls-lint
	".ls-lint.yml",
	".ls-lint.yaml",
	// editor
	".vscode/",
}

var dependenciesToClean = []string{
	"@typescript-eslint/eslint-plugin",
	"@typescript-eslint/parser",
	"@vue/eslint-config-prettier",
	"@vue/eslint-config-typescript",
	"eslint-config-prettier",
	"eslint-plugin-prettier",
	"eslint-plugin-vue",
	"eslint-plugin-import",
	"eslint-plugin-node",
	"eslint-plugin-promise",
	"eslint-plugin-standard",
	"@eslint/js",
	"prettier",
	"husky",
	"@vitest/eslint-plugin",
	"eslint-plugin-playwright",
}

var scriptsToClean = []string{
	"lint:eslint",
	"lint:prettier",
	"lint:fix",
	"format",
	"format:check",
	"prepare",
}

// Top-level package.json blocks left behind by superseded hook tooling.
var blocksToClean = []string{"husky", LintStagedKey, HooksKey}

var templateFiles = []string{
	"eslint.config.mjs",
	"commitlint.config.cjs",
	".ls-lint.yml",
}

// Latest returns the dev dependencies pinned to the "latest" tag.
func Latest() []Entry { return cloneEntries(latest) }

// Fallback returns the dev dependencies pinned to known-good ranges.
func Fallback() []Entry { return cloneEntries(fallback) }

func Scripts() []Entry  { return cloneEntries(scripts) }
func GitHooks() []Entry { return cloneEntries(gitHooks) }

func LintStaged() []StagedRule {
	out := make([]StagedRule, len(lintStaged))
	for i, r := range lintStaged {
		out[i] = StagedRule{Glob: r.Glob, Commands: append([]string(nil), r.Commands...)}
	}
	return out
}

func ConfigFilesToClean() []string  { return cloneStrings(configFilesToClean) }
func DependenciesToClean() []string { return cloneStrings(dependenciesToClean) }
func ScriptsToClean() []string      { return cloneStrings(scriptsToClean) }
func BlocksToClean() []string       { return cloneStrings(blocksToClean) }
func TemplateFiles() []string       { return cloneStrings(templateFiles) }

// Validate checks the tables are consistent: both dependency sets name the
// same packages and every fallback value is a valid semver range.
func Validate() error {
	if len(latest) != len(fallback) {
		return fmt.Errorf("latest has %d dependencies, fallback has %d", len(latest), len(fallback))
	}
	pinned := make(map[string]string, len(fallback))
	for _, e := range fallback {
		if _, err := semver.NewConstraint(e.Value); err != nil {
			return fmt.Errorf("fallback %s: invalid range %q: %w", e.Name, e.Value, err)
		}
		pinned[e.Name] = e.Value
	}
	for _, e := range latest {
		if _, ok := pinned[e.Name]; !ok {
			return fmt.Errorf("dependency %s has no fallback range", e.Name)
		}
	}
	return nil
}

// FallbackConstraint returns the parsed fallback range for a dependency.
func FallbackConstraint(name string) (*semver.Constraints, bool) {
	for _, e := range fallback {
		if e.Name == name {
			c, err := semver.NewConstraint(e.Value)
			if err != nil {
				return nil, false
			}
			return c, true
		}
	}
	return nil, false
}

func cloneEntries(in []Entry) []Entry {
	return append([]Entry(nil), in...)
}

func cloneStrings(in []string) []string {
	return append([]string(nil), in...)
}
