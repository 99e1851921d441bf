package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JuanVilla424/devtools/internal/config"
	"github.com/JuanVilla424/devtools/internal/installer"
	"github.com/JuanVilla424/devtools/internal/pathutil"
	"github.com/JuanVilla424/devtools/internal/prompt"
	"github.com/JuanVilla424/devtools/internal/templates"
	"github.com/JuanVilla424/devtools/internal/ui"
)

var version = "1.0.0"

// installFunc runs one install with fully resolved options.
type installFunc func(ctx context.Context, opts installer.Options) error

func runInstall(ctx context.Context, opts installer.Options) error {
	_, err := installer.New(opts).Run(ctx)
	return err
}

func main() {
	pathutil.AugmentPath()

	if err := newRootCmd(runInstall).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(install installFunc) *cobra.Command {
	var debugFlag bool

	rootCmd := &cobra.Command{
		Use:           "devtools",
		Short:         "Install the lint and commit toolchain into a project",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var dirFlag string

	installCmd := &cobra.Command{
		Use:   "install [directory]",
		Short: "Install the toolchain into a project (default: current directory)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report := ui.New(cmd.OutOrStdout(), cmd.ErrOrStderr())

			cfg, err := config.Load()
			if err != nil {
				report.Fail("config: %v", err)
				return fmt.Errorf("config: %w", err)
			}
			if debugFlag {
				cfg.Debug = true
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.Debug)
			logger.Debug("config loaded", "path", config.Path(), "templates_dir", cfg.TemplatesDir, "no_prompt", cfg.NoPrompt)

			dir, err := targetDir(dirFlag, args)
			if err != nil {
				report.Fail("%v", err)
				return err
			}

			var resolver prompt.Resolver
			if cfg.NoPrompt {
				resolver = prompt.Disabled
			} else {
				resolver = prompt.Auto(os.Stdin, os.Stdout)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			report.Title("Installing devtools into " + dir)
			err = install(ctx, installer.Options{
				Dir:       dir,
				Resolver:  resolver,
				Templates: templates.Source(cfg.TemplatesDir),
				Reporter:  report,
				Logger:    logger,
			})
			if err != nil {
				// Already reported by the installer.
				return err
			}
			report.Title("devtools installed")
			return nil
		},
	}
	installCmd.Flags().StringVarP(&dirFlag, "dir", "d", "", "Target project directory (overrides the positional argument)")

	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(installCmd)
	return rootCmd
}

// targetDir picks --dir over the positional argument over the working
// directory and makes the result absolute.
func targetDir(flag string, args []string) (string, error) {
	dir := flag
	if dir == "" && len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	return abs, nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
