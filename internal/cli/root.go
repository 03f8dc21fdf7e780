// Package cli implements the journal command-line interface. It is the
// collaborator that gathers input, resolves paths, and renders results;
// all persistence goes through internal/journal.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/journal/internal/journal"
	"github.com/mesh-intelligence/journal/internal/paths"
	"github.com/mesh-intelligence/journal/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
}

// app carries the state shared by the subcommands of one invocation.
type app struct {
	flags     rootFlags
	configDir string
	dataDir   string
	logger    *slog.Logger
}

// NewRootCmd creates the top-level "journal" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	root := &cobra.Command{
		Use:   "journal",
		Short: "Record skill practice, milestones, and reflections",
		Long: "Journal keeps skill-practice records, milestones, and reflections in\n" +
			"crash-safe JSON files and shows them back per category or merged by time.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.journal-db)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "verbose logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newLogCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newAllCmd(a))
	root.AddCommand(newExportCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "journal:", err)
		os.Exit(exitCode(err))
	}
}

// setup resolves directories, reads config.yaml, and installs the logger.
func (a *app) setup(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}

	level := parseLevel(cfg.GetString(cfgKeyLogLevel))
	if a.flags.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.configDir = configDir
	a.dataDir = dataDir
	a.logger.Debug("directories resolved", "config_dir", configDir, "data_dir", dataDir)
	return nil
}

// openRegistry opens the journal under the resolved data directory.
func (a *app) openRegistry() (*journal.Registry, error) {
	r, err := journal.Open(types.Config{DataDir: a.dataDir}, journal.WithLogger(a.logger))
	if err != nil {
		return nil, sysError(fmt.Errorf("open journal: %w", err))
	}
	return r, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	}
	return slog.LevelWarn
}

// codeError attaches an exit code to an error.
type codeError struct {
	code int
	err  error
}

func (e *codeError) Error() string { return e.err.Error() }
func (e *codeError) Unwrap() error { return e.err }

func sysError(err error) error {
	return &codeError{code: exitSysError, err: err}
}

// exitCode maps an error returned by a command to a process exit code:
// rejected input is a user error, failed writes are system errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ce *codeError
	if errors.As(err, &ce) {
		return ce.code
	}
	if types.IsWrite(err) {
		return exitSysError
	}
	return exitUserError
}
