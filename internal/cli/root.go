// Package cli implements the insurebook command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/insurebook/internal/logging"
	"github.com/mesh-intelligence/insurebook/internal/paths"
	"github.com/mesh-intelligence/insurebook/pkg/types"
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
	yamlMode  bool
}

// app is the state shared by one command tree.
type app struct {
	flags     rootFlags
	configDir string
	cfg       Config
	logger    *slog.Logger
	closeLog  func() error

	// started is set once argument and flag validation have passed.
	started bool
}

// NewRootCmd creates the top-level "insurebook" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newApp().rootCmd()
}

func newApp() *app {
	return &app{
		cfg:      defaultConfig(),
		logger:   logging.Discard(),
		closeLog: func() error { return nil },
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "insurebook",
		Short: "An insurance agent's book of clients, policies and contracts",
		Long: "insurebook keeps contacts, the policies they can sign, the contracts\n" +
			"binding them, and appointments with them, in a local data directory.",
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error { return a.closeLog() },
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVar(&a.flags.yamlMode, "yaml", false, "output in YAML format")
	root.MarkFlagsMutuallyExclusive("json", "yaml")

	root.AddCommand(
		newVersionCmd(),
		a.newInitCmd(),
		a.newContactCmd(),
		a.newPolicyCmd(),
		a.newContractCmd(),
		a.newAppointmentCmd(),
		a.newBackupCmd(),
		a.newClearCmd(),
	)
	return root
}

// setup resolves the configuration directory, loads config.yaml and builds
// the logger. It runs before every subcommand.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	// Cobra checks these only after the persistent hooks have run.
	if err := cmd.ValidateRequiredFlags(); err != nil {
		return &userError{err: err}
	}
	if err := cmd.ValidateFlagGroups(); err != nil {
		return &userError{err: err}
	}
	a.started = true
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config directory: %w", err)
	}
	a.configDir = configDir

	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger, a.closeLog = logging.New(cfg.Log.toLogging(), cmd.ErrOrStderr())
	return nil
}

// Execute runs the command line in os.Args and returns the process exit code.
func Execute() int {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}

// Run executes args against a fresh command tree, writing command output to
// stdout and errors to stderr, and returns the exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	a := newApp()
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(stderr, "Error:", err)
	if !a.started {
		// Unknown commands, bad flags and wrong argument counts.
		return exitUserError
	}
	return exitCode(err)
}

// userError marks an error the user can fix by changing the command line.
type userError struct {
	err error
}

func (e *userError) Error() string { return e.err.Error() }
func (e *userError) Unwrap() error { return e.err }

func userErrorf(format string, args ...any) error {
	return &userError{err: fmt.Errorf(format, args...)}
}

// exitCode maps err to exitUserError for the book's recoverable error
// taxonomy and for userErrors, and to exitSysError for everything else.
func exitCode(err error) int {
	var ue *userError
	if errors.As(err, &ue) || types.IsUserError(err) {
		return exitUserError
	}
	return exitSysError
}
