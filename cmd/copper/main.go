package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"copper/internal/prof"
	"copper/internal/version"
)

// exitError carries the process exit code. A nil err means the code is
// the whole message (offenses found).
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// usageError is an invocation problem: bad flags, bad config, missing paths.
func usageError(err error) error { return &exitError{code: 2, err: err} }

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	// ошибки разбора флагов cobra и прочие ошибки вызова
	return 2
}

func newRootCmd() *cobra.Command {
	opts := &lintOptions{}
	var profiling prof.Options
	root := &cobra.Command{
		Use:           "copper [flags] [paths...]",
		Short:         "Fast Ruby linter",
		Long:          "copper checks Ruby sources against RuboCop-compatible rules configured by .rubocop.yml",
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			debug, err := cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("failed to get debug flag: %w", err)
			}
			setupLogging(cmd, debug)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := prof.Start(profiling)
			if err != nil {
				return usageError(err)
			}
			defer func() {
				if stopErr := session.Stop(); stopErr != nil {
					slog.Warn("profiling", slog.Any("err", stopErr))
				}
			}()
			return runLint(cmd, args, opts)
		},
	}
	root.PersistentFlags().Bool("debug", false, "log debug information to stderr")
	root.Flags().StringVar(&profiling.CPU, "cpu-profile", "", "write a CPU profile to file")
	root.Flags().StringVar(&profiling.Mem, "mem-profile", "", "write a heap profile to file")
	root.Flags().StringVar(&profiling.Trace, "runtime-trace", "", "write a runtime trace to file")
	registerLintFlags(root, opts)

	root.AddCommand(newVersionCmd())
	root.AddCommand(newCacheCmd())
	return root
}

func setupLogging(cmd *cobra.Command, debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func main() {
	root := newRootCmd()
	err := root.Execute()
	if err != nil {
		var ee *exitError
		if !errors.As(err, &ee) || ee.err != nil {
			fmt.Fprintf(os.Stderr, "copper: %v\n", err)
		}
	}
	os.Exit(exitCode(err))
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
