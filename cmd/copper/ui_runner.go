package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"copper/internal/linter"
	"copper/internal/ui"
)

type lintOutcome struct {
	result *linter.Result
	err    error
}

// runLintWithUI runs the linter in the background and renders events on
// stderr. events must already be wired into the linter's progress sink.
func runLintWithUI(ctx context.Context, l *linter.Linter, targets []linter.Target, events chan linter.Event) (*linter.Result, error) {
	if l == nil {
		return nil, fmt.Errorf("missing linter")
	}
	outcomeCh := make(chan lintOutcome, 1)
	go func() {
		res, err := l.Run(ctx, targets)
		outcomeCh <- lintOutcome{result: res, err: err}
		close(events)
	}()

	files := make([]string, 0, len(targets))
	for _, t := range targets {
		files = append(files, t.Display)
	}
	model := ui.NewProgressModel("Inspecting", files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()

	// после ctrl+c воркеры всё ещё пишут в канал
	for range events {
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
