package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/stepform/internal/form"
	"github.com/imamik/stepform/internal/stepper"
)

// Run drives seq interactively until the submit succeeds or the user quits.
// It returns ErrAborted when the user quits first.
func Run(ctx context.Context, title string, seq *stepper.Sequencer, state *form.State, opts ...tea.ProgramOption) error {
	m, err := New(ctx, title, seq, state)
	if err != nil {
		return err
	}

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	fm := finalModel.(Model)
	switch {
	case fm.Err != nil:
		return fm.Err
	case fm.Aborted:
		return ErrAborted
	}
	return nil
}
