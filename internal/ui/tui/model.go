package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/imamik/stepform/internal/form"
	"github.com/imamik/stepform/internal/schema"
	"github.com/imamik/stepform/internal/stepper"
)

// Model is the Bubble Tea model for the wizard.
type Model struct {
	ctx   context.Context
	title string
	seq   *stepper.Sequencer
	state *form.State

	form    *huh.Form
	spinner spinner.Model

	// Errors from the last advance or submit
	fieldErrs map[string]string
	SubmitErr error

	// UI state
	Width   int
	Err     error
	Done    bool
	Aborted bool
}

// New creates a model showing the sequencer's active step. ctx is passed to
// the submit handler.
func New(ctx context.Context, title string, seq *stepper.Sequencer, state *form.State) (Model, error) {
	m := Model{
		ctx:   ctx,
		title: title,
		seq:   seq,
		state: state,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(activeStyle),
		),
	}

	f, err := m.buildForm()
	if err != nil {
		return Model{}, err
	}
	m.form = f
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.Aborted = true
			return m, tea.Quit
		case "esc":
			if m.locked() {
				return m, nil
			}
			if !m.fieldClaims(msg) {
				return m.retreat()
			}
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width

	case spinner.TickMsg:
		if !m.seq.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case submitDoneMsg:
		return m.resolve(msg.err)
	}

	if m.locked() {
		return m, nil
	}

	fm, cmd := m.form.Update(msg)
	if f, ok := fm.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		return m.advance()
	}
	return m, cmd
}

// locked reports whether input is ignored: during a submit and after the
// wizard is done.
func (m Model) locked() bool {
	return m.seq.Pending() || m.Done
}

// fieldClaims reports whether the focused field has an active binding for
// msg, such as esc while a select is filtering.
func (m Model) fieldClaims(msg tea.KeyMsg) bool {
	f := m.form.GetFocusedField()
	return f != nil && key.Matches(msg, f.KeyBinds()...)
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	values := m.state.Values()
	m.fieldErrs = nil

	tr, err := m.seq.Advance(values)
	if err != nil {
		m.setError(err)
		return m.reload()
	}

	m.SubmitErr = nil
	if tr == stepper.SubmitRequested {
		return m, tea.Batch(m.spinner.Tick, m.submitCmd(values))
	}
	return m.reload()
}

func (m Model) retreat() (tea.Model, tea.Cmd) {
	if err := m.seq.Retreat(); err != nil {
		if errors.Is(err, stepper.ErrFirstStep) {
			return m, nil
		}
		m.setError(err)
		return m, nil
	}
	m.fieldErrs = nil
	m.SubmitErr = nil
	return m.reload()
}

func (m Model) resolve(err error) (tea.Model, tea.Cmd) {
	if rerr := m.seq.ResolveSubmit(err); rerr != nil {
		m.SubmitErr = rerr
		return m.reload()
	}
	m.Done = true
	return m, tea.Quit
}

// submitCmd runs the handler off the event loop. It only touches the
// sequencer through RunSubmit; the result is applied by resolve.
func (m Model) submitCmd(values form.Values) tea.Cmd {
	ctx, seq := m.ctx, m.seq
	return func() tea.Msg {
		return submitDoneMsg{err: seq.RunSubmit(ctx, values)}
	}
}

// reload replaces the form with a fresh one for the active step. Values
// survive because every widget is bound to the shared state.
func (m Model) reload() (tea.Model, tea.Cmd) {
	f, err := m.buildForm()
	if err != nil {
		m.Err = err
		return m, tea.Quit
	}
	m.form = f
	return m, m.form.Init()
}

func (m Model) buildForm() (*huh.Form, error) {
	step := m.seq.ActiveStep()
	group, err := m.state.Group(step.Label, step.FieldNames())
	if err != nil {
		return nil, err
	}

	f := huh.NewForm(group).
		WithTheme(huh.ThemeCharm()).
		WithShowHelp(true)
	if m.Width > 0 {
		f = f.WithWidth(m.Width)
	}
	f.SubmitCmd = nil
	f.CancelCmd = nil
	return f, nil
}

func (m *Model) setError(err error) {
	if ve, ok := schema.AsValidationError(err); ok {
		m.fieldErrs = ve.Fields
		return
	}
	m.fieldErrs = map[string]string{"": err.Error()}
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
