package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/mattn/go-isatty"

	"github.com/imamik/stepform/internal/config"
	"github.com/imamik/stepform/internal/form"
	"github.com/imamik/stepform/internal/logging"
	"github.com/imamik/stepform/internal/metrics"
	"github.com/imamik/stepform/internal/schema"
	"github.com/imamik/stepform/internal/stepper"
	"github.com/imamik/stepform/internal/submit"
	"github.com/imamik/stepform/internal/ui/tui"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// isTerminal reports whether stdout is an interactive terminal.
	isTerminal = func() bool {
		fd := os.Stdout.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}

	// loadDefinition loads the form definition; an empty path means built-in.
	loadDefinition = func(path string) (*config.Definition, error) {
		if path == "" {
			return config.Default(), nil
		}
		return config.LoadFile(path)
	}

	// loadAnswers reads answers for headless runs.
	loadAnswers = config.LoadAnswers

	// newSubmitHandler selects the submit handler.
	newSubmitHandler = submit.New

	// runTUI drives the wizard interactively.
	runTUI = func(ctx context.Context, title string, seq *stepper.Sequencer, state *form.State) error {
		return tui.Run(ctx, title, seq, state)
	}

	// logOutput receives log lines.
	logOutput io.Writer = os.Stderr
)

// Run builds the wizard described by the settings and drives it to a
// submit, interactively when stdout is a terminal and no answers file is
// given, headless otherwise.
func Run(ctx context.Context, settings *config.Settings) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log := logging.New(logOutput, settings.Verbosity)

	def, err := loadDefinition(settings.Definition)
	if err != nil {
		return err
	}

	steps, fields, err := def.Build()
	if err != nil {
		return fmt.Errorf("failed to build wizard: %w", err)
	}

	state, err := form.NewState(fields)
	if err != nil {
		return fmt.Errorf("failed to initialize form state: %w", err)
	}

	handler, err := newSubmitHandler(ctx, settings.Submit, log.WithName("submit"))
	if err != nil {
		return err
	}

	recorder := metrics.NewRecorder()
	if settings.MetricsAddr != "" {
		serveMetrics(ctx, recorder, settings.MetricsAddr, log)
	}

	seq, err := stepper.New(steps, handler,
		stepper.WithLogger(log.WithName("wizard")),
		stepper.WithObserver(recorder),
	)
	if err != nil {
		return err
	}

	if settings.Answers != "" || !isTerminal() {
		return runHeadless(ctx, seq, state, settings.Answers)
	}

	if err := runTUI(ctx, def.Title, seq, state); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			printAborted(seq.Pending())
		}
		return err
	}

	fmt.Println("Form submitted.")
	return nil
}

// printAborted tells the user whether the submit handler may have run.
func printAborted(submitting bool) {
	if submitting {
		fmt.Println("Aborted while submitting; the submission may have been delivered.")
		return
	}
	fmt.Println("Aborted, nothing was submitted.")
}

func serveMetrics(ctx context.Context, recorder *metrics.Recorder, addr string, log logr.Logger) {
	log.V(1).Info("serving metrics", "addr", addr)
	go func() {
		if err := recorder.Serve(ctx, addr); err != nil {
			log.Error(err, "metrics server stopped")
		}
	}()
}

// runHeadless applies the answers and advances through every step. The
// first step that fails validation stops the run.
func runHeadless(ctx context.Context, seq *stepper.Sequencer, state *form.State, answersPath string) error {
	if answersPath != "" {
		answers, err := loadAnswers(answersPath)
		if err != nil {
			return err
		}
		if err := state.SetAll(answers); err != nil {
			return fmt.Errorf("invalid answers: %w", err)
		}
	}

	for {
		step := seq.ActiveStep()
		tr, err := seq.Advance(state.Values())
		if err != nil {
			printStepResult(step.Label, err)
			return fmt.Errorf("step %q: %w", step.Label, err)
		}
		printStepResult(step.Label, nil)

		if tr == stepper.SubmitRequested {
			break
		}
	}

	fmt.Println("Submitting...")
	if err := seq.Submit(ctx, state.Values()); err != nil {
		return fmt.Errorf("submit failed: %w", err)
	}

	fmt.Println("Form submitted.")
	return nil
}

// printStepResult prints one line per step, followed by its field errors.
func printStepResult(label string, err error) {
	if err == nil {
		fmt.Printf("[OK] %s\n", label)
		return
	}

	fmt.Printf("[!!] %s\n", label)
	ve, ok := schema.AsValidationError(err)
	if !ok {
		fmt.Printf("       %v\n", err)
		return
	}
	for _, name := range ve.FieldNames() {
		if name == "" {
			fmt.Printf("       %s\n", ve.Fields[name])
			continue
		}
		fmt.Printf("       %s: %s\n", name, ve.Fields[name])
	}
}
