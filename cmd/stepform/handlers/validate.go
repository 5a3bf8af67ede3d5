package handlers

import (
	"fmt"

	"github.com/imamik/stepform/internal/form"
)

// Validate loads and compiles a definition and prints a summary. When an
// answers file is given, every step's schema is checked against it and all
// failing steps are reported.
func Validate(definitionPath, answersPath string) error {
	def, err := loadDefinition(definitionPath)
	if err != nil {
		return err
	}

	steps, fields, err := def.Build()
	if err != nil {
		return fmt.Errorf("failed to build wizard: %w", err)
	}

	source := definitionPath
	if source == "" {
		source = "built-in"
	}
	fmt.Printf("Definition: %s\n", source)
	if def.Title != "" {
		fmt.Printf("Title:      %s\n", def.Title)
	}
	fmt.Println()
	for i, s := range steps {
		schemaNote := ""
		if s.Schema != nil {
			schemaNote = ", schema"
		}
		fmt.Printf("  %d. %s (%d fields%s)\n", i+1, s.Label, len(s.Fields), schemaNote)
	}

	if answersPath == "" {
		return nil
	}

	answers, err := loadAnswers(answersPath)
	if err != nil {
		return err
	}
	state, err := form.NewState(fields)
	if err != nil {
		return fmt.Errorf("failed to initialize form state: %w", err)
	}
	if err := state.SetAll(answers); err != nil {
		return fmt.Errorf("invalid answers: %w", err)
	}

	fmt.Println()
	failed := 0
	values := state.Values()
	for _, s := range steps {
		var verr error
		if s.Schema != nil {
			verr = s.Schema.Validate(values)
		}
		if verr != nil {
			failed++
		}
		printStepResult(s.Label, verr)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d steps failed", errAnswersInvalid, failed, len(steps))
	}
	return nil
}
