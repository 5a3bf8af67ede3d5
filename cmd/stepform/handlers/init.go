package handlers

import (
	"fmt"
	"os"

	"github.com/imamik/stepform/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// writeFile writes data to a file.
	writeFile = os.WriteFile
)

// Init writes the built-in definition to outputPath as a starting point.
func Init(outputPath string) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	if err := writeFile(outputPath, config.DefaultYAML(), 0600); err != nil {
		return fmt.Errorf("failed to write definition: %w", err)
	}

	fmt.Printf("Definition written to %s\n", outputPath)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  stepform validate --definition %s\n", outputPath)
	fmt.Printf("  stepform run --definition %s\n", outputPath)
	return nil
}
