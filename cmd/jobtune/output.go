package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Haloween-arch/Jobtune/internal/observability"
	"github.com/Haloween-arch/Jobtune/internal/schemas"
)

// writeOutput encodes v as indented JSON to path, or stdout when path is
// empty. The document is checked against schemaName first; a mismatch is
// reported as a warning only.
func writeOutput(path, schemaName string, v any) error {
	if schemaName != "" {
		if err := schemas.ValidateDocument(schemaName, v); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: output does not validate against schema %s: %v\n", schemaName, err)
		}
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// splitSkillsFlag turns a comma-separated --skills value into a list.
func splitSkillsFlag(value string) []string {
	var skills []string
	for _, s := range strings.Split(value, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// printer returns a stderr printer in verbose mode, nil otherwise.
func printer() *observability.Printer {
	if !verbose {
		return nil
	}
	return observability.NewPrinter(os.Stderr)
}
