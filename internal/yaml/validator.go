// Package yaml validates YAML documents before they are decoded, so syntax
// problems are reported with a line and column instead of a decode error.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValidationError represents a YAML syntax error with location info.
type ValidationError struct {
	File    string
	Line    int
	Column  int
	Message string
}

func (e *ValidationError) Error() string {
	switch {
	case e.File != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
	case e.File != "":
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
	default:
		return e.Message
	}
}

// ValidateSyntax validates YAML syntax by streaming through every document
// in r. Returns nil if the YAML is syntactically valid, or a
// *ValidationError carrying the line of the first error.
func ValidateSyntax(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	for {
		var n yaml.Node
		if err := dec.Decode(&n); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return toValidationError(err)
		}
	}
}

// ValidateFile validates the YAML syntax of a file at the given path. A
// missing file is reported as an error; callers that treat the file as
// optional check for existence first.
func ValidateFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	if err := ValidateSyntax(f); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			ve.File = path
			return ve
		}
		return fmt.Errorf("YAML syntax error in %s: %w", path, err)
	}
	return nil
}

func toValidationError(err error) *ValidationError {
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		return &ValidationError{Message: strings.Join(typeErr.Errors, "; ")}
	}

	line, column := extractLineColumn(err.Error())
	return &ValidationError{
		Line:    line,
		Column:  column,
		Message: cleanMessage(err.Error()),
	}
}

// extractLineColumn pulls the location out of a yaml.v3 error message such
// as "yaml: line 5: could not find expected ':'". Returns 0, 0 if absent.
func extractLineColumn(msg string) (line, column int) {
	var l, c int
	if n, _ := fmt.Sscanf(msg, "yaml: line %d: column %d:", &l, &c); n == 2 {
		return l, c
	}
	if n, _ := fmt.Sscanf(msg, "yaml: line %d:", &l); n == 1 {
		return l, 1
	}
	return 0, 0
}

// cleanMessage removes the "yaml: line X:" prefix.
func cleanMessage(msg string) string {
	if !strings.HasPrefix(msg, "yaml:") {
		return msg
	}
	if idx := strings.LastIndex(msg, ": "); idx > 0 {
		return msg[idx+2:]
	}
	return strings.TrimSpace(strings.TrimPrefix(msg, "yaml:"))
}
