package changelog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	yamlcheck "github.com/ariel-frischer/draft-release/internal/yaml"
)

// ValidationError represents a release.yml validation error with context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Load reads and validates a release.yml document. location is a file path
// or an http(s) URL.
func Load(ctx context.Context, location string) (*Document, error) {
	if IsRemote(location) {
		return fetchFromURL(ctx, location)
	}
	return LoadFile(location)
}

// LoadFile reads and validates a release.yml file from the given path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading categories file: %w", err)
	}
	return LoadFromReader(bytes.NewReader(data))
}

// LoadFromReader reads and validates a release.yml document from r.
func LoadFromReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading categories: %w", err)
	}

	if err := yamlcheck.ValidateSyntax(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("parsing categories YAML: %w", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing categories YAML: %w", err)
	}

	if err := Validate(&doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// Validate checks that a Document has a usable category list.
func Validate(d *Document) error {
	if len(d.Changelog.Categories) == 0 {
		return &ValidationError{Field: "changelog.categories", Message: "at least one category is required"}
	}

	for i, c := range d.Changelog.Categories {
		field := fmt.Sprintf("changelog.categories[%d]", i)

		if strings.TrimSpace(c.Title) == "" {
			return &ValidationError{Field: field + ".title", Message: "required field is empty"}
		}
		if len(c.Labels) == 0 {
			return &ValidationError{Field: field + ".labels", Message: "at least one label is required"}
		}
		for j, l := range c.Labels {
			if strings.TrimSpace(l) == "" {
				return &ValidationError{
					Field:   fmt.Sprintf("%s.labels[%d]", field, j),
					Message: "label cannot be empty",
				}
			}
		}
	}

	return nil
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
