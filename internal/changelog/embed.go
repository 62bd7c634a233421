package changelog

import (
	"bytes"
	_ "embed"
)

//go:embed example.yml
var exampleDocument []byte

// Example returns a starter release.yml with the conventional categories.
func Example() []byte {
	return exampleDocument
}

// LoadExample parses the embedded starter document.
func LoadExample() (*Document, error) {
	return LoadFromReader(bytes.NewReader(exampleDocument))
}
