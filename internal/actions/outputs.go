package actions

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

const delimiterPrefix = "ghadelimiter_"

// Outputs records step outputs and, when a path is set, appends them to the
// runner's output file using the heredoc form so multi-line values survive.
type Outputs struct {
	path string
	log  logr.Logger

	mu     sync.Mutex
	values map[string]string
	order  []string

	newDelimiter func() string
	openFile     func(path string) (io.WriteCloser, error)
}

func appendFile(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}

// NewOutputs returns Outputs writing to path. An empty path only records
// values in memory.
func NewOutputs(path string, log logr.Logger) *Outputs {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Outputs{
		path:     path,
		log:      log,
		values:   make(map[string]string),
		openFile: appendFile,
		newDelimiter: func() string {
			return delimiterPrefix + uuid.NewString()
		},
	}
}

// SetOutput records name=value and appends it to the output file.
func (o *Outputs) SetOutput(name, value string) error {
	if name == "" {
		return fmt.Errorf("output name must not be empty")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if _, seen := o.values[name]; !seen {
		o.order = append(o.order, name)
	}
	o.values[name] = value
	o.log.V(1).Info("set output", "name", name, "bytes", len(value))

	if o.path == "" {
		return nil
	}

	entry, err := o.format(name, value)
	if err != nil {
		return err
	}

	f, err := o.openFile(o.path)
	if err != nil {
		return fmt.Errorf("opening output file: %w", err)
	}

	if _, err := io.WriteString(f, entry); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing output %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}

func (o *Outputs) format(name, value string) (string, error) {
	delim := o.newDelimiter()
	if strings.Contains(name, delim) {
		return "", fmt.Errorf("output name %q contains the delimiter", name)
	}
	if strings.Contains(value, delim) {
		return "", fmt.Errorf("output %s value contains the delimiter", name)
	}
	return fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delim, value, delim), nil
}

// Get returns the recorded value of name.
func (o *Outputs) Get(name string) (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	v, ok := o.values[name]
	return v, ok
}

// Names returns the recorded output names in the order first set.
func (o *Outputs) Names() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	names := make([]string, len(o.order))
	copy(names, o.order)
	return names
}
