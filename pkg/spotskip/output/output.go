// Package output provides formatters for displaying spotskip run results
// in various output formats (pretty, plain, json, yaml).
//
// The package uses a registry pattern so formatters can be selected at
// runtime by name:
//
//	formatter, err := output.Get("pretty")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	var buf bytes.Buffer
//	if err := formatter.Format(&buf, result); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(buf.String())
package output

import (
	"bytes"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Stats contains statistics about the scan phase of a run.
type Stats struct {
	// DirsScanned is the number of directories visited.
	DirsScanned int64 `json:"dirs_scanned" yaml:"dirs_scanned"`

	// Elapsed is the time the scan took.
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
}

// Result contains the complete outcome of a spotskip run for formatting.
type Result struct {
	// Root is the directory that was scanned.
	Root string `json:"root" yaml:"root"`

	// Names are the directory names that were searched for, sorted.
	Names []string `json:"names" yaml:"names"`

	// Matched are all directories found during the scan.
	Matched []string `json:"matched" yaml:"matched"`

	// Added are the paths newly appended to the Spotlight exclusions,
	// in discovery order.
	Added []string `json:"added" yaml:"added"`

	// AlreadyCovered is the number of matches skipped because an existing
	// or earlier exclusion already covers them.
	AlreadyCovered int `json:"already_covered" yaml:"already_covered"`

	// TotalExclusions is the size of the exclusion list after the run.
	TotalExclusions int `json:"total_exclusions" yaml:"total_exclusions"`

	// BackupPath is where the volume configuration was backed up, empty
	// on dry runs and when nothing was written.
	BackupPath string `json:"backup_path,omitempty" yaml:"backup_path,omitempty"`

	// DryRun indicates nothing was persisted.
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// ServiceRestarted indicates the metadata server restart succeeded.
	ServiceRestarted bool `json:"service_restarted" yaml:"service_restarted"`

	// Stats contains scan statistics.
	Stats Stats `json:"stats" yaml:"stats"`

	// Warnings contains non-fatal problems encountered during the run.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Formatter is the interface that all output formatters must implement.
type Formatter interface {
	// Format writes the formatted output to the buffer.
	Format(w *bytes.Buffer, r *Result) error
}

// FormatterFactory is a function that creates a new Formatter instance.
type FormatterFactory func() Formatter

// Registry manages formatter registration and lookup.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]FormatterFactory
}

// NewRegistry creates a new formatter registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]FormatterFactory),
	}
}

// Register adds a formatter factory to the registry.
// It will replace any existing formatter with the same name.
func (r *Registry) Register(name string, factory FormatterFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get returns a new formatter instance by name.
func (r *Registry) Get(name string) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown formatter: %s", name)
	}
	return factory(), nil
}

// Available returns a sorted list of all registered formatter names.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global formatter registry.
var DefaultRegistry = NewRegistry()

// Register adds a formatter factory to the default registry.
func Register(name string, factory FormatterFactory) {
	DefaultRegistry.Register(name, factory)
}

// Get returns a new formatter instance from the default registry.
func Get(name string) (Formatter, error) {
	return DefaultRegistry.Get(name)
}

// Available returns all formatter names from the default registry.
func Available() []string {
	return DefaultRegistry.Available()
}

// formatDuration renders a duration with millisecond precision, which is
// plenty for a directory walk.
func formatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
