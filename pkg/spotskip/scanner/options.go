// Package scanner finds development-dependency directories beneath a root
// by walking the tree with fastwalk. Traversal is pruned: once a directory
// matches, nothing beneath it is visited, so the cost is proportional to
// the surviving tree rather than the (often enormous) dependency subtrees.
package scanner

import "github.com/spotskip/spotskip/pkg/spotskip/config"

// Options configures the scanner behavior.
type Options struct {
	// Root is the starting directory for the scan. The root itself is
	// never a candidate, only directories beneath it.
	Root string

	// Names are the directory basenames to match. Comparison is
	// case-sensitive and exact; an empty set yields no matches.
	Names []string

	// Workers is the number of fastwalk workers. The default of 1 keeps
	// the walk strictly sequential.
	Workers int

	// OnMatch is called for every matched path as it is discovered.
	// Optional.
	OnMatch func(path string)
}

// DefaultOptions returns options with the built-in ignore names.
func DefaultOptions() Options {
	return Options{
		Root:    config.DefaultPath,
		Names:   config.DefaultIgnoreNames,
		Workers: 1,
	}
}

// Validate checks the options and fills in defaults for invalid values.
func (o *Options) Validate() error {
	if o.Root == "" {
		o.Root = config.DefaultPath
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	return nil
}
