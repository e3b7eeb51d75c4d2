package scanner

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charlievieth/fastwalk"
)

// ErrRootNotFound indicates the scan root does not exist.
var ErrRootNotFound = errors.New("scan root does not exist")

// ErrRootNotDir indicates the scan root exists but is not a directory.
var ErrRootNotDir = errors.New("scan root is not a directory")

// Warning records a subtree that could not be read. Warnings never abort
// a scan; the unreadable subtree is skipped and the walk continues.
type Warning struct {
	// Path is the directory or entry where the problem occurred.
	Path string `json:"path"`

	// Err is the error message describing what went wrong.
	Err string `json:"error"`
}

// Result contains the outcome of a scan.
type Result struct {
	// Matches are the absolute paths of matched directories, sorted
	// lexicographically. Pruning guarantees no two entries are in an
	// ancestor-descendant relationship.
	Matches []string `json:"matches"`

	// DirsScanned is the number of directories visited, matched
	// directories included but their contents excluded.
	DirsScanned int64 `json:"dirs_scanned"`

	// Elapsed is the total time taken to complete the scan.
	Elapsed time.Duration `json:"elapsed"`

	// Warnings contains any unreadable subtrees encountered.
	Warnings []Warning `json:"warnings,omitempty"`
}

// Scanner walks a directory tree looking for directories whose basename is
// in the configured name set.
type Scanner struct {
	opts  Options
	names map[string]struct{}

	// root is the resolved absolute path being scanned.
	root string

	dirsScanned atomic.Int64

	matches   []string
	matchesMu sync.Mutex

	warnings   []Warning
	warningsMu sync.Mutex
}

// New creates a new Scanner with the given options.
func New(opts Options) *Scanner {
	_ = opts.Validate()

	names := make(map[string]struct{}, len(opts.Names))
	for _, n := range opts.Names {
		names[n] = struct{}{}
	}

	return &Scanner{
		opts:     opts,
		names:    names,
		matches:  make([]string, 0),
		warnings: make([]Warning, 0),
	}
}

// Scan walks the tree and returns the matched directories. It blocks until
// the walk finishes or the context is cancelled. Matched directories are
// yielded without descending into them, so a node_modules nested inside
// another node_modules is never reported.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	startTime := time.Now()

	root, err := s.validateRoot()
	if err != nil {
		return nil, err
	}
	s.root = root

	conf := fastwalk.Config{
		Follow:     false, // Never resolve symlinks; a link cycle must not loop the walk.
		NumWorkers: s.opts.Workers,
		Sort:       fastwalk.SortLexical,
	}

	walkErr := fastwalk.Walk(&conf, root, s.walkFunc(ctx))
	if walkErr != nil && !errors.Is(walkErr, context.Canceled) {
		return nil, walkErr
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Workers may finish out of order; sorting keeps the output
	// reproducible run to run.
	sort.Strings(s.matches)

	return &Result{
		Matches:     s.matches,
		DirsScanned: s.dirsScanned.Load(),
		Elapsed:     time.Since(startTime),
		Warnings:    s.warnings,
	}, nil
}

// validateRoot resolves the root path to absolute and verifies it is an
// existing directory.
func (s *Scanner) validateRoot() (string, error) {
	root, err := filepath.Abs(s.opts.Root)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrRootNotFound
		}
		return "", err
	}
	if !info.IsDir() {
		return "", ErrRootNotDir
	}

	return root, nil
}

// walkFunc returns the callback for fastwalk.Walk.
func (s *Scanner) walkFunc(ctx context.Context) fs.WalkDirFunc {
	return func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return context.Canceled
		}

		// Unreadable entries become warnings; the walk continues.
		if err != nil {
			s.addWarning(path, err)
			return nil
		}

		// The root is the search space, never a candidate.
		if path == s.root {
			return nil
		}

		if d.IsDir() {
			s.dirsScanned.Add(1)
			if s.nameMatches(d.Name()) {
				s.addMatch(path)
				return fastwalk.SkipDir
			}
			return nil
		}

		// A symlink whose basename matches is reported like a directory
		// match. It is never followed, so there is nothing to prune.
		if d.Type()&fs.ModeSymlink != 0 && s.nameMatches(d.Name()) {
			s.addMatch(path)
		}

		return nil
	}
}

func (s *Scanner) nameMatches(name string) bool {
	_, ok := s.names[name]
	return ok
}

// addMatch records a matched path thread-safely and fires the OnMatch
// callback.
func (s *Scanner) addMatch(path string) {
	s.matchesMu.Lock()
	s.matches = append(s.matches, path)
	s.matchesMu.Unlock()

	if s.opts.OnMatch != nil {
		s.opts.OnMatch(path)
	}
}

// addWarning records a traversal warning thread-safely.
func (s *Scanner) addWarning(path string, err error) {
	s.warningsMu.Lock()
	s.warnings = append(s.warnings, Warning{
		Path: path,
		Err:  err.Error(),
	})
	s.warningsMu.Unlock()
}
