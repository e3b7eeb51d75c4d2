// Package exclusions implements the merge logic for Spotlight exclusion
// lists. It decides which freshly discovered paths actually need to be
// added to the volume configuration, given that Spotlight treats an
// exclusion as covering the whole subtree beneath it.
package exclusions

import (
	"path/filepath"
	"strings"
)

// Normalize cleans a path for comparison: it resolves "." and ".."
// segments and strips trailing separators. Paths must be normalized before
// any containment check to avoid false negatives like "/p/vendor/" vs
// "/p/vendor".
func Normalize(path string) string {
	return filepath.Clean(path)
}

// IsDescendant reports whether path lies strictly beneath ancestor.
// Both arguments are expected to be normalized absolute paths; a path is
// never a descendant of itself.
func IsDescendant(path, ancestor string) bool {
	if path == ancestor {
		return false
	}
	return strings.HasPrefix(path, ancestor+string(filepath.Separator))
}

// descendantOfAny reports whether path lies beneath any entry of paths.
func descendantOfAny(path string, paths []string) bool {
	for _, p := range paths {
		if IsDescendant(path, p) {
			return true
		}
	}
	return false
}

// Merge returns the candidates that need to be appended to the existing
// exclusion list, in candidate order. A candidate is dropped when it is
// already an exact entry, when an existing entry already covers it, or
// when an earlier accepted candidate already covers it. Existing entries
// are compared as given: a store that already contains nested entries is
// left alone rather than repaired.
//
// Merge is a pure function of its inputs and their order, and it
// converges: merging the same candidates into a list that already absorbed
// them yields nothing.
func Merge(existing, candidates []string) []string {
	normalized := make([]string, len(existing))
	for i, e := range existing {
		normalized[i] = Normalize(e)
	}

	present := make(map[string]struct{}, len(normalized))
	for _, e := range normalized {
		present[e] = struct{}{}
	}

	accepted := make([]string, 0, len(candidates))
	for _, c := range candidates {
		c = Normalize(c)
		if _, ok := present[c]; ok {
			continue
		}
		if descendantOfAny(c, normalized) {
			continue
		}
		if descendantOfAny(c, accepted) {
			continue
		}
		accepted = append(accepted, c)
	}
	return accepted
}

// Apply concatenates the existing list with the accepted additions,
// preserving the relative order of each. Entries are never removed.
func Apply(existing, additions []string) []string {
	updated := make([]string, 0, len(existing)+len(additions))
	updated = append(updated, existing...)
	updated = append(updated, additions...)
	return updated
}
