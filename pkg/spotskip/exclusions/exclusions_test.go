package exclusions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "already clean", in: "/p/node_modules", want: "/p/node_modules"},
		{name: "trailing separator", in: "/p/vendor/", want: "/p/vendor"},
		{name: "dot segments", in: "/p/./sub/../vendor", want: "/p/vendor"},
		{name: "double separators", in: "/p//vendor", want: "/p/vendor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestIsDescendant(t *testing.T) {
	assert.True(t, IsDescendant("/p/vendor/sub", "/p/vendor"))
	assert.True(t, IsDescendant("/p/vendor/a/b/c", "/p/vendor"))
	assert.False(t, IsDescendant("/p/vendor", "/p/vendor"), "a path is not its own descendant")
	assert.False(t, IsDescendant("/p/vendor2", "/p/vendor"), "sibling with common prefix is not a descendant")
	assert.False(t, IsDescendant("/p/vendor", "/p/vendor/sub"))
}

func TestMerge_SkipsExactDuplicates(t *testing.T) {
	existing := []string{"/p/node_modules"}
	got := Merge(existing, []string{"/p/node_modules", "/p/target"})
	assert.Equal(t, []string{"/p/target"}, got)
}

func TestMerge_SkipsDescendantsOfExisting(t *testing.T) {
	existing := []string{"/p/vendor"}
	got := Merge(existing, []string{"/p/vendor/sub/vendor"})
	assert.Empty(t, got)
}

func TestMerge_SkipsDescendantsOfAcceptedCandidates(t *testing.T) {
	// Overlapping literal names at different depths can arrive from
	// --also-ignore even though the pruned scan never produces them.
	got := Merge(nil, []string{"/p/build", "/p/build/dist"})
	assert.Equal(t, []string{"/p/build"}, got)
}

func TestMerge_PreservesCandidateOrder(t *testing.T) {
	got := Merge(nil, []string{"/a/target", "/b/build"})
	assert.Equal(t, []string{"/a/target", "/b/build"}, got)
}

func TestMerge_NormalizesBeforeComparing(t *testing.T) {
	existing := []string{"/p/vendor/"}
	got := Merge(existing, []string{"/p/vendor", "/p/vendor/sub/"})
	assert.Empty(t, got)
}

func TestMerge_Idempotent(t *testing.T) {
	existing := []string{"/home/user/old"}
	candidates := []string{"/a/node_modules", "/b/target"}

	first := Merge(existing, candidates)
	assert.Equal(t, candidates, first)

	updated := Apply(existing, first)
	second := Merge(updated, candidates)
	assert.Empty(t, second, "a converged list must absorb the same candidates without new work")
}

func TestMerge_ToleratesNestedExistingEntries(t *testing.T) {
	// A store that already violates the no-nesting invariant is passed
	// through as-is; merge only refuses to make it worse.
	existing := []string{"/p/vendor", "/p/vendor/sub"}
	got := Merge(existing, []string{"/p/vendor/sub/deep", "/q/dist"})
	assert.Equal(t, []string{"/q/dist"}, got)
}

func TestMerge_NeverReturnsRelatedPairs(t *testing.T) {
	got := Merge(nil, []string{"/a", "/a/b", "/a/b/c", "/z/target", "/z/target/nested"})
	for i, p := range got {
		for j, q := range got {
			if i == j {
				continue
			}
			assert.False(t, IsDescendant(p, q), "%s and %s are related", p, q)
		}
	}
	assert.Equal(t, []string{"/a", "/z/target"}, got)
}

func TestApply_OrderAndImmutability(t *testing.T) {
	existing := []string{"/old/one", "/old/two"}
	additions := []string{"/a/target", "/b/build"}

	got := Apply(existing, additions)
	assert.Equal(t, []string{"/old/one", "/old/two", "/a/target", "/b/build"}, got)

	// The input slices are not aliased by the result.
	got[0] = "/mutated"
	assert.Equal(t, "/old/one", existing[0])
}

func TestApply_EmptyExisting(t *testing.T) {
	got := Apply(nil, []string{"/a/target", "/b/build"})
	assert.Equal(t, []string{"/a/target", "/b/build"}, got)
}
