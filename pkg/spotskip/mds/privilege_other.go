//go:build !unix

package mds

// elevated reports whether the process runs with elevated privileges.
// Effective user IDs are a Unix concept; elsewhere the check passes and
// the store operations surface any permission problem themselves.
func elevated() bool {
	return true
}
