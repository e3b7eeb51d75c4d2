//go:build unix

package mds

import "golang.org/x/sys/unix"

// elevated reports whether the process runs as root.
func elevated() bool {
	return unix.Geteuid() == 0
}
