// Package mds controls the Spotlight metadata server (mds) through
// launchd and checks that the process has the privileges editing the
// volume configuration requires.
package mds

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"time"
)

// commandTimeout is the maximum time to wait for a launchctl invocation.
const commandTimeout = 30 * time.Second

// ErrNotElevated indicates the process is not running as root. Editing the
// volume configuration requires sudo.
var ErrNotElevated = errors.New("not running with elevated privileges")

// ErrUnsupported indicates the current platform has no Spotlight service.
var ErrUnsupported = errors.New("spotlight service control requires macOS")

// CheckElevated verifies the process runs with root privileges. It must be
// called before any filesystem mutation is attempted.
func CheckElevated() error {
	if !elevated() {
		return ErrNotElevated
	}
	return nil
}

// launchctlArgs builds the launchctl argument list for a service verb.
func launchctlArgs(verb, service string) []string {
	return []string{verb, service}
}

// Restart stops and starts the named launchd service so a configuration
// change takes effect. A restart failure is reported to the caller but is
// not fatal anywhere in the pipeline: the configuration is already
// persisted and applies on the next natural restart.
func Restart(ctx context.Context, service string) error {
	if runtime.GOOS != "darwin" {
		return ErrUnsupported
	}

	launchctl, err := exec.LookPath("launchctl")
	if err != nil {
		return fmt.Errorf("locating launchctl: %w", err)
	}

	for _, verb := range []string{"stop", "start"} {
		cmdCtx, cancel := context.WithTimeout(ctx, commandTimeout)
		cmd := exec.CommandContext(cmdCtx, launchctl, launchctlArgs(verb, service)...)
		err := cmd.Run()
		cancel()
		if err != nil {
			return fmt.Errorf("launchctl %s %s: %w", verb, service, err)
		}
	}

	return nil
}
