package mds

import (
	"context"
	"errors"
	"os"
	"runtime"
	"testing"
)

func TestLaunchctlArgs(t *testing.T) {
	got := launchctlArgs("stop", "com.apple.metadata.mds")
	want := []string{"stop", "com.apple.metadata.mds"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("arg[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCheckElevated(t *testing.T) {
	err := CheckElevated()
	if os.Geteuid() == 0 {
		if err != nil {
			t.Errorf("expected nil for root, got %v", err)
		}
		return
	}
	if !errors.Is(err, ErrNotElevated) {
		t.Errorf("expected ErrNotElevated, got %v", err)
	}
}

func TestRestart_UnsupportedPlatform(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skip("restart is supported on darwin")
	}
	err := Restart(context.Background(), "com.apple.metadata.mds")
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}
