package main

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/spotskip/spotskip/pkg/spotskip/config"
)

func TestBuildIgnoreNames(t *testing.T) {
	resetViperForTest := func() {
		viper.Reset()
		viper.SetDefault("ignore_names", config.DefaultIgnoreNames)
	}

	tests := []struct {
		name    string
		setup   func()
		want    []string
		wantErr bool
	}{
		{
			name:  "defaults only",
			setup: func() { resetViperForTest() },
			want: []string{
				".gradle", ".next", ".venv", "Pods", "__pycache__", "build",
				"coverage", "dist", "node_modules", "target", "vendor", "venv",
			},
		},
		{
			name: "also-ignore adds to defaults",
			setup: func() {
				resetViperForTest()
				viper.Set("also_ignore", []string{".tox"})
			},
			want: []string{
				".gradle", ".next", ".tox", ".venv", "Pods", "__pycache__",
				"build", "coverage", "dist", "node_modules", "target", "vendor", "venv",
			},
		},
		{
			name: "skip-defaults with also-ignore is exactly the additions",
			setup: func() {
				resetViperForTest()
				viper.Set("skip_defaults", true)
				viper.Set("also_ignore", []string{"X"})
			},
			want: []string{"X"},
		},
		{
			name: "duplicates are collapsed",
			setup: func() {
				resetViperForTest()
				viper.Set("also_ignore", []string{"node_modules", "node_modules"})
			},
			want: []string{
				".gradle", ".next", ".venv", "Pods", "__pycache__", "build",
				"coverage", "dist", "node_modules", "target", "vendor", "venv",
			},
		},
		{
			name: "skip-defaults alone is an error",
			setup: func() {
				resetViperForTest()
				viper.Set("skip_defaults", true)
			},
			wantErr: true,
		},
		{
			name: "empty strings are dropped",
			setup: func() {
				resetViperForTest()
				viper.Set("skip_defaults", true)
				viper.Set("also_ignore", []string{"", "X"})
			},
			want: []string{"X"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			got, err := buildIgnoreNames()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("name[%d]: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
