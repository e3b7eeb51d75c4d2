package output

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// yamlOutput is the full YAML output structure. It mirrors jsonOutput.
type yamlOutput struct {
	Root             string    `yaml:"root"`
	Names            []string  `yaml:"names"`
	Matched          []string  `yaml:"matched"`
	Added            []string  `yaml:"added"`
	AlreadyCovered   int       `yaml:"already_covered"`
	TotalExclusions  int       `yaml:"total_exclusions"`
	BackupPath       string    `yaml:"backup_path,omitempty"`
	DryRun           bool      `yaml:"dry_run"`
	ServiceRestarted bool      `yaml:"service_restarted"`
	Stats            yamlStats `yaml:"stats"`
	Warnings         []string  `yaml:"warnings,omitempty"`
}

// yamlStats is the scan statistics in YAML output.
type yamlStats struct {
	DirsScanned int64  `yaml:"dirs_scanned"`
	Elapsed     string `yaml:"elapsed"`
}

// YAMLFormatter formats output as YAML.
type YAMLFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *YAMLFormatter) Format(w *bytes.Buffer, r *Result) error {
	out := yamlOutput{
		Root:             r.Root,
		Names:            r.Names,
		Matched:          r.Matched,
		Added:            r.Added,
		AlreadyCovered:   r.AlreadyCovered,
		TotalExclusions:  r.TotalExclusions,
		BackupPath:       r.BackupPath,
		DryRun:           r.DryRun,
		ServiceRestarted: r.ServiceRestarted,
		Stats: yamlStats{
			DirsScanned: r.Stats.DirsScanned,
			Elapsed:     formatDuration(r.Stats.Elapsed),
		},
		Warnings: r.Warnings,
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(out); err != nil {
		return err
	}
	return encoder.Close()
}

func init() {
	Register("yaml", func() Formatter {
		return &YAMLFormatter{}
	})
}

// Ensure YAMLFormatter implements Formatter.
var _ Formatter = (*YAMLFormatter)(nil)
