package output

import (
	"bytes"
	"encoding/json"
)

// jsonOutput is the full JSON output structure.
type jsonOutput struct {
	Root             string     `json:"root"`
	Names            []string   `json:"names"`
	Matched          []string   `json:"matched"`
	Added            []string   `json:"added"`
	AlreadyCovered   int        `json:"already_covered"`
	TotalExclusions  int        `json:"total_exclusions"`
	BackupPath       string     `json:"backup_path,omitempty"`
	DryRun           bool       `json:"dry_run"`
	ServiceRestarted bool       `json:"service_restarted"`
	Stats            jsonStats  `json:"stats"`
	Warnings         []string   `json:"warnings,omitempty"`
}

// jsonStats is the scan statistics in JSON output.
type jsonStats struct {
	DirsScanned int64  `json:"dirs_scanned"`
	Elapsed     string `json:"elapsed"`
}

// JSONFormatter formats output as indented JSON.
type JSONFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *JSONFormatter) Format(w *bytes.Buffer, r *Result) error {
	out := jsonOutput{
		Root:             r.Root,
		Names:            r.Names,
		Matched:          r.Matched,
		Added:            r.Added,
		AlreadyCovered:   r.AlreadyCovered,
		TotalExclusions:  r.TotalExclusions,
		BackupPath:       r.BackupPath,
		DryRun:           r.DryRun,
		ServiceRestarted: r.ServiceRestarted,
		Stats: jsonStats{
			DirsScanned: r.Stats.DirsScanned,
			Elapsed:     formatDuration(r.Stats.Elapsed),
		},
		Warnings: r.Warnings,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func init() {
	Register("json", func() Formatter {
		return &JSONFormatter{}
	})
}

// Ensure JSONFormatter implements Formatter.
var _ Formatter = (*JSONFormatter)(nil)
