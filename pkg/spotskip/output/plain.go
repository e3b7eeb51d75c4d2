package output

import (
	"bytes"
	"text/tabwriter"
)

// PlainFormatter formats output as a simple tab-separated table.
// It produces plain text suitable for scripting and piping.
// No colors or styling are applied.
type PlainFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PlainFormatter) Format(w *bytes.Buffer, r *Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)

	if _, err := tw.Write([]byte("STATUS\tPATH\n")); err != nil {
		return err
	}

	status := "added"
	if r.DryRun {
		status = "would-add"
	}

	added := make(map[string]struct{}, len(r.Added))
	for _, path := range r.Added {
		added[path] = struct{}{}
		if _, err := tw.Write([]byte(status + "\t" + path + "\n")); err != nil {
			return err
		}
	}

	// Matches covered by an existing exclusion still show up so scripts
	// can tell "nothing found" from "nothing new".
	for _, path := range r.Matched {
		if _, ok := added[path]; ok {
			continue
		}
		if _, err := tw.Write([]byte("covered\t" + path + "\n")); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func init() {
	Register("plain", func() Formatter {
		return &PlainFormatter{}
	})
}

// Ensure PlainFormatter implements Formatter.
var _ Formatter = (*PlainFormatter)(nil)
