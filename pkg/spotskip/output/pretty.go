package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// PrettyFormatter formats output with colors and styling using lipgloss.
// It is the default format for terminal display.
type PrettyFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PrettyFormatter) Format(w *bytes.Buffer, r *Result) error {
	w.WriteString(f.formatHeader(r))
	w.WriteString("\n")
	w.WriteString(f.formatAdditions(r))
	w.WriteString(f.formatFooter(r))

	if len(r.Warnings) > 0 {
		w.WriteString("\n")
		w.WriteString(f.formatWarnings(r.Warnings))
	}

	return nil
}

// formatHeader builds the header box with run metadata.
func (f *PrettyFormatter) formatHeader(r *Result) string {
	var lines []string

	rootLabel := LabelStyle.Render("Root:")
	rootValue := ValueStyle.Render(r.Root)
	lines = append(lines, fmt.Sprintf("%s %s", rootLabel, rootValue))

	namesLabel := LabelStyle.Render("Ignoring:")
	namesValue := MutedStyle.Render(strings.Join(r.Names, ", "))
	lines = append(lines, fmt.Sprintf("%s %s", namesLabel, namesValue))

	scannedLabel := LabelStyle.Render("Scanned:")
	scannedValue := ValueStyle.Render(fmt.Sprintf("%s directories in %s",
		humanize.Comma(r.Stats.DirsScanned), formatDuration(r.Stats.Elapsed)))
	lines = append(lines, fmt.Sprintf("%s %s", scannedLabel, scannedValue))

	if r.DryRun {
		lines = append(lines, WarningStyle.Bold(true).Render("Dry run: no changes were made"))
	}

	return HeaderBox.Render(strings.Join(lines, "\n"))
}

// formatAdditions lists the newly excluded paths.
func (f *PrettyFormatter) formatAdditions(r *Result) string {
	if len(r.Added) == 0 {
		return MutedStyle.Render("  No new paths to exclude\n")
	}

	var sb strings.Builder
	verb := "Excluded from Spotlight:"
	if r.DryRun {
		verb = "Would exclude from Spotlight:"
	}
	sb.WriteString(fmt.Sprintf("  %s\n", ValueStyle.Render(verb)))
	for _, path := range r.Added {
		sb.WriteString(fmt.Sprintf("    %s\n", PathStyle.Render(path)))
	}
	return sb.String()
}

// formatFooter builds the summary footer box.
func (f *PrettyFormatter) formatFooter(r *Result) string {
	var lines []string

	summary := fmt.Sprintf("%d added, %d already covered, %d exclusions total",
		len(r.Added), r.AlreadyCovered, r.TotalExclusions)
	lines = append(lines, LabelStyle.Render("Summary: ")+ValueStyle.Render(summary))

	if r.BackupPath != "" {
		lines = append(lines, LabelStyle.Render("Backup:  ")+ValueStyle.Render(r.BackupPath))
	}

	if len(r.Added) > 0 && !r.DryRun {
		if r.ServiceRestarted {
			lines = append(lines, SuccessStyle.Render("Spotlight restarted"))
		} else {
			lines = append(lines, WarningStyle.Render("Spotlight not restarted; changes apply after the next restart"))
		}
	}

	return FooterBox.Render(strings.Join(lines, "\n"))
}

// formatWarnings renders run warnings.
func (f *PrettyFormatter) formatWarnings(warnings []string) string {
	var sb strings.Builder
	sb.WriteString(WarningStyle.Render(fmt.Sprintf("%d warning(s):", len(warnings))))
	sb.WriteString("\n")
	for _, warning := range warnings {
		sb.WriteString(MutedStyle.Render("  " + warning))
		sb.WriteString("\n")
	}
	return sb.String()
}

func init() {
	Register("pretty", func() Formatter {
		return &PrettyFormatter{}
	})
}

// Ensure PrettyFormatter implements Formatter.
var _ Formatter = (*PrettyFormatter)(nil)
