package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/spotskip/spotskip/pkg/spotskip/config"
	"github.com/spotskip/spotskip/pkg/spotskip/exclusions"
	"github.com/spotskip/spotskip/pkg/spotskip/logging"
	"github.com/spotskip/spotskip/pkg/spotskip/mds"
	"github.com/spotskip/spotskip/pkg/spotskip/output"
	"github.com/spotskip/spotskip/pkg/spotskip/scanner"
	"github.com/spotskip/spotskip/pkg/spotskip/store"
)

// runIgnore is the main command handler: scan, merge, back up, write,
// restart. The run is a strict linear pipeline; any fatal error stops it
// before the store is touched or, after the backup, with a restore path
// in hand.
func runIgnore(_ *cobra.Command, args []string) error {
	logger := logging.Get("run")

	// Determine scan path
	scanPath := config.DefaultPath
	if len(args) > 0 {
		scanPath = args[0]
	}

	expandedPath, err := config.ExpandPath(scanPath)
	if err != nil {
		return fmt.Errorf("failed to expand path: %w", err)
	}

	absPath, err := filepath.Abs(expandedPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	names, err := buildIgnoreNames()
	if err != nil {
		return err
	}

	dryRun := viper.GetBool("dry_run")

	// The privilege check runs before anything else so a non-sudo run
	// fails before a single directory is read. Dry runs mutate nothing
	// and are allowed without sudo.
	if !dryRun {
		if err := mds.CheckElevated(); err != nil {
			return fmt.Errorf("%w: editing the Spotlight configuration requires sudo, try: sudo spotskip %s", err, scanPath)
		}
	}

	storePath := viper.GetString("store_path")
	service := viper.GetString("service")
	st := store.New(storePath)

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		printInfo("\nInterrupted, stopping scan...")
		cancel()
	}()

	logger.Info("scan started", "root", absPath, "names", names)
	printVerbose("Scanning %s for %d directory names", absPath, len(names))

	s := scanner.New(scanner.Options{
		Root:  absPath,
		Names: names,
	})
	scanResult, err := s.Scan(ctx)
	if err != nil {
		switch {
		case errors.Is(err, scanner.ErrRootNotFound):
			return fmt.Errorf("path does not exist: %s", absPath)
		case errors.Is(err, scanner.ErrRootNotDir):
			return fmt.Errorf("path is not a directory: %s", absPath)
		case errors.Is(err, context.Canceled):
			printInfo("Scan cancelled")
			return nil
		}
		return fmt.Errorf("scan failed: %w", err)
	}
	logger.Info("scan finished",
		"matches", len(scanResult.Matches),
		"dirs", scanResult.DirsScanned,
		"elapsed", scanResult.Elapsed)

	doc, err := st.Read()
	if err != nil {
		if errors.Is(err, store.ErrMalformed) {
			return fmt.Errorf("%w\nThe file at %s does not look like a Spotlight volume configuration; nothing was changed", err, storePath)
		}
		return fmt.Errorf("failed to read the Spotlight configuration: %w\nOn macOS this file normally exists at %s and is only readable by root", err, config.DefaultStorePath)
	}

	existing := doc.Exclusions()
	additions := exclusions.Merge(existing, scanResult.Matches)

	result := &output.Result{
		Root:            absPath,
		Names:           names,
		Matched:         scanResult.Matches,
		Added:           additions,
		AlreadyCovered:  len(scanResult.Matches) - len(additions),
		TotalExclusions: len(existing) + len(additions),
		DryRun:          dryRun,
		Stats: output.Stats{
			DirsScanned: scanResult.DirsScanned,
			Elapsed:     scanResult.Elapsed,
		},
	}
	for _, w := range scanResult.Warnings {
		logger.Warn("unreadable subtree skipped", "path", w.Path, "error", w.Err)
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", w.Path, w.Err))
	}

	if len(additions) == 0 || dryRun {
		return render(result)
	}

	backupDir := viper.GetString("backup_dir")
	if backupDir == "" {
		backupDir = config.DefaultBackupDir()
	}
	backupPath, err := st.Backup(backupDir)
	if err != nil {
		return fmt.Errorf("could not back up the Spotlight configuration: %w\nNo changes were made", err)
	}
	result.BackupPath = backupPath
	logger.Info("backup created", "path", backupPath)
	printRestoreInstructions(backupPath, storePath, service)

	doc.SetExclusions(exclusions.Apply(existing, additions))
	if err := st.Write(doc); err != nil {
		return fmt.Errorf("failed to update the Spotlight configuration: %w\nThe original file is unchanged; a backup is also at %s", err, backupPath)
	}
	logger.Info("exclusions written", "added", len(additions), "total", result.TotalExclusions)

	if err := mds.Restart(ctx, service); err != nil {
		logger.Warn("service restart failed", "service", service, "error", err)
		printWarning("could not restart %s: %v", service, err)
		printWarning("the new exclusions are saved and take effect after the next restart")
		result.Warnings = append(result.Warnings, fmt.Sprintf("restart %s: %v", service, err))
	} else {
		result.ServiceRestarted = true
	}

	return render(result)
}

// printRestoreInstructions tells the operator how to roll back, the same
// way the backup itself is announced before anything is written.
func printRestoreInstructions(backupPath, storePath, service string) {
	if getQuiet() {
		return
	}
	fmt.Fprintln(os.Stderr, "Created backup of the Spotlight configuration.")
	fmt.Fprintln(os.Stderr, "If something goes wrong or you want to revert, run:")
	fmt.Fprintf(os.Stderr, "    sudo cp %s %s\n", backupPath, storePath)
	fmt.Fprintf(os.Stderr, "    sudo launchctl stop %s\n", service)
	fmt.Fprintf(os.Stderr, "    sudo launchctl start %s\n", service)
}

// render formats the result with the selected formatter and prints it.
func render(result *output.Result) error {
	if getQuiet() {
		return nil
	}

	format := viper.GetString("output")
	if format == "" {
		format = config.DefaultOutput
	}

	formatter, err := output.Get(format)
	if err != nil {
		return fmt.Errorf("unknown output format %q: available formats are %v", format, output.Available())
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, result); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Print(buf.String())
	return nil
}
