package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/spotskip/spotskip/pkg/spotskip/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List directories currently excluded from Spotlight",
	Long: `Read the Spotlight volume configuration and print every path the
indexer is told to skip. The store is opened read-only; on a stock macOS
install reading it still requires sudo.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

// runList prints the store's exclusion list, sorted.
func runList(_ *cobra.Command, _ []string) error {
	st := store.New(viper.GetString("store_path"))

	doc, err := st.Read()
	if err != nil {
		return fmt.Errorf("failed to read the Spotlight configuration: %w", err)
	}

	paths := doc.Exclusions()
	if len(paths) == 0 {
		printInfo("No directories are currently excluded")
		return nil
	}

	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)

	printInfo("Currently excluded directories:")
	for _, path := range sorted {
		printInfo("  %s", path)
	}
	return nil
}
