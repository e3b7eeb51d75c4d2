package main

import (
	"errors"
	"sort"

	"github.com/spf13/viper"
)

// buildIgnoreNames assembles the set of directory names to ignore from the
// configured defaults and the --also-ignore additions. With
// --skip-defaults the additions stand alone. The result is sorted and
// deduplicated; an empty result is a usage error because a run with
// nothing to look for is always a mistake.
func buildIgnoreNames() ([]string, error) {
	set := make(map[string]struct{})

	if !viper.GetBool("skip_defaults") {
		for _, name := range viper.GetStringSlice("ignore_names") {
			if name != "" {
				set[name] = struct{}{}
			}
		}
	}

	for _, name := range viper.GetStringSlice("also_ignore") {
		if name != "" {
			set[name] = struct{}{}
		}
	}

	if len(set) == 0 {
		return nil, errors.New("no directory names to ignore: use --also-ignore or remove --skip-defaults")
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
