// Package config provides configuration management for spotskip.
package config

// Default configuration values for spotskip.
const (
	// DefaultStorePath is the Spotlight volume configuration plist on the
	// data volume (Catalina and later).
	DefaultStorePath = "/System/Volumes/Data/.Spotlight-V100/VolumeConfiguration.plist"

	// DefaultService is the launchd label of the Spotlight metadata server.
	DefaultService = "com.apple.metadata.mds"

	// DefaultPath is the default directory to scan when none is specified.
	DefaultPath = "."

	// DefaultOutput is the default output format.
	DefaultOutput = "pretty"
)

// DefaultIgnoreNames contains the directory names excluded from Spotlight
// indexing by default. All of these are package manager caches, build
// outputs, or virtual environments that churn constantly and are cheap to
// regenerate.
var DefaultIgnoreNames = []string{
	"node_modules", // Node.js dependencies
	"target",       // Rust, Maven build output
	"build",        // Generic build output
	"dist",         // Distribution/build output
	"venv",         // Python virtual environments
	".venv",        // Python virtual environments (hidden)
	"vendor",       // Go, PHP, Ruby dependencies
	"__pycache__",  // Python bytecode cache
	".gradle",      // Gradle build artifacts
	".next",        // Next.js build output
	"coverage",     // Test coverage reports
	"Pods",         // CocoaPods dependencies
}
