// Package constants provides shared constants used throughout the registrysync
// codebase. This includes timeouts, file permissions, formats and the default
// names used in reports and notifications.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the registry,
	// the source exports and the issue tracker
	DefaultHTTPTimeout = 30 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute

	// SyncTimeout is the timeout for a complete sync run
	SyncTimeout = 2 * time.Hour

	// BackgroundDrainTimeout bounds how long the CLI waits for background tasks
	// before exiting
	BackgroundDrainTimeout = 30 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0o755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0o644
)

// Format constants
const (
	// DateFormat is the date used in notification titles
	DateFormat = "2006-01-02"

	// TimestampLabelFormat is the format of the per-run timestamp label
	TimestampLabelFormat = "2006-01-02 15:04:05"

	// TimeFormatFilename is the format used in generated report filenames
	TimeFormatFilename = "20060102-150405"
)

// Default values
const (
	// DefaultPortalURL is the registry portal used in notification links
	DefaultPortalURL = "https://registry.example.org"

	// DefaultReportDir is where sync results are written
	DefaultReportDir = "reports"

	// DefaultFailLabelSuffix is appended to the process name to build the fail label
	DefaultFailLabelSuffix = " fail"
)
