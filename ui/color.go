// Package ui provides terminal output styling for thetawave-sync.
package ui

import (
	"github.com/fatih/color"
)

// Color function types for styled output.
var (
	// Success is used for completed transfers and summaries (green).
	Success = color.New(color.FgGreen).SprintFunc()
	// Error is used for failures (red).
	Error = color.New(color.FgRed).SprintFunc()
	// Warning is used for dry-run notices (yellow).
	Warning = color.New(color.FgYellow).SprintFunc()
	// Header is used for section headers (bold cyan).
	Header = color.New(color.FgCyan, color.Bold).SprintFunc()
	// Dim is used for secondary information (faint).
	Dim = color.New(color.Faint).SprintFunc()
)

// DisableColors disables all color output. Useful when piping output.
func DisableColors() {
	color.NoColor = true
}
