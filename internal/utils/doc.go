// Package utils provides terminal and I/O helpers for the vellum CLI.
//
// # Terminal Utilities
//
// Functions for reading secrets without echoing them:
//   - ReadPassword: prompts once on the controlling terminal
//   - ReadNewPassword: prompts twice and requires both entries to match
//   - IsTerminal: checks whether stdin is a terminal
//
// Prompts are written to stderr and input is read from /dev/tty (CON on
// Windows), so both work while stdin and stdout are redirected.
//
// # I/O Utilities
//
// Functions for moving sealed credentials in and out of the CLI:
//   - ReadInput: reads a named file, or stdin for "-"
//   - WriteOutput: writes a named file with owner-only permissions, or stdout for "-"
package utils
