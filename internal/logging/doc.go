// Package logger provides leveled logging for vellum commands.
//
// Every message goes to stderr. The filter commands (clean, smudge, textconv)
// use stdout as their data channel, so nothing in this package may write
// there.
//
// # Verbosity Levels
//
//   - --verbose: Shows info messages
//   - --debug: Shows all messages including debug details
//
// Warnings and errors are always shown.
//
// # Log Methods
//
//	Logger.Infof()           // Shown with --verbose or --debug
//	Logger.Debugf()          // Shown only with --debug
//	Logger.Warnf()           // Always shown
//	Logger.WarnfAlways()     // Always shown, even when output is quiet
//	Logger.Errorf()          // Always shown
//	Logger.ErrorfAndReturn() // Logs in debug mode and returns the error
//
// Messages are rendered through a zerolog console writer whose level column
// carries the colored [info]/[debug]/[warn]/[error] prefix.
package logger
