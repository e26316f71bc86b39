// Package workflows provides high-level orchestration for vellum commands.
//
// Workflows coordinate the credential store, the filter pipeline, the
// repository and the audit log to implement complete user-facing features.
// Each workflow handles a single command's business logic, independent of
// CLI concerns like flag parsing, spinners, and output formatting.
//
// # Available Workflows
//
//   - Configure: Stores a credential and registers the filters
//   - Display: Returns the credential for setting up another clone
//   - Flush: Erases the credential and returns files to encrypted form
//   - Uninstall: Erases the credential and removes vellum's repository files
//   - Rekey: Re-encrypts every managed file under a new credential
//   - List: Reports the managed files and their stored state
//   - PreCommit: Rejects commits that would store plaintext
//   - Export, Import: Move the credential through a public-key tool
//   - Log: Reads the audit trail
//
// # Environment
//
// Every workflow receives an *Env holding its collaborators. The cmd layer
// builds one for the current repository; tests build one around an
// in-memory repository.
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package:
//
//	result, err := workflows.Rekey(ctx, env, opts)
//	if errors.Is(err, verrors.ErrDirtyWorkingTree) {
//	    // Ask the user to commit or stash first
//	}
//
// Rekey failures after the credential swap are reported as *RekeyError.
package workflows
