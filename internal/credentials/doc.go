// Package credentials holds the repository-scoped credential that drives
// the encryption filters, and the state machine around it.
//
// # States
//
//	Unconfigured --Configure--> Configured
//	Configured   --Replace----> Configured   (rekey)
//	Configured   --Erase------> Unconfigured (flush, uninstall)
//
// Configure refuses to overwrite an existing credential; the only way to
// change a configured credential is Replace, which the rekey workflow uses.
//
// # Persistence
//
// A Store persists three scalar values (vellum.version, vellum.cipher,
// vellum.password) plus the clean/smudge/textconv command registrations in
// a Backend. In a real repository the backend is `git config`; the filters
// read it fresh on every invocation and never cache it.
//
// Load fetches every vellum.* key in one backend call so a reader sees a
// single snapshot of the configuration.
//
// # Serialization
//
// Store methods serialize mutations within a process. Multi-step lifecycle
// operations (flush, rekey, uninstall) additionally hold a Lock, an
// exclusive lock file inside the git directory, so two vellum processes can
// never mutate the same repository at once.
package credentials
