// Package configs loads vellum's user settings and provides a TOML-backed
// credential backend.
//
// # Settings
//
// User settings live in $XDG_CONFIG_HOME/vellum/config.toml (or the
// platform equivalent returned by os.UserConfigDir). Every field can be
// overridden with a VELLUM_ environment variable:
//
//	VELLUM_GIT              git executable (default "git")
//	VELLUM_GPG              gpg executable used by export/import (default "gpg")
//	VELLUM_CIPHER           cipher used when configure is run without --cipher
//	VELLUM_PASSWORD_LENGTH  random bytes in a generated password (default 30)
//	VELLUM_DEBUG            debug logging inside filter invocations
//	VELLUM_CONFIG           alternate settings file
//
// Resolution order is defaults, then the TOML file, then the environment.
//
// # File backend
//
// FileBackend stores flat key/value pairs in a TOML file. It satisfies the
// same contract as the git config backend and is used when vellum manages a
// directory outside of git, and in tests.
package configs
