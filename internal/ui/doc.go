// Package ui provides semantic text formatting for vellum's CLI output.
//
// Formatters render with color when the terminal supports it and fall back
// to plain decorations when NO_COLOR is set or stdout is not a TTY:
//
//	ui.Code.Sprint("vellum configure")    // `vellum configure`
//	ui.Path.Sprint("secrets/db.env")      // secrets/db.env
//	ui.Cipher.Sprint("aes-256-cbc")       // [aes-256-cbc]
//	ui.Secret.Sprint(password)            // password, bold red
//	ui.Success.Sprint("✓")
//	ui.Muted.Sprint("not encrypted")      // (not encrypted)
//
// All CLI output except filter data is meant for humans; filter commands
// never use this package on stdout.
package ui
