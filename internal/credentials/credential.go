package credentials

import (
	"fmt"
	"strings"
)

// FormatVersion identifies the envelope and key-derivation scheme a
// credential was created for.
const FormatVersion = "1"

// Configuration keys managed by the Store.
const (
	KeyVersion  = "vellum.version"
	KeyCipher   = "vellum.cipher"
	KeyPassword = "vellum.password"

	KeyClean    = "filter.vellum.clean"
	KeySmudge   = "filter.vellum.smudge"
	KeyTextConv = "diff.vellum.textconv"
)

// FilterName is the attribute value that marks a path as managed:
//
//	secrets/** filter=vellum diff=vellum
const FilterName = "vellum"

// Credential is the symmetric secret for one repository.
type Credential struct {
	Version  string
	Cipher   string
	Password string
}

// String never prints the password.
func (c Credential) String() string {
	return fmt.Sprintf("Credential{version=%s cipher=%s}", c.Version, c.Cipher)
}

// State is the lifecycle position of a repository's credential slot.
type State int

const (
	Unconfigured State = iota
	Configured
)

func (s State) String() string {
	switch s {
	case Configured:
		return "configured"
	default:
		return "unconfigured"
	}
}

// FilterCommands are the command lines git runs for the three filter roles.
type FilterCommands struct {
	Clean    string
	Smudge   string
	TextConv string
}

// CommandsFor builds the filter registrations for the vellum executable at path.
func CommandsFor(path string) FilterCommands {
	quoted := ShellQuote(path)
	return FilterCommands{
		Clean:    quoted + " clean %f",
		Smudge:   quoted + " smudge",
		TextConv: quoted + " textconv",
	}
}

// ShellQuote quotes s for a POSIX shell.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
