package cmd

import (
	"errors"
	"fmt"
	"strings"

	verrors "github.com/PolarWolf314/vellum/internal/errors"
	"github.com/PolarWolf314/vellum/internal/ui"
	"github.com/PolarWolf314/vellum/internal/workflows"
)

func failure(msg string) string {
	return ui.Error.Sprint("✗") + " " + msg
}

func hint(parts ...string) string {
	return "\n" + ui.Info.Sprint("→") + " " + strings.Join(parts, "")
}

// formatError turns a workflow error into the message shown to the user.
func formatError(err error) string {
	var rekeyErr *workflows.RekeyError
	switch {
	case errors.As(err, &rekeyErr):
		msg := failure("Rekey stopped at " + ui.Path.Sprint(rekeyErr.Path) + ": " + rekeyErr.Err.Error())
		if len(rekeyErr.Staged) > 0 {
			msg += "\n\nAlready staged under the new credential:" + ui.FormatPaths(rekeyErr.Staged, 10)
		}
		return msg + hint("The new credential is stored. Fix or restore ", ui.Path.Sprint(rekeyErr.Path),
			" and run ", ui.Code.Sprint("vellum rekey"), " again")

	case errors.Is(err, verrors.ErrNotRepository):
		return failure("Not inside a git repository") +
			hint("Run ", ui.Code.Sprint("git init"), " or change into a repository")

	case errors.Is(err, verrors.ErrNotConfigured):
		return failure("This repository is not configured for encryption") +
			hint("Run ", ui.Code.Sprint("vellum configure"), " first")

	case errors.Is(err, verrors.ErrAlreadyConfigured):
		return failure("This repository is already configured") +
			hint("Run ", ui.Code.Sprint("vellum display"), " to see the credential, or ",
				ui.Code.Sprint("vellum flush"), " to start over")

	case errors.Is(err, verrors.ErrUnsupportedCipher):
		return failure(err.Error()) +
			hint("Run ", ui.Code.Sprint("vellum ciphers"), " to list supported ciphers")

	case errors.Is(err, verrors.ErrEmptyPassword):
		return failure("The password cannot be empty")

	case errors.Is(err, verrors.ErrPasswordLineBreak):
		return failure("The password cannot contain line breaks")

	case errors.Is(err, verrors.ErrDirtyWorkingTree):
		return failure(err.Error()) +
			hint("Commit or stash your changes, or pass ", ui.Flag.Sprint("--force"), " to proceed anyway")

	case errors.Is(err, verrors.ErrLocked):
		return failure(err.Error())

	case errors.Is(err, verrors.ErrPlaintextStaged):
		return failure(err.Error()) +
			hint("Run ", ui.Code.Sprint("vellum configure"), " and stage the files again with ", ui.Code.Sprint("git add"))

	case errors.Is(err, verrors.ErrImportFailed):
		return failure(err.Error()) +
			hint("Check that the private key for this export is in your keyring")

	case errors.Is(err, verrors.ErrMalformedCredential):
		return failure("The imported data is not a vellum credential: " + err.Error())

	case errors.Is(err, verrors.ErrInvalidDateFormat), errors.Is(err, verrors.ErrInvalidPattern):
		return failure(err.Error())

	default:
		return failure(fmt.Sprintf("%v", err))
	}
}

// report prints err through the spinner's final message and returns ErrReported.
func report(final *string, err error) error {
	Logger.Debugf("command failed: %v", err)
	*final = formatError(err)
	return ErrReported
}
