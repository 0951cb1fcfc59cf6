// Package errors renders command failures for the terminal.
package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/keyring"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/utils"
	"github.com/julianstephens/habitual/internal/validation"
)

var hints = []struct {
	target error
	hint   string
}{
	{tracker.ErrNotFound, fmt.Sprintf("list habits with '%s habit list --archived'", constants.AppName)},
	{tracker.ErrDuplicateID, "habit ids must be unique"},
	{validation.ErrInvalidImport, fmt.Sprintf("expected a file written by '%s export'", constants.AppName)},
	{utils.ErrInvalidDate, "dates are written YYYY-MM-DD"},
	{keyring.ErrNotFound, fmt.Sprintf("store one with '%s keyring set'", constants.AppName)},
	{keyring.ErrKeyringUnavailable, "set " + keyring.EnvConnectionString + " instead"},
}

// Hint returns a suggested next step for err, or "".
func Hint(err error) string {
	for _, h := range hints {
		if stderrors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Format renders err as "Error: ...", followed by a hint line when one applies.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := "Error: " + err.Error()
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// Fatal logs err, prints it and exits with status 1. A nil err is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command failed", "error", err)
	fmt.Fprintln(stderr, Format(err))
	exit(1)
}
