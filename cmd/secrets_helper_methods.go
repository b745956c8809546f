package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	"github.com/PolarWolf314/lockbox/internal/store"
	"github.com/PolarWolf314/lockbox/internal/ui"
	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
// Uses the global debug flag from the secrets command.
//
// spinner.FinalMSG values do not need trailing newlines; the cleanup function
// adds one before printing.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	return startSpinnerWithFlags(message, verbose, debug)
}

// startSpinnerWithFlags creates and starts a spinner with explicit verbose and debug flags.
// This is used by commands that have their own flag variables (e.g., config commands).
func startSpinnerWithFlags(message string, verbose, debugFlag bool) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	// Ignore color errors - continue without colored spinner if it fails.
	_ = s.Color("cyan")

	quiet := !verbose && !debugFlag
	if quiet {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// formatSecretError formats a store or workflow error for display to the user.
func formatSecretError(err error, name string) string {
	var stepErr *kerrors.StepError
	switch {
	case errors.As(err, &stepErr):
		return formatStepError(stepErr)

	case errors.Is(err, kerrors.ErrStoreNotInitialized):
		return ui.Error.Sprint("✗") + " The store has not been initialized\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("lockbox secrets init") + " first"

	case errors.Is(err, kerrors.ErrRecipientNotConfigured):
		return ui.Error.Sprint("✗") + " No recipient key is configured\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("lockbox config set store.recipient <email or key id>")

	case errors.Is(err, kerrors.ErrNotFound):
		return ui.Error.Sprint("✗") + " Secret " + ui.Name.Sprint(name) + " does not exist\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("lockbox secrets list") + " to see stored secrets"

	case errors.Is(err, kerrors.ErrNameCollision):
		return ui.Error.Sprint("✗") + " A secret named " + ui.Name.Sprint(name) + " already exists\n" +
			ui.Info.Sprint("→") + " Use " + ui.Code.Sprint("lockbox secrets edit") + " to change it"

	case errors.Is(err, kerrors.ErrInvalidName):
		return ui.Error.Sprint("✗") + " " + ui.Name.Sprint(name) + " is not a valid secret name\n" +
			ui.Info.Sprint("→") + " Names cannot be empty, start with a dot, or contain slashes"

	case errors.Is(err, kerrors.ErrRecipientNotFound):
		return ui.Error.Sprint("✗") + " The recipient key was not found in the public keyring\n" +
			ui.Info.Sprint("→") + " Check " + ui.Code.Sprint("lockbox config show") + " and your exported keys"

	case errors.Is(err, kerrors.ErrDecryption):
		return ui.Error.Sprint("✗") + " Failed to decrypt " + ui.Name.Sprint(name) + "\n" +
			ui.Info.Sprint("→") + " Make sure the secret keyring holds the key this store encrypts to"

	case errors.Is(err, kerrors.ErrFormat):
		return ui.Error.Sprint("✗") + " " + ui.Name.Sprint(name) + " does not contain a valid field table: " + err.Error()

	case errors.Is(err, kerrors.ErrFieldNotFound),
		errors.Is(err, kerrors.ErrInvalidPattern),
		errors.Is(err, kerrors.ErrInvalidDateFormat):
		return ui.Error.Sprint("✗") + " " + err.Error()

	default:
		return ui.Error.Sprint("✗") + " " + err.Error()
	}
}

// formatStepError explains how far a failed mutation got.
func formatStepError(err *kerrors.StepError) string {
	msg := ui.Error.Sprint("✗") + " Failed to " + string(err.Step) + " " + ui.Name.Sprint(err.Name) + ": " + err.Err.Error() + "\n"
	switch err.Step {
	case kerrors.StepWrite:
		if errors.Is(err, kerrors.ErrRecipientNotFound) {
			msg += ui.Info.Sprint("→") + " The recipient key was not found; check " + ui.Code.Sprint("lockbox config show")
		} else {
			msg += ui.Info.Sprint("→") + " Nothing was changed"
		}
	case kerrors.StepRemove:
		msg += ui.Warning.Sprint("⚠") + " The new file was written but the old one is still present; remove it by hand"
	case kerrors.StepCommit:
		msg += ui.Warning.Sprint("⚠") + " The files were changed but not committed; commit them by hand in the store directory"
	}
	return msg
}

// isSecretUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isSecretUnexpectedError(err error) bool {
	if step := kerrors.FailedStep(err); step != "" {
		// Write failures caused by bad input leave the store untouched.
		return step != kerrors.StepWrite ||
			!(errors.Is(err, kerrors.ErrRecipientNotFound) || errors.Is(err, kerrors.ErrFormat))
	}

	switch {
	case errors.Is(err, kerrors.ErrStoreNotInitialized),
		errors.Is(err, kerrors.ErrStoreAlreadyInitialized),
		errors.Is(err, kerrors.ErrRecipientNotConfigured),
		errors.Is(err, kerrors.ErrNotFound),
		errors.Is(err, kerrors.ErrNameCollision),
		errors.Is(err, kerrors.ErrInvalidName),
		errors.Is(err, kerrors.ErrRecipientNotFound),
		errors.Is(err, kerrors.ErrFieldNotFound),
		errors.Is(err, kerrors.ErrInvalidPattern),
		errors.Is(err, kerrors.ErrInvalidDateFormat):
		return false
	default:
		return true
	}
}

// formatFields renders fields as aligned "key: value" lines.
func formatFields(fields []store.Field) string {
	width := 0
	for _, f := range fields {
		if len(f.Key) > width {
			width = len(f.Key)
		}
	}

	out := ""
	for _, f := range fields {
		out += fmt.Sprintf("  %s %s\n", ui.Field.Sprintf("%-*s", width+1, f.Key+":"), f.Value)
	}
	return out
}
