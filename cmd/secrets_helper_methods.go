package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"

	"github.com/devforge/devforge/internal/configs"
	kerrors "github.com/devforge/devforge/internal/errors"
	"github.com/devforge/devforge/internal/keystore"
	"github.com/devforge/devforge/internal/ui"
	"github.com/devforge/devforge/internal/workflows"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// spinner.FinalMSG values do not need trailing newlines. The cleanup function
// calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	return startSpinnerWithFlags(message, verbose, debug)
}

// startSpinnerWithFlags is startSpinner for commands with their own flag variables.
func startSpinnerWithFlags(message string, verbose, debugFlag bool) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	// Ignore color errors - continue without colored spinner if it fails.
	_ = s.Color("cyan")

	quiet := !verbose && !debugFlag
	if quiet {
		s.Start()
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

// reportedError marks an error whose message the command already printed.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already shown to the user, so main
// only needs to set the exit code.
func IsReported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

// fail sets the spinner's final message for err and marks it reported.
func fail(s *spinner.Spinner, action string, err error) error {
	Logger.Errorf("%s: %v", action, err)
	s.FinalMSG = failureMessage(action, err)
	return reportedError{err}
}

// printError prints the failure message for err directly, for commands
// that do not run a spinner.
func printError(action string, err error) error {
	Logger.Errorf("%s: %v", action, err)
	fmt.Fprintln(os.Stderr, failureMessage(action, err))
	return reportedError{err}
}

func failureMessage(action string, err error) string {
	cross := ui.Error.Sprint("✗")
	arrow := ui.Info.Sprint("→")

	switch {
	case errors.Is(err, kerrors.ErrStoreNotInitialized):
		return cross + " The secret store has not been initialized\n" +
			arrow + " Run " + ui.Code.Sprint("devforge secrets init") + " first"

	case errors.Is(err, kerrors.ErrKeyMismatch):
		return cross + " None of the available keys opens this secret store\n" +
			arrow + " Unlock the OS keyring that holds the project key, or set " + ui.Code.Sprint(keystore.EnvVar) +
			" to it. A new key is never created for an existing store\n" +
			ui.Error.Sprint("Error: ") + err.Error()

	case errors.Is(err, kerrors.ErrKeyAcquisition):
		return cross + " Could not obtain the project encryption key\n" +
			arrow + " Unlock your OS keyring, set " + ui.Code.Sprint(keystore.EnvVar) +
			", or make " + ui.Path.Sprint(configuredKeysDir()) + " writable\n" +
			ui.Error.Sprint("Error: ") + err.Error()

	case errors.Is(err, kerrors.ErrCorruptStore):
		return cross + " Secret store appears corrupted: the key may be wrong or the file was tampered with\n" +
			ui.Error.Sprint("Error: ") + err.Error()

	case errors.Is(err, kerrors.ErrIncompatibleStore):
		return cross + " This secret store was written in a format this devforge cannot read\n" +
			arrow + " Upgrade devforge and try again\n" +
			ui.Error.Sprint("Error: ") + err.Error()

	case errors.Is(err, kerrors.ErrInvalidSecretName):
		return cross + " Secret names must be valid environment variable names\n" +
			arrow + " Use letters, digits and underscores, for example " + ui.Name.Sprint("DATABASE_PASSWORD")

	case errors.Is(err, kerrors.ErrInvalidSecretValue):
		return cross + " Secret values must be single-line UTF-8 text\n" +
			ui.Error.Sprint("Error: ") + err.Error()

	case errors.Is(err, kerrors.ErrSecretNotFound):
		return cross + " " + err.Error() + "\n" +
			arrow + " Run " + ui.Code.Sprint("devforge secrets list") + " to see stored secrets"

	case errors.Is(err, kerrors.ErrInvalidConfig):
		return cross + " Your devforge configuration is invalid\n" +
			arrow + " Fix " + ui.Path.Sprint(configs.ConfigPath()) + "\n" +
			ui.Error.Sprint("Error: ") + err.Error()

	default:
		return cross + " " + action + "\n" +
			ui.Error.Sprint("Error: ") + err.Error()
	}
}

// configuredKeysDir returns the keys directory the user configured, or the
// default when the config cannot be read.
func configuredKeysDir() string {
	config, err := configs.LoadConfig()
	if err != nil {
		return configs.DefaultConfig().KeysDir()
	}
	return config.KeysDir()
}

// projectOptions builds the workflow options from the persistent flags.
func projectOptions() workflows.ProjectOptions {
	return workflows.ProjectOptions{
		ProjectPath: projectPath,
		Logger:      Logger,
	}
}
