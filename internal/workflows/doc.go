// Package workflows provides high-level orchestration for devforge commands.
//
// Workflows coordinate configs, keystore and secrets to implement
// complete user-facing features. Each workflow handles a single command's
// business logic, independent of CLI concerns like flag parsing, spinners,
// and output formatting. The project generator calls the same functions
// (Init and Seed) when it scaffolds a new project.
//
// # Available Workflows
//
//   - Init: creates the encrypted store for a project
//   - Set, Get, List: manage individual secrets
//   - Inject: writes the runtime env file
//   - Seed: fills named secrets with generated passwords
//   - Import: copies an existing dotenv file into the store
//   - Scan: looks for secrets leaked into project files
//
// # Error Handling
//
// Workflows return errors wrapping the sentinels in internal/errors, so the
// CLI layer can choose a message with errors.Is:
//
//	result, err := workflows.Set(ctx, opts)
//	if errors.Is(err, kerrors.ErrStoreNotInitialized) {
//	    // suggest devforge secrets init
//	}
//
// # Context Usage
//
// Every workflow accepts a context.Context as its first parameter and
// checks it before doing any work. Store operations themselves are short
// and are not interrupted once started.
package workflows
