// Package logger provides structured logging for devforge CLI commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is formatted with semantic prefixes and colors.
//
// # Verbosity Levels
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: Shows info and error messages
//   - --debug: Shows all messages including debug details
//
// Without flags, only warnings are shown.
//
// # Log Methods
//
//	Logger.Infof()           // Shown with --verbose or --debug
//	Logger.Debugf()          // Shown only with --debug
//	Logger.Warnf()           // Always shown
//	Logger.Errorf()          // Shown with --verbose or --debug
//	Logger.ErrorfAndReturn() // Errorf, then returns the message as an error
//
// # Masking
//
// Every line passes through Mask before it is written. Values that follow a
// sensitive key name (password, secret, token, key) and a ':' or '=' are
// replaced with ***MASKED***, so a stray "DATABASE_PASSWORD=hunter2" never
// reaches the terminal. Code that refers to a secret should still log its
// name only; masking is the last line of defence, not the first.
package logger
