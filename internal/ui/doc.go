// Package ui provides semantic text formatting for CLI output.
//
// Formatters render content according to terminal capabilities. When colors
// are available, content is colorized. When NO_COLOR is set or the terminal
// doesn't support colors, text-based decorations are used instead.
//
//	ui.Code.Sprint("devforge secrets init")   // Commands and code
//	ui.Path.Sprint(".secrets.devforge")       // File paths
//	ui.Name.Sprint("DATABASE_PASSWORD")       // Secret names
//	ui.Success.Sprint("✓")                    // Success indicators
//	ui.Error.Sprint("✗")                      // Error indicators
//	ui.Warning.Sprint("⚠")                    // Warnings
//	ui.Info.Sprint("→")                       // Informational hints
//	ui.Muted.Sprint("optional")               // De-emphasized text
//
// Without colors, Code is wrapped in `backticks`, Name in 'single quotes'
// and Muted in (parentheses). The others are left undecorated.
package ui
