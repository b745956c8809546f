// Package ui provides semantic text formatting for CLI output.
//
// Formatters render content according to what it is (a command, a path, a
// secret name, a field name) rather than how it looks. When colors are
// available, content is colorized. When NO_COLOR is set or the terminal
// doesn't support colors, text decorations (backticks, quotes) are used
// instead.
//
//	ui.Code.Sprint("lockbox secrets init")  // Commands
//	ui.Path.Sprint("~/.local/share/lockbox") // File paths
//	ui.Name.Sprint("github")                // Secret names
//	ui.Field.Sprint("password")             // Field names
//	ui.Success.Sprint("✓")                  // Success indicators
//	ui.Error.Sprint("✗")                    // Error indicators
//	ui.Info.Sprint("→")                     // Hints
//	ui.Muted.Sprint("3f2a9c1")              // Secondary text
package ui
