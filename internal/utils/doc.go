// Package utils provides shared helpers for the Lockbox command line.
//
// # String Utilities
//
// Functions for parsing and formatting command-line values:
//   - ParseAssignments: turns key=value arguments into a field map
//   - FormatNames: formats secret names as an indented list
//
// # I/O Utilities
//
// Functions for reading from stdin:
//   - ReadStdin: reads all piped data from standard input
//
// # Terminal Utilities
//
// Functions for terminal detection and interaction:
//   - ReadPassphrase: reads hidden input from stdin
//   - ReadPassphraseFromTTY: reads hidden input from the controlling terminal
//   - IsTerminal: checks if stdin is a terminal
package utils
