// Package logger provides leveled console logging for Lockbox commands.
//
// The logger supports two verbosity levels controlled by command-line
// flags:
//
//   - --verbose: shows info messages
//   - --debug: shows debug messages as well
//
// Warnings and errors are always written to stderr.
//
// # Usage
//
//	log := logger.Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Loaded %d secrets", count)
//
// Commands create a logger in their PersistentPreRun and pass it to
// workflows and backends. The zero value is silent except for warnings and
// errors.
package logger
