// Package logger provides leveled logging for vault-files commands.
//
// Verbosity is controlled by two flags wired in the root command:
//
//   - --verbose: shows info and warning messages (per-file status lines
//     for files that are already in the requested state)
//   - --debug: shows everything, including internal tracing
//
// Without flags, only errors and critical warnings are printed.
//
// # Log methods
//
//	Logger.Infof()       // shown with --verbose or --debug
//	Logger.Debugf()      // shown only with --debug
//	Logger.Warnf()       // shown with --verbose or --debug
//	Logger.WarnfAlways() // always shown
//	Logger.Errorf()      // always shown
//
// Commands construct the logger in PersistentPreRun from the flag values
// and pass it down to the batch runner.
package logger
