// Package archiver drives the external 7-Zip executable.
//
// Locate finds the tool, Invocation builds its deterministic argument list
// and Tool.Archive runs it as a child process, reporting a non-zero exit
// status as *ExitError.
package archiver
