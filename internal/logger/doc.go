// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and configuration,
//   - key-value helpers (DebugKV, InfoKV, WarnKV, ErrorKV).
//
// The packager threads a context through every step and logs through it,
// so names and key-value pairs attached upstream show up on every line.
package logger
