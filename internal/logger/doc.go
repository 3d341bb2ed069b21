// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger writing to stderr with a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level configuration and parsing utilities,
//   - secret masking for values that must never reach a log line.
//
// Stdout is left to the resolved descriptor so it can be piped to the packager.
package logger
