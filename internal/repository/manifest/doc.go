// Package manifest reads the extension manifest from disk.
//
// FileRepository loads a JSON document and extracts its version field,
// mapping each failure onto the release package errors.
package manifest
