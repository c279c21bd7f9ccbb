// Package version exposes build metadata of the packager binary itself.
//
// Version, Commit and BuildTime are injected through -ldflags and are
// unrelated to the extension version read from manifest.json.
package version
