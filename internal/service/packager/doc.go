// Package packager bundles an extension release into a version-named zip.
//
// It reads the version from the manifest, derives the archive name and hands
// the configured file list to the external archiver, returning whatever
// status the archiver reports.
package packager
