// Package release contains core domain types for packaging an extension release.
//
// It defines Manifest (the version source), the archive naming rule and the
// errors reported when a manifest cannot supply a version.
package release
