package release

import "errors"

const (
	// DefaultProductName is the base name of the extension archive.
	DefaultProductName = "stuff_your_opinion"

	// ArchiveExtension is appended to every archive name.
	ArchiveExtension = ".zip"
)

var (
	// ErrManifestNotFound is returned when the manifest file does not exist.
	ErrManifestNotFound = errors.New("manifest not found")
	// ErrManifestMalformed is returned when the manifest is not valid JSON
	// or its version is not a JSON string.
	ErrManifestMalformed = errors.New("manifest is malformed")
	// ErrVersionMissing is returned when the manifest has no version key.
	ErrVersionMissing = errors.New("manifest has no version")
)

// Manifest is the subset of the extension manifest the packager reads.
type Manifest struct {
	// Version is the release version, used verbatim in the archive name.
	Version string
}

// OutputName returns the archive filename for the given product and version.
// The version is not validated.
func OutputName(product, version string) string {
	return product + "-v" + version + ArchiveExtension
}

// ArchiveName returns the archive filename for this manifest.
func (m *Manifest) ArchiveName(product string) string {
	return OutputName(product, m.Version)
}
