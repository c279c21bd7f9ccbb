package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/buger/jsonparser"

	"github.com/oshokin/stuff-your-opinion/internal/domain/release"
)

// versionKey is the manifest field holding the release version.
const versionKey = "version"

// Repository defines read access to the release manifest.
type Repository interface {
	Load(ctx context.Context) (*release.Manifest, error)
}

// FileRepository reads the manifest from a JSON file on disk.
type FileRepository struct {
	// path is the filesystem location of the manifest.
	path string
}

// NewFileRepository creates a repository that reads JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the manifest from disk and returns its version.
func (r *FileRepository) Load(_ context.Context) (*release.Manifest, error) {
	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", r.path, release.ErrManifestNotFound)
		}

		return nil, fmt.Errorf("read manifest file: %w", err)
	}

	version, err := parseVersion(contents)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}

	return &release.Manifest{
		Version: version,
	}, nil
}

// parseVersion extracts the top-level version string from a JSON document.
// When the key repeats, the last occurrence wins.
func parseVersion(contents []byte) (string, error) {
	if !json.Valid(contents) {
		return "", fmt.Errorf("invalid JSON: %w", release.ErrManifestMalformed)
	}

	var (
		value    []byte
		dataType = jsonparser.NotExist
	)

	err := jsonparser.ObjectEach(contents, func(key, v []byte, vt jsonparser.ValueType, _ int) error {
		if string(key) == versionKey {
			value, dataType = v, vt
		}

		return nil
	})
	if err != nil || dataType == jsonparser.NotExist {
		// A valid document that is not an object has no version key either.
		return "", release.ErrVersionMissing
	}

	if dataType != jsonparser.String {
		return "", fmt.Errorf("%s is %s, not a string: %w", versionKey, dataType, release.ErrManifestMalformed)
	}

	version, err := jsonparser.ParseString(value)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w: %w", versionKey, release.ErrManifestMalformed, err)
	}

	return version, nil
}
