package packager

import (
	"crypto"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	// Ensure SHA512 available for checksum calculation.
	_ "crypto/sha512"
)

// checksumFunction is used to fingerprint the produced archive.
const checksumFunction crypto.Hash = crypto.SHA512

var errHashUnavailable = errors.New("hash function unavailable")

// archiveChecksum returns the base64-encoded SHA-512 of the file and its size.
func archiveChecksum(path string) (string, int64, error) {
	if !checksumFunction.Available() {
		return "", 0, fmt.Errorf("checksum calculation not possible: %w", errHashUnavailable)
	}

	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", 0, err
	}

	defer func() {
		_ = file.Close()
	}()

	hasher := checksumFunction.New()

	size, err := io.Copy(hasher, file)
	if err != nil {
		return "", 0, fmt.Errorf("calculate checksum: %w", err)
	}

	return base64.StdEncoding.EncodeToString(hasher.Sum(nil)), size, nil
}
