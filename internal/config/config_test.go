package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeSettings stores YAML contents in a temporary settings file and returns its path.
func writeSettings(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultConfigFilename)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

// TestValidate checks required fields and format validations for Config.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.Error(t, Validate(nil))
	require.NoError(t, Validate(Default()))

	cfg := Default()
	cfg.ProductName = " "
	require.ErrorIs(t, Validate(cfg), errProductNameRequired)

	cfg = Default()
	cfg.ManifestPath = ""
	require.ErrorIs(t, Validate(cfg), errManifestPathRequired)

	cfg = Default()
	cfg.Files = nil
	require.ErrorIs(t, Validate(cfg), errFilesRequired)

	cfg = Default()
	cfg.Files = []string{"LICENSE", ""}
	require.ErrorIs(t, Validate(cfg), errEmptyFileEntry)

	cfg = Default()
	cfg.LogLevel = "verbose"
	require.ErrorIs(t, Validate(cfg), errUnknownLogLevel)

	// Missing level falls back to the default.
	cfg = Default()
	cfg.LogLevel = ""
	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

// TestDefaultFiles_ReturnsFreshSlice ensures callers cannot mutate the shared default list.
func TestDefaultFiles_ReturnsFreshSlice(t *testing.T) {
	t.Parallel()

	first := DefaultFiles()
	first[0] = "changed"

	require.Equal(t, DefaultManifestFilename, DefaultFiles()[0])
}

// TestLoad_Defaults checks that an absent default settings file yields the built-in values.
func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, []string{"manifest.json", "LICENSE", "README.md", "stuff-your-opinion.js", "icons/*.png"}, cfg.Files)
}

// TestLoad_MissingExplicitFile asserts that a path given by the user must exist.
func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestLoad_File verifies YAML values override defaults and lists are replaced, not merged.
func TestLoad_File(t *testing.T) {
	t.Parallel()

	path := writeSettings(t, `
product_name: opinion
archiver_path: /opt/7zip/7zz
files:
  - manifest.json
  - dist/*.js
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "opinion", cfg.ProductName)
	require.Equal(t, "/opt/7zip/7zz", cfg.ArchiverPath)
	require.Equal(t, []string{"manifest.json", "dist/*.js"}, cfg.Files)
	require.Equal(t, DefaultManifestFilename, cfg.ManifestPath)
	require.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

// TestLoad_InvalidFile ensures broken YAML and invalid values are reported.
func TestLoad_InvalidFile(t *testing.T) {
	t.Parallel()

	_, err := Load(writeSettings(t, "files: [unterminated"))
	require.Error(t, err)

	_, err = Load(writeSettings(t, "log_level: chatty\n"))
	require.ErrorIs(t, err, errUnknownLogLevel)
}

// TestLoad_EnvOverridesFile checks the precedence defaults < file < environment.
func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeSettings(t, "archiver_path: /from/file/7z\nproduct_name: from_file\n")

	t.Setenv("OPINION_PACKAGER_ARCHIVER_PATH", "/from/env/7z")
	t.Setenv("OPINION_PACKAGER_FILES", "manifest.json, LICENSE")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/from/env/7z", cfg.ArchiverPath)
	require.Equal(t, "from_file", cfg.ProductName)
	require.Equal(t, []string{"manifest.json", "LICENSE"}, cfg.Files)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	settings := Default()
	settings.ArchiverPath = `C:\Program Files\7-Zip\7z.exe`

	require.NoError(t, Save(path, settings))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, settings, loaded)

	require.ErrorIs(t, Save(path, nil), errConfigIsNotSet)
}

// chdir changes the working directory to dir and restores it when the test ends.
func chdir(t *testing.T, dir string) {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(wd)) })
}
