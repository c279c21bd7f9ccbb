package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/oshokin/stuff-your-opinion/internal/domain/release"
	"github.com/oshokin/stuff-your-opinion/internal/logger"
)

// Config holds the packager settings.
type Config struct {
	// ManifestPath is the JSON manifest supplying the release version.
	ManifestPath string `koanf:"manifest_path" yaml:"manifest_path"`
	// ProductName is the constant base name of the produced archive.
	ProductName string `koanf:"product_name" yaml:"product_name"`
	// ArchiverPath points at the archiving executable. Empty means discover it.
	ArchiverPath string `koanf:"archiver_path" yaml:"archiver_path"`
	// Files lists archive inputs in the order they are handed to the archiver.
	Files []string `koanf:"files" yaml:"files"`
	// LogLevel is the minimum level of emitted log lines.
	LogLevel string `koanf:"log_level" yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the settings file looked up when no path is given.
	DefaultConfigFilename = "opinion-packager.yaml"

	// DefaultManifestFilename is the extension manifest in the project root.
	DefaultManifestFilename = "manifest.json"

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// EnvPrefix marks environment variables that override settings.
	EnvPrefix = "OPINION_PACKAGER_"

	// DefaultFilePermissions is the file permission for saved settings.
	DefaultFilePermissions = 0o644

	// listSeparator splits list values supplied through the environment.
	listSeparator = ","

	// filesKey is the koanf key of the archive input list.
	filesKey = "files"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errProductNameRequired is returned when the archive base name is empty.
	errProductNameRequired = errors.New("product name must be provided")
	// errManifestPathRequired is returned when the manifest path is empty.
	errManifestPathRequired = errors.New("manifest path must be provided")
	// errFilesRequired is returned when there is nothing to archive.
	errFilesRequired = errors.New("at least one file must be listed")
	// errEmptyFileEntry is returned when the file list contains a blank entry.
	errEmptyFileEntry = errors.New("file entry is empty")
	// errUnknownLogLevel is returned for a log level zap does not know.
	errUnknownLogLevel = errors.New("unknown log level")
)

// DefaultFiles returns the archive inputs of the extension release, in order.
func DefaultFiles() []string {
	return []string{
		DefaultManifestFilename,
		"LICENSE",
		"README.md",
		"stuff-your-opinion.js",
		"icons/*.png",
	}
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		ManifestPath: DefaultManifestFilename,
		ProductName:  release.DefaultProductName,
		Files:        DefaultFiles(),
		LogLevel:     DefaultLogLevel,
	}
}

// Load builds the settings from defaults, the YAML file at path and the environment.
// An empty path means DefaultConfigFilename, which may be absent;
// an explicit path must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := setDefaults(k); err != nil {
		return nil, err
	}

	if err := loadFile(k, path); err != nil {
		return nil, err
	}

	if err := loadEnv(k); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yamlv3.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err = os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for required fields and fills defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if strings.TrimSpace(cfg.ProductName) == "" {
		return errProductNameRequired
	}

	if strings.TrimSpace(cfg.ManifestPath) == "" {
		return errManifestPathRequired
	}

	if len(cfg.Files) == 0 {
		return errFilesRequired
	}

	for i, name := range cfg.Files {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("files[%d]: %w", i, errEmptyFileEntry)
		}
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%q: %w", cfg.LogLevel, errUnknownLogLevel)
	}

	return nil
}

// setDefaults seeds koanf with the built-in settings.
func setDefaults(k *koanf.Koanf) error {
	defaults := Default()

	values := map[string]any{
		"manifest_path": defaults.ManifestPath,
		"product_name":  defaults.ProductName,
		"archiver_path": defaults.ArchiverPath,
		filesKey:        defaults.Files,
		"log_level":     defaults.LogLevel,
	}

	for key, value := range values {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

// loadFile merges the YAML settings file into k.
func loadFile(k *koanf.Koanf, path string) error {
	optional := path == ""
	if optional {
		path = DefaultConfigFilename
	}

	path = filepath.Clean(path)

	if _, err := os.Stat(path); err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("read settings: %w", err)
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("parse settings %s: %w", path, err)
	}

	return nil
}

// loadEnv merges OPINION_PACKAGER_* variables into k
// (OPINION_PACKAGER_ARCHIVER_PATH -> archiver_path).
func loadEnv(k *koanf.Koanf) error {
	provider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})

	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("load environment: %w", err)
	}

	// The environment carries lists as comma-separated strings.
	if raw, ok := k.Get(filesKey).(string); ok {
		if err := k.Set(filesKey, splitList(raw)); err != nil {
			return fmt.Errorf("set %s: %w", filesKey, err)
		}
	}

	return nil
}

// splitList splits a comma-separated value and trims every element.
func splitList(raw string) []string {
	parts := strings.Split(raw, listSeparator)

	result := make([]string, 0, len(parts))
	for _, part := range parts {
		result = append(result, strings.TrimSpace(part))
	}

	return result
}
