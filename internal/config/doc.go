// Package config defines packager settings and provides helpers to load,
// validate and save them.
//
// Settings are layered: built-in defaults, then an optional YAML file, then
// OPINION_PACKAGER_* environment variables.
package config
