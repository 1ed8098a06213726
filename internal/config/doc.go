// Package config reads launcher settings from the user config file and
// environment. Every key has a built-in default that reproduces the fixed
// binaries layout, so a plain installation needs no configuration at all.
//
// Precedence: OPENTOOLS_* environment variables, then ~/.opentools/config.yaml,
// then defaults.
package config
