// Package platform maps the host operating system and machine architecture
// to the canonical identifier that keys the on-disk binaries layout, and
// provides portable permission helpers.
package platform
