// Package manifest reads the optional bundle manifest shipped inside the
// binaries layout (binaries/manifest.yaml). The manifest is strictly
// advisory: it lists the platform variants a bundle ships and the minimum
// launcher version it expects, and is used to enrich diagnostics. A missing
// or invalid manifest never affects dispatch.
package manifest
