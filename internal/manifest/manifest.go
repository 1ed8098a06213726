package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/opentools-labs/opentools-launcher/internal/platform"
)

// FileName is the manifest's name inside the binaries directory.
const FileName = "manifest.yaml"

// Bundle describes a binaries layout: which toolset it carries, its
// version, and the platform variants it ships.
type Bundle struct {
	Name               string   `yaml:"name" json:"name"`
	Version            string   `yaml:"version" json:"version"`
	MinLauncherVersion string   `yaml:"min_launcher_version,omitempty" json:"min_launcher_version,omitempty"`
	Platforms          []string `yaml:"platforms" json:"platforms"`
}

// Parse decodes raw YAML bytes into a Bundle.
func Parse(data []byte) (*Bundle, error) {
	var b Bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parsing bundle manifest: %w", err)
	}
	return &b, nil
}

// ParseFile reads and decodes a bundle manifest file.
func ParseFile(path string) (*Bundle, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Load finds and parses the manifest under the given binaries directory.
// Returns (nil, nil) when no manifest is present; the bundle manifest is
// optional by design.
func Load(binariesDir string) (*Bundle, error) {
	path := filepath.Join(binariesDir, FileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("checking bundle manifest: %w", err)
	}
	return ParseFile(path)
}

// ShippedPlatforms returns the identifiers the bundle declares, keeping
// unknown entries out. A nil bundle ships nothing.
func (b *Bundle) ShippedPlatforms() []platform.Identifier {
	if b == nil {
		return nil
	}
	known := make(map[platform.Identifier]bool, 4)
	for _, id := range platform.Known() {
		known[id] = true
	}
	var out []platform.Identifier
	for _, p := range b.Platforms {
		if id := platform.Identifier(p); known[id] {
			out = append(out, id)
		}
	}
	return out
}

// Ships reports whether the bundle declares a variant for id.
func (b *Bundle) Ships(id platform.Identifier) bool {
	if b == nil {
		return false
	}
	for _, p := range b.Platforms {
		if platform.Identifier(p) == id {
			return true
		}
	}
	return false
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return data, nil
}
