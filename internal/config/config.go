package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"

	"github.com/opentools-labs/opentools-launcher/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Config keys.
const (
	KeyBinariesDir = "binaries_dir"
	KeyTool        = "tool"
	KeyInstallRoot = "install_root"
)

var loadOnce sync.Once

// Dir returns the path to the launcher config directory (~/.opentools/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.opentools/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Load initializes Viper to read from the config file and environment.
// Safe to call more than once; only the first call does work.
func Load() {
	loadOnce.Do(func() {
		viper.SetConfigFile(FilePath())
		viper.SetConfigType(fileType)
		viper.SetEnvPrefix(branding.EnvPrefix())
		viper.AutomaticEnv()

		viper.SetDefault(KeyBinariesDir, "binaries")
		viper.SetDefault(KeyTool, branding.CLIName())
		viper.SetDefault(KeyInstallRoot, "")

		// Ignore error if config file doesn't exist.
		_ = viper.ReadInConfig()
	})
}

// BinariesDir returns the name of the per-platform binaries directory
// probed under each candidate root (default "binaries").
func BinariesDir() string {
	Load()
	return viper.GetString(KeyBinariesDir)
}

// ToolName returns the name of the toolset executable inside each platform
// directory (default "opentools").
func ToolName() string {
	Load()
	return viper.GetString(KeyTool)
}

// InstallRoot returns an explicit install-root override, or "" when the
// launcher should derive the root from its own executable location.
func InstallRoot() string {
	Load()
	return viper.GetString(KeyInstallRoot)
}
