package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/collab/config.yml.
type GlobalConfig struct {
	WorkspacePath string `yaml:"workspace_path,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "collab"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
	// WorkspaceEnv overrides workspace_path when set.
	WorkspaceEnv = "COLLAB_WORKSPACE"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/collab/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	if cfg.WorkspacePath != "" {
		cfg.WorkspacePath = ExpandTilde(cfg.WorkspacePath)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// GetWorkspacePath returns the fallback workspace. COLLAB_WORKSPACE wins over
// the global config file.
func GetWorkspacePath() string {
	if env := os.Getenv(WorkspaceEnv); env != "" {
		return ExpandTilde(env)
	}
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return ""
	}
	return cfg.WorkspacePath
}

// ErrWorkspaceNotConfigured is returned when no fallback workspace is set.
var ErrWorkspaceNotConfigured = errors.New("workspace_path not configured")

// ResolveRepository finds the repository for start, falling back to the
// configured workspace when start is not inside one.
func ResolveRepository(start string) (string, error) {
	root, err := FindRepository(start)
	if err == nil {
		return root, nil
	}
	if !errors.Is(err, ErrNotRepository) {
		return "", err
	}

	ws := GetWorkspacePath()
	if ws == "" {
		return "", fmt.Errorf("%w: %w", ErrNotRepository, ErrWorkspaceNotConfigured)
	}
	if !IsRepository(ws) {
		return "", fmt.Errorf("%w: workspace %s has no %s directory", ErrNotRepository, ws, CollabDir)
	}
	return ws, nil
}

// HelpfulConfigMessage explains how to point collab at a default workspace.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`No collab repository found.

Run 'collab init' here, or create %s to set a default workspace:
  mkdir -p %s
  echo 'workspace_path: /path/to/workspace' > %s

The %s environment variable overrides workspace_path.`,
		configPath,
		filepath.Dir(configPath),
		configPath,
		WorkspaceEnv)
}
