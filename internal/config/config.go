// Package config handles repository configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents repository configuration stored in .collab/config.json.
type Config struct {
	HistogramBins int    `json:"histogram_bins"`           // Bins for centrality histograms
	TopPairs      int    `json:"top_pairs"`                // N for co-editor recommendations
	DefaultLayout string `json:"default_layout,omitempty"` // Network view layout: force, circle, grid
}

const (
	CollabDir  = ".collab"
	ConfigFile = "config.json"
	NodesFile  = "nodes.jsonl"
	EdgesFile  = "edges.jsonl"
	CacheDir   = "cache"
	DBFile     = "graph.db"
)

// Defaults for a freshly initialized repository.
const (
	DefaultHistogramBins = 10
	DefaultTopPairs      = 10
	DefaultLayout        = "force"
)

// ValidLayouts lists the supported network view layouts.
var ValidLayouts = []string{"force", "circle", "grid"}

// ErrNotRepository is returned when no .collab directory can be found.
var ErrNotRepository = errors.New("not in a collab repository (no .collab directory found)")

// Default returns the configuration written by init.
func Default() *Config {
	return &Config{
		HistogramBins: DefaultHistogramBins,
		TopPairs:      DefaultTopPairs,
		DefaultLayout: DefaultLayout,
	}
}

// CollabPath returns the path to the .collab directory from a root path.
func CollabPath(root string) string {
	return filepath.Join(root, CollabDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, CollabDir, ConfigFile)
}

// NodesPath returns the path to nodes.jsonl from a root path.
func NodesPath(root string) string {
	return filepath.Join(root, CollabDir, NodesFile)
}

// EdgesPath returns the path to edges.jsonl from a root path.
func EdgesPath(root string) string {
	return filepath.Join(root, CollabDir, EdgesFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, CollabDir, CacheDir)
}

// DBPath returns the path to graph.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, CollabDir, CacheDir, DBFile)
}

// IsRepository checks if the given path contains a collab repository.
func IsRepository(root string) bool {
	info, err := os.Stat(CollabPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a collab repository.
// Returns the repository root path or ErrNotRepository.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrNotRepository
		}
		abs = parent
	}
}

// Init creates the .collab directory layout under root with a default config.
// It fails if a repository already exists there.
func Init(root string) (*Config, error) {
	if IsRepository(root) {
		return nil, fmt.Errorf("repository already exists at %s", CollabPath(root))
	}
	if err := os.MkdirAll(CachePath(root), 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", CollabDir, err)
	}
	for _, p := range []string{NodesPath(root), EdgesPath(root)} {
		if err := os.WriteFile(p, nil, 0644); err != nil {
			return nil, fmt.Errorf("creating %s: %w", filepath.Base(p), err)
		}
	}

	cfg := Default()
	if err := cfg.Save(root); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads configuration from the repository at the given root.
// Zero-valued fields are filled with defaults.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HistogramBins == 0 {
		c.HistogramBins = DefaultHistogramBins
	}
	if c.TopPairs == 0 {
		c.TopPairs = DefaultTopPairs
	}
	if c.DefaultLayout == "" {
		c.DefaultLayout = DefaultLayout
	}
}

// Save writes configuration to the repository at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if err := ValidatePositive("histogram_bins", c.HistogramBins); err != nil {
		return err
	}
	if err := ValidatePositive("top_pairs", c.TopPairs); err != nil {
		return err
	}
	return ValidateLayout(c.DefaultLayout)
}

// ValidatePositive checks that an integer setting is at least 1.
func ValidatePositive(name string, v int) error {
	if v < 1 {
		return fmt.Errorf("invalid %s: %d (must be at least 1)", name, v)
	}
	return nil
}

// ValidateLayout checks that the layout value is valid.
func ValidateLayout(layout string) error {
	if layout == "" {
		return nil // Empty defaults to "force"
	}

	for _, valid := range ValidLayouts {
		if layout == valid {
			return nil
		}
	}

	return fmt.Errorf("invalid default_layout: %s (valid: %v)", layout, ValidLayouts)
}

// ExpandTilde expands a leading ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
