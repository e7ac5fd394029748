package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeGlobalConfig(t *testing.T, content string) {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	configDir := filepath.Join(tmpDir, GlobalConfigDir)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, GlobalConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestGlobalConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	want := "/custom/config/collab/config.yml"
	if got := GlobalConfigPath(); got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	want = filepath.Join(home, ".config", "collab", "config.yml")
	if got := GlobalConfigPath(); got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}
}

func TestLoadGlobalConfig_NotFound(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg.WorkspacePath != "" {
		t.Errorf("WorkspacePath = %q, want empty", cfg.WorkspacePath)
	}
}

func TestLoadGlobalConfig_Valid(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()
	writeGlobalConfig(t, "workspace_path: ~/collab-data\n")

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if strings.HasPrefix(cfg.WorkspacePath, "~") {
		t.Errorf("WorkspacePath = %q, tilde not expanded", cfg.WorkspacePath)
	}
	if !strings.HasSuffix(cfg.WorkspacePath, "collab-data") {
		t.Errorf("WorkspacePath = %q", cfg.WorkspacePath)
	}
}

func TestLoadGlobalConfig_InvalidYAML(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()
	writeGlobalConfig(t, "workspace_path: [unclosed\n")

	if _, err := LoadGlobalConfig(); err == nil {
		t.Error("LoadGlobalConfig() should return error for invalid YAML")
	}
}

func TestGlobalConfigCache(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()
	writeGlobalConfig(t, "workspace_path: /first\n")

	if got := GetWorkspacePath(); got != "/first" {
		t.Fatalf("GetWorkspacePath() = %q, want /first", got)
	}

	writeGlobalConfig(t, "workspace_path: /second\n")
	if got := GetWorkspacePath(); got != "/first" {
		t.Errorf("cached GetWorkspacePath() = %q, want /first", got)
	}

	ResetGlobalConfigCache()
	if got := GetWorkspacePath(); got != "/second" {
		t.Errorf("GetWorkspacePath() after reset = %q, want /second", got)
	}
}

func TestGetWorkspacePath_EnvOverride(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()
	writeGlobalConfig(t, "workspace_path: /from/file\n")
	t.Setenv(WorkspaceEnv, "/from/env")

	if got := GetWorkspacePath(); got != "/from/env" {
		t.Errorf("GetWorkspacePath() = %q, want /from/env", got)
	}
}

func TestResolveRepository(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	outside := t.TempDir()
	t.Setenv(WorkspaceEnv, "")
	if _, err := ResolveRepository(outside); !errors.Is(err, ErrWorkspaceNotConfigured) {
		t.Errorf("ResolveRepository() error = %v, want ErrWorkspaceNotConfigured", err)
	}

	ws := t.TempDir()
	t.Setenv(WorkspaceEnv, ws)
	if _, err := ResolveRepository(outside); !errors.Is(err, ErrNotRepository) {
		t.Errorf("ResolveRepository() error = %v, want ErrNotRepository", err)
	}

	if _, err := Init(ws); err != nil {
		t.Fatal(err)
	}
	got, err := ResolveRepository(outside)
	if err != nil {
		t.Fatalf("ResolveRepository() error = %v", err)
	}
	if got != ws {
		t.Errorf("ResolveRepository() = %q, want %q", got, ws)
	}
}

func TestHelpfulConfigMessage(t *testing.T) {
	msg := HelpfulConfigMessage()
	for _, want := range []string{"collab init", "workspace_path", WorkspaceEnv} {
		if !strings.Contains(msg, want) {
			t.Errorf("HelpfulConfigMessage() missing %q", want)
		}
	}
}
