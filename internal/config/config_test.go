package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pdfsim/internal/config"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("PDFSIM_HOME", "")
	prevDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prevDir) })

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if resolved != filepath.Join(tempHome, ".config", "pdfsim", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if cfg.Paths.WorkspaceDir != "" {
		t.Fatalf("expected empty workspace dir, got %q", cfg.Paths.WorkspaceDir)
	}
	if cfg.Compare.DropEmptyTokens {
		t.Fatal("expected empty tokens to be kept by default")
	}
	if !cfg.History.Enabled {
		t.Fatal("expected history enabled by default")
	}
	if cfg.FetchTimeout() != 60*time.Second {
		t.Fatalf("unexpected fetch timeout %v", cfg.FetchTimeout())
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults %+v", cfg.Logging)
	}
}

func TestLoadFileExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(t.TempDir(), "pdfsim.toml")
	content := `
[paths]
workspace_dir = "~/sim"

[compare]
drop_empty_tokens = true
workers = 3

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected %s to be loaded, got %s (exists=%v)", path, resolved, exists)
	}
	if cfg.Paths.WorkspaceDir != filepath.Join(tempHome, "sim") {
		t.Fatalf("unexpected workspace dir %q", cfg.Paths.WorkspaceDir)
	}
	if !cfg.Compare.DropEmptyTokens || cfg.Compare.Workers != 3 {
		t.Fatalf("unexpected compare section %+v", cfg.Compare)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging values, got %+v", cfg.Logging)
	}
	if cfg.Fetch.RetryCount != 2 {
		t.Fatalf("expected default retry count to survive, got %d", cfg.Fetch.RetryCount)
	}
}

func TestLoadWorkspaceFromEnv(t *testing.T) {
	envDir := filepath.Join(t.TempDir(), "ws")
	t.Setenv("PDFSIM_HOME", envDir)

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.WorkspaceDir != envDir {
		t.Fatalf("expected workspace from env %q, got %q", envDir, cfg.Paths.WorkspaceDir)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"workers":   "[compare]\nworkers = -1\n",
		"timeout":   "[fetch]\ntimeout_seconds = 0\n",
		"format":    "[logging]\nformat = \"xml\"\n",
		"level":     "[logging]\nlevel = \"loud\"\n",
		"unknown":   "[compare]\nstemming = true\n",
		"malformed": "[compare\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "pdfsim.toml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("create sample: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(raw), "drop_empty_tokens") {
		t.Fatal("expected sample to document drop_empty_tokens")
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("expected sample to load, exists=%v err=%v", exists, err)
	}
}
