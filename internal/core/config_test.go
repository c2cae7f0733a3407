package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigManager_LoadMissing(t *testing.T) {
	cm := NewConfigManagerWithDir(filepath.Join(t.TempDir(), ".plugrow"))

	cfg, err := cm.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.OpencodeDir != "" || cfg.DefaultScope != "" {
		t.Errorf("missing config should load as defaults, got %+v", cfg)
	}
}

func TestConfigManager_SaveLoad(t *testing.T) {
	cm := NewConfigManagerWithDir(filepath.Join(t.TempDir(), ".plugrow"))

	want := &Config{
		OpencodeDir:  "/custom/opencode",
		DefaultScope: "user",
		CloneURLOverrides: map[string]string{
			"acme/tools": "git@internal:mirror/tools.git",
		},
	}
	if err := cm.Save(want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := cm.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.OpencodeDir != want.OpencodeDir || got.DefaultScope != want.DefaultScope {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
	if got.CloneURLOverrides["acme/tools"] != want.CloneURLOverrides["acme/tools"] {
		t.Errorf("CloneURLOverrides = %v", got.CloneURLOverrides)
	}
}

func TestResolveUserBase(t *testing.T) {
	t.Setenv("OPENCODE_CONFIG_DIR", "")

	// Config override wins over the platform default.
	base, err := ResolveUserBase(&Config{OpencodeDir: "/custom/opencode"})
	if err != nil {
		t.Fatal(err)
	}
	if base != "/custom/opencode" {
		t.Errorf("base = %q, want config override", base)
	}

	// Environment variable wins over everything.
	t.Setenv("OPENCODE_CONFIG_DIR", "/env/opencode")
	base, err = ResolveUserBase(&Config{OpencodeDir: "/custom/opencode"})
	if err != nil {
		t.Fatal(err)
	}
	if base != "/env/opencode" {
		t.Errorf("base = %q, want env override", base)
	}
}

func TestResolveUserBase_Default(t *testing.T) {
	t.Setenv("OPENCODE_CONFIG_DIR", "")
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")

	base, err := ResolveUserBase(&Config{})
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(home, ".config", "opencode")
	if base != want {
		t.Errorf("base = %q, want %q", base, want)
	}
}

func TestResolveUserBase_EmptyEnvIgnored(t *testing.T) {
	// An empty env var must not resolve to "".
	os.Unsetenv("OPENCODE_CONFIG_DIR")
	base, err := ResolveUserBase(&Config{OpencodeDir: "/x"})
	if err != nil {
		t.Fatal(err)
	}
	if base == "" {
		t.Error("base resolved to empty string")
	}
}
