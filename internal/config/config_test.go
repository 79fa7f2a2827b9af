package config

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !reflect.DeepEqual(cfg.Extensions, []string{"txt"}) {
		t.Errorf("expected Extensions=[txt], got %v", cfg.Extensions)
	}
	if cfg.Recursive || cfg.Old || cfg.DebugOutput {
		t.Errorf("expected all bools off by default, got %+v", cfg)
	}
	if cfg.Jobs != 0 {
		t.Errorf("expected Jobs=0, got %d", cfg.Jobs)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Extensions = []string{"txt", "vimdoc"}
	cfg.Recursive = true
	cfg.Jobs = 4

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", cfg, loaded)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load of missing file failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("expected defaults for missing file, got %+v", cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("VIMDOC2HTML_EXTENSIONS", ".txt, md")
	t.Setenv("VIMDOC2HTML_RECURSIVE", "true")
	t.Setenv("VIMDOC2HTML_OLD", "1")
	t.Setenv("VIMDOC2HTML_JOBS", "8")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(cfg.Extensions, []string{"txt", "md"}) {
		t.Errorf("expected Extensions=[txt md], got %v", cfg.Extensions)
	}
	if !cfg.Recursive {
		t.Error("expected Recursive=true from env")
	}
	if !cfg.Old {
		t.Error("expected Old=true from env")
	}
	if cfg.Jobs != 8 {
		t.Errorf("expected Jobs=8, got %d", cfg.Jobs)
	}
}

func TestLoad_BadEnvValuesIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("VIMDOC2HTML_RECURSIVE", "maybe")
	t.Setenv("VIMDOC2HTML_JOBS", "-1")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Recursive {
		t.Error("unparseable bool should keep the default")
	}
	if cfg.Jobs != 0 {
		t.Errorf("negative jobs should keep the default, got %d", cfg.Jobs)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"VIMDOC2HTML_EXTENSIONS",
		"VIMDOC2HTML_RECURSIVE",
		"VIMDOC2HTML_OLD",
		"VIMDOC2HTML_DEBUG_OUTPUT",
		"VIMDOC2HTML_JOBS",
	} {
		t.Setenv(k, "")
	}
}
