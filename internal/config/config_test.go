package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/go-jsvm/internal/version"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("cfg = %+v, want Default()", cfg)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".jsvmrc.yaml")
	if err := os.WriteFile(path, []byte("lang: v1\nverbose: true\narena: 4096\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Lang != "v1" || !cfg.Verbose || cfg.Arena != 4096 {
		t.Fatalf("cfg = %+v, want {v1 true 4096}", cfg)
	}
	if cfg.Version() != version.V1 {
		t.Fatalf("Version() = %v, want V1", cfg.Version())
	}
}

func TestApplySetsOverridesFields(t *testing.T) {
	cfg, err := ApplySets(Default(), []string{"lang=v3", "verbose=true", "arena=1024"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Lang != "v3" || !cfg.Verbose || cfg.Arena != 1024 {
		t.Fatalf("cfg = %+v, want {v3 true 1024}", cfg)
	}
}

func TestApplySetsRejectsMalformedPair(t *testing.T) {
	_, err := ApplySets(Default(), []string{"nosign"})
	if err == nil {
		t.Fatal("expected an error for a key=value pair missing '='")
	}
}

func TestApplySetsEmptyIsNoop(t *testing.T) {
	cfg, err := ApplySets(Default(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("cfg = %+v, want Default() unchanged", cfg)
	}
}

func TestUnrecognizedLangFallsBackToV5(t *testing.T) {
	cfg := Config{Lang: "v999"}
	if cfg.Version() != version.V5 {
		t.Fatalf("Version() = %v, want V5 fallback", cfg.Version())
	}
}
