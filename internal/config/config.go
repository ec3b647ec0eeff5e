// Package config loads the interpreter's optional .jsvmrc.yaml project
// file and applies command-line --set key=value overrides on top of it,
// the way the teacher's CLI layers flags over file-based defaults.
package config

import (
	"fmt"
	"os"

	yaml "github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/cwbudde/go-jsvm/internal/version"
)

// Config is the resolved set of defaults: which dialect to run scripts
// against, and whether the CLI starts verbose.
type Config struct {
	Lang    string `yaml:"lang"`
	Verbose bool   `yaml:"verbose"`
	Arena   int    `yaml:"arena"`
}

// Default returns the zero-config baseline: v5, non-verbose, default
// arena sizing.
func Default() Config {
	return Config{Lang: "v5"}
}

// Load reads a .jsvmrc.yaml file at path. A missing file is not an
// error: Load returns Default() unchanged so the CLI works with zero
// configuration present.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// ApplySets patches cfg with a list of "key=value" overrides (as passed
// to --set on the CLI), re-marshaling cfg to JSON and applying each patch
// with sjson before reading the result back out with gjson. Only the
// lang, verbose and arena keys are read back; a patch to any other key
// has no effect on the returned Config.
func ApplySets(cfg Config, sets []string) (Config, error) {
	if len(sets) == 0 {
		return cfg, nil
	}

	doc := fmt.Sprintf(`{"lang":%q,"verbose":%v,"arena":%d}`, cfg.Lang, cfg.Verbose, cfg.Arena)

	for _, kv := range sets {
		key, value, ok := splitKV(kv)
		if !ok {
			return cfg, fmt.Errorf("invalid --set %q, want key=value", kv)
		}
		patched, err := sjson.Set(doc, key, value)
		if err != nil {
			return cfg, fmt.Errorf("applying --set %q: %w", kv, err)
		}
		doc = patched
	}

	if v := gjson.Get(doc, "lang"); v.Exists() {
		cfg.Lang = v.String()
	}
	if v := gjson.Get(doc, "verbose"); v.Exists() {
		cfg.Verbose = v.Bool()
	}
	if v := gjson.Get(doc, "arena"); v.Exists() {
		cfg.Arena = int(v.Int())
	}
	return cfg, nil
}

func splitKV(s string) (key, value string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '=' {
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}

// Version resolves the configured dialect string, falling back to V5 on
// an unrecognized value.
func (c Config) Version() version.Version {
	if v, ok := version.Parse(c.Lang); ok {
		return v
	}
	return version.V5
}
