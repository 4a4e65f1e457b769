package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestDefaultConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate(DefaultConfig) unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Format = "bad"
	cfg.Output.Color = "bad"
	cfg.Similar.Threshold = 1.5
	cfg.Similar.Algorithm = "soundex"

	err := Validate(cfg)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "config validation failed") {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"output.format", "output.color", "similar.threshold", "similar.algorithm"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %v missing %q", err, want)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "missing.toml")})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Similar.Threshold != 0.6 {
		t.Fatalf("threshold=%g want 0.6", cfg.Similar.Threshold)
	}
	if cfg.Output.Format != "text" {
		t.Fatalf("format=%q want text", cfg.Output.Format)
	}
}

func TestLoad_Precedence_DefaultsFileEnvFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	// File: 0.7
	if err := WriteValue(path, "similar.threshold", 0.7); err != nil {
		t.Fatalf("WriteValue: %v", err)
	}
	cfg, err := Load(LoadOptions{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Similar.Threshold != 0.7 {
		t.Fatalf("threshold=%g want 0.7 (file)", cfg.Similar.Threshold)
	}

	// Env beats file: 0.8
	t.Setenv("SCHECKBL_SIMILAR_THRESHOLD", "0.8")
	cfg, err = Load(LoadOptions{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Similar.Threshold != 0.8 {
		t.Fatalf("threshold=%g want 0.8 (env)", cfg.Similar.Threshold)
	}

	// Flags beat env: 0.9
	cfg, err = Load(LoadOptions{
		ConfigFile: path,
		FlagOverrides: map[string]any{
			"similar.threshold": 0.9,
		},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Similar.Threshold != 0.9 {
		t.Fatalf("threshold=%g want 0.9 (flag)", cfg.Similar.Threshold)
	}
}

func TestLoad_InvalidEnvValueErrors(t *testing.T) {
	t.Setenv("SCHECKBL_SIMILAR_THRESHOLD", "not-a-number")
	if _, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "missing.toml")}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoad_InvalidFileValueErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteValue(path, "similar.threshold", 3.0); err != nil {
		t.Fatalf("WriteValue: %v", err)
	}
	if _, err := Load(LoadOptions{ConfigFile: path}); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestMergeConfigFile(t *testing.T) {
	v := newTestViper()

	// Empty path is a no-op.
	if err := mergeConfigFile(v, ""); err != nil {
		t.Fatalf("mergeConfigFile(empty): %v", err)
	}

	// Missing file is a no-op.
	if err := mergeConfigFile(v, filepath.Join(t.TempDir(), "missing.toml")); err != nil {
		t.Fatalf("mergeConfigFile(missing): %v", err)
	}

	// Directory path is an error.
	if err := mergeConfigFile(v, t.TempDir()); err == nil {
		t.Fatalf("expected error for directory path")
	}

	// Invalid TOML is an error.
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("similar = [\n"), 0644); err != nil {
		t.Fatalf("write invalid toml: %v", err)
	}
	if err := mergeConfigFile(v, path); err == nil {
		t.Fatalf("expected error for invalid toml")
	}
}

func newTestViper() *viper.Viper {
	// Keep this in a helper to avoid importing viper in every test.
	// It also ensures defaults are seeded, mirroring Load().
	v := viper.New()
	setDefaults(v)
	return v
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue("similar.threshold", "0.75")
	if err != nil {
		t.Fatalf("ParseValue float: %v", err)
	}
	if v.(float64) != 0.75 {
		t.Fatalf("unexpected value: %#v", v)
	}

	v, err = ParseValue("output.format", "json")
	if err != nil {
		t.Fatalf("ParseValue string: %v", err)
	}
	if v.(string) != "json" {
		t.Fatalf("unexpected value: %#v", v)
	}

	if _, err := ParseValue("similar.threshold", "abc"); err == nil {
		t.Fatalf("expected error for non-numeric threshold")
	}

	if _, err := parseValueByKind("x", valueKind(123)); err == nil {
		t.Fatalf("expected error for unsupported value kind")
	}

	if _, err := ParseValue("nope.nope", "x"); err == nil {
		t.Fatalf("expected unsupported key error")
	}
}

func TestGetValue(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		key  string
		want any
	}{
		{"output", cfg.Output},
		{"output.format", cfg.Output.Format},
		{"output.color", cfg.Output.Color},
		{"data", cfg.Data},
		{"data.dir", cfg.Data.Dir},
		{"similar", cfg.Similar},
		{"similar.threshold", cfg.Similar.Threshold},
		{"similar.algorithm", cfg.Similar.Algorithm},
	}
	for _, tc := range cases {
		got, ok := GetValue(cfg, tc.key)
		if !ok {
			t.Fatalf("GetValue(%q) not found", tc.key)
		}
		if got != tc.want {
			t.Fatalf("GetValue(%q)=%#v want %#v", tc.key, got, tc.want)
		}
	}

	for _, bad := range []string{"", "nope", "output.nope", "similar.nope"} {
		if _, ok := GetValue(cfg, bad); ok {
			t.Fatalf("expected %q to be not found", bad)
		}
	}
}

func TestKeys_AllResolve(t *testing.T) {
	cfg := DefaultConfig()
	for _, key := range Keys() {
		if _, ok := GetValue(cfg, key); !ok {
			t.Fatalf("Keys() lists unresolvable key %q", key)
		}
		if _, err := ParseValue(key, "0.5"); err != nil && !strings.Contains(err.Error(), "not a number") {
			t.Fatalf("ParseValue(%q): %v", key, err)
		}
	}
}

func TestWriteValue(t *testing.T) {
	if err := WriteValue("", "similar.threshold", 0.7); err == nil {
		t.Fatalf("expected error for empty path")
	}

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteValue(path, "similar.threshold", 0.7); err != nil {
		t.Fatalf("WriteValue: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "[similar]") || !strings.Contains(string(data), "threshold = 0.7") {
		t.Fatalf("unexpected toml: %q", string(data))
	}

	// Unrelated keys are preserved.
	if err := WriteValue(path, "output.format", "json"); err != nil {
		t.Fatalf("WriteValue second key: %v", err)
	}
	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "threshold = 0.7") || !strings.Contains(string(data), `format = "json"`) {
		t.Fatalf("unexpected toml after second write: %q", string(data))
	}

	// Error when an intermediate segment is not a table.
	bad := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(bad, []byte("similar = \"oops\"\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := WriteValue(bad, "similar.threshold", 0.7); err == nil {
		t.Fatalf("expected error when similar is not a table")
	}
}

func TestWriteValue_DecodeExistingInvalidTOMLErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("similar = [\n"), 0644); err != nil {
		t.Fatalf("write invalid toml: %v", err)
	}
	if err := WriteValue(path, "similar.threshold", 0.7); err == nil {
		t.Fatalf("expected decode error")
	} else if !strings.Contains(err.Error(), "decode config") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWriteValue_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".scheckbl", "config.toml")
	if err := WriteValue(path, "output.color", "never"); err != nil {
		t.Fatalf("WriteValue: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file missing: %v", err)
	}
}
