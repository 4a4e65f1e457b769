// Package config handles scheckbl configuration loading and validation.
//
// Precedence, lowest to highest: built-in defaults, the user config file
// (~/.scheckbl/config.toml), SCHECKBL_* environment variables, CLI flag
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Config is the full scheckbl configuration.
type Config struct {
	Output  OutputConfig  `mapstructure:"output" toml:"output"`
	Data    DataConfig    `mapstructure:"data" toml:"data"`
	Similar SimilarConfig `mapstructure:"similar" toml:"similar"`
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	// Format is the default output format: text, json, or yaml.
	Format string `mapstructure:"format" toml:"format"`
	// Color controls styled output: auto, always, or never.
	Color string `mapstructure:"color" toml:"color"`
}

// DataConfig controls where datasets are read from.
type DataConfig struct {
	// Dir overrides the bundled datasets with a filesystem tree laid out as
	// <type_name>/<category>/<file>.txt. Empty means use the bundled data.
	Dir string `mapstructure:"dir" toml:"dir"`
}

// SimilarConfig holds defaults for the similar command.
type SimilarConfig struct {
	// Threshold is the minimum similarity score, between 0 and 1.
	Threshold float64 `mapstructure:"threshold" toml:"threshold"`
	// Algorithm selects the metric: levenshtein, jaro-winkler, or cosine.
	Algorithm string `mapstructure:"algorithm" toml:"algorithm"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Output: OutputConfig{
			Format: "text",
			Color:  "auto",
		},
		Data: DataConfig{
			Dir: "",
		},
		Similar: SimilarConfig{
			Threshold: 0.6,
			Algorithm: "levenshtein",
		},
	}
}

// Validate checks config invariants.
func Validate(cfg Config) error {
	var problems []string

	switch cfg.Output.Format {
	case "text", "json", "yaml":
	default:
		problems = append(problems, fmt.Sprintf("output.format must be text, json, or yaml (got %q)", cfg.Output.Format))
	}
	switch cfg.Output.Color {
	case "auto", "always", "never":
	default:
		problems = append(problems, fmt.Sprintf("output.color must be auto, always, or never (got %q)", cfg.Output.Color))
	}
	if cfg.Similar.Threshold < 0 || cfg.Similar.Threshold > 1 {
		problems = append(problems, fmt.Sprintf("similar.threshold must be between 0 and 1 (got %g)", cfg.Similar.Threshold))
	}
	switch cfg.Similar.Algorithm {
	case "levenshtein", "jaro-winkler", "cosine":
	default:
		problems = append(problems, fmt.Sprintf("similar.algorithm must be levenshtein, jaro-winkler, or cosine (got %q)", cfg.Similar.Algorithm))
	}

	if len(problems) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

// LoadOptions controls config loading.
type LoadOptions struct {
	// ConfigFile overrides the default user config path.
	ConfigFile string
	// FlagOverrides holds dotted-key values from CLI flags, applied last.
	FlagOverrides map[string]any
}

// Load reads configuration with full precedence handling.
func Load(opts LoadOptions) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if err := mergeConfigFile(v, userConfigPath(opts.ConfigFile)); err != nil {
		return Config{}, err
	}

	v.SetEnvPrefix("SCHECKBL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, val := range opts.FlagOverrides {
		v.Set(key, val)
	}

	var cfg Config
	// Environment values arrive as strings; weak typing converts them to the
	// declared field types and errors on garbage.
	weakly := func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = true
	}
	if err := v.Unmarshal(&cfg, weakly); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("output.format", def.Output.Format)
	v.SetDefault("output.color", def.Output.Color)
	v.SetDefault("data.dir", def.Data.Dir)
	v.SetDefault("similar.threshold", def.Similar.Threshold)
	v.SetDefault("similar.algorithm", def.Similar.Algorithm)
}

// mergeConfigFile merges a TOML config file into v. A missing file is not an
// error; an unreadable or unparseable one is.
func mergeConfigFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat config %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("merge config %s: %w", path, err)
	}
	return nil
}

// UserConfigPath returns the default user config file location.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".scheckbl", "config.toml")
}

func userConfigPath(override string) string {
	if override != "" {
		return override
	}
	return UserConfigPath()
}

// valueKind identifies how a config value parses from a string.
type valueKind int

const (
	kindString valueKind = iota
	kindFloat
)

var keyKinds = map[string]valueKind{
	"output.format":     kindString,
	"output.color":      kindString,
	"data.dir":          kindString,
	"similar.threshold": kindFloat,
	"similar.algorithm": kindString,
}

// ParseValue parses a raw string into the typed value for a config key.
func ParseValue(key, raw string) (any, error) {
	kind, ok := keyKinds[key]
	if !ok {
		return nil, fmt.Errorf("unsupported config key: %s", key)
	}
	return parseValueByKind(raw, kind)
}

func parseValueByKind(raw string, kind valueKind) (any, error) {
	switch kind {
	case kindString:
		return raw, nil
	case kindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", raw)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unsupported value kind: %d", kind)
	}
}

// GetValue looks up a dotted key in a loaded Config.
func GetValue(cfg Config, key string) (any, bool) {
	switch key {
	case "output":
		return cfg.Output, true
	case "output.format":
		return cfg.Output.Format, true
	case "output.color":
		return cfg.Output.Color, true
	case "data":
		return cfg.Data, true
	case "data.dir":
		return cfg.Data.Dir, true
	case "similar":
		return cfg.Similar, true
	case "similar.threshold":
		return cfg.Similar.Threshold, true
	case "similar.algorithm":
		return cfg.Similar.Algorithm, true
	default:
		return nil, false
	}
}

// Keys lists the settable config keys in display order.
func Keys() []string {
	return []string{
		"output.format",
		"output.color",
		"data.dir",
		"similar.threshold",
		"similar.algorithm",
	}
}

// WriteValue sets a dotted key in the TOML file at path, creating the file
// and parent directories as needed. Existing unrelated keys are preserved.
func WriteValue(path, key string, value any) error {
	if path == "" {
		return fmt.Errorf("config path is empty")
	}

	root := map[string]any{}
	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, &root); err != nil {
			return fmt.Errorf("decode config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	segments := strings.Split(key, ".")
	node := root
	for _, seg := range segments[:len(segments)-1] {
		child, ok := node[seg]
		if !ok {
			next := map[string]any{}
			node[seg] = next
			node = next
			continue
		}
		next, ok := child.(map[string]any)
		if !ok {
			return fmt.Errorf("config key %s: %s is not a table", key, seg)
		}
		node = next
	}
	node[segments[len(segments)-1]] = value

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(root); err != nil {
		return fmt.Errorf("encode config %s: %w", path, err)
	}
	return nil
}
