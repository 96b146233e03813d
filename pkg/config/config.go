package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/fthomys/update-alternatives/pkg/errors"
)

const (
	// SystemConfigPath is the machine-wide configuration file.
	SystemConfigPath = "/etc/update-alternatives/config.toml"

	// EnvPrefix is the prefix for configuration environment variables.
	// UPDATE_ALTERNATIVES_STORAGE_DIR maps to the storage.dir key.
	EnvPrefix = "UPDATE_ALTERNATIVES_"

	appDirName     = "update-alternatives"
	configFileName = "config.toml"
)

// Storage configures where the alternatives database lives.
type Storage struct {
	Dir string `koanf:"dir"`
}

// Links configures where winning targets are exposed as symlinks.
type Links struct {
	Dir string `koanf:"dir"`
}

// Output configures how command results are rendered.
type Output struct {
	Format string `koanf:"format"`
}

// Manifests configures where install looks for manifest files when none are
// given on the command line.
type Manifests struct {
	Dir string `koanf:"dir"`
}

// Config is the main configuration structure
type Config struct {
	Storage   Storage   `koanf:"storage"`
	Links     Links     `koanf:"links"`
	Output    Output    `koanf:"output"`
	Manifests Manifests `koanf:"manifests"`
}

// UserConfigPath returns the per-user configuration file path.
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appDirName, configFileName)
}

// Load builds the effective configuration from the standard locations.
// overrides holds flag-level settings keyed by dotted config path
// (e.g. "storage.dir") and wins over every other source.
func Load(overrides map[string]interface{}) (*Config, error) {
	return LoadFrom([]string{SystemConfigPath, UserConfigPath()}, overrides)
}

// LoadFrom is Load with explicit config file locations, ordered lowest to
// highest precedence. Missing files are skipped.
func LoadFrom(configFiles []string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default configuration")
	}

	// 2. Config files, system before user
	for _, path := range configFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
		}
	}

	// 3. Environment variables
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	// 4. Explicit flag overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load flag overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if !filepath.IsAbs(c.Storage.Dir) {
		return errors.Newf(errors.ErrConfigValid,
			"storage.dir must be an absolute path, got %q", c.Storage.Dir)
	}
	if !filepath.IsAbs(c.Links.Dir) {
		return errors.Newf(errors.ErrConfigValid,
			"links.dir must be an absolute path, got %q", c.Links.Dir)
	}
	if c.Manifests.Dir != "" && !filepath.IsAbs(c.Manifests.Dir) {
		return errors.Newf(errors.ErrConfigValid,
			"manifests.dir must be an absolute path, got %q", c.Manifests.Dir)
	}
	switch c.Output.Format {
	case "auto", "term", "text", "json":
	default:
		return errors.Newf(errors.ErrConfigValid,
			"output.format must be one of auto, term, text or json, got %q", c.Output.Format)
	}
	return nil
}
