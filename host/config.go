package host

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration for the host tools. Missing file and
// missing fields both fall back to defaults so a fresh install works with
// no setup.
type Config struct {
	// Port is the device's serial port. Empty means auto-probe.
	Port string `yaml:"port,omitempty"`
	Baud int    `yaml:"baud"`

	// ProfilesFile is where named calibration profiles are kept locally.
	ProfilesFile string `yaml:"profiles_file,omitempty"`

	// ProfileServer is the optional shared profile service address.
	ProfileServer string `yaml:"profile_server,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Baud:         DefaultBaudRate,
		ProfilesFile: defaultProfilesFile(),
	}
}

// DefaultConfigPath is where LoadConfig looks when no path is given.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "stickkeys", "config.yml")
}

func defaultProfilesFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "stickkeys", "profiles.json")
}

// LoadConfig reads the YAML config at path, or the default location when
// path is empty. A missing file is not an error; unknown fields are, to
// catch typos.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultConfigPath()
		if path == "" {
			return cfg, nil
		}
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Baud <= 0 {
		return fmt.Errorf("baud must be positive, got %d", c.Baud)
	}
	return nil
}
