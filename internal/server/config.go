package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/iwvelando/finance-calculator/internal/config"
	"github.com/iwvelando/finance-calculator/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address     string               `yaml:"address"`
	MaxBodySize string               `yaml:"maxBodySize"`
	Logging     config.LoggingConfig `yaml:"logging"`
	// ConfigFile points at the calculator configuration (currencies, GST slabs).
	ConfigFile    string `yaml:"configFile"`
	bodySizeBytes int64
}

// DefaultConfig returns the server configuration used when no file exists.
func DefaultConfig() *Config {
	cfg := &Config{
		Address:    constants.DefaultServerAddress,
		ConfigFile: constants.DefaultConfigFile,
	}
	cfg.SetBodySizeBytes(constants.DefaultMaxBodySizeBytes)
	return cfg
}

// LoadConfig reads the server configuration from a YAML file. A missing
// file or an empty path yields DefaultConfig; unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse server config %s: %w", path, err)
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, fmt.Errorf("server config %s: %w", path, err)
	}
	return cfg, nil
}

// BodySizeBytes returns the maximum accepted request body in bytes.
func (c *Config) BodySizeBytes() int64 {
	return c.bodySizeBytes
}

// SetBodySizeBytes overrides the body limit. Non-positive sizes are ignored.
func (c *Config) SetBodySizeBytes(size int64) {
	if size <= 0 {
		return
	}
	c.bodySizeBytes = size
	c.MaxBodySize = strconv.FormatInt(size, 10)
}

// applyDefaults fills whatever the file left blank and resolves the body
// limit to bytes.
func (c *Config) applyDefaults() error {
	if strings.TrimSpace(c.Address) == "" {
		c.Address = constants.DefaultServerAddress
	}
	if strings.TrimSpace(c.ConfigFile) == "" {
		c.ConfigFile = constants.DefaultConfigFile
	}

	size, err := ParseSize(c.MaxBodySize)
	if err != nil {
		return err
	}
	if size == 0 {
		size = constants.DefaultMaxBodySizeBytes
	}
	c.SetBodySizeBytes(size)
	return nil
}

// sizeUnits maps the accepted suffixes to multipliers, longest first so
// "KB" is not read as "B".
var sizeUnits = []struct {
	suffix     string
	multiplier int64
}{
	{"KIB", 1 << 10},
	{"MIB", 1 << 20},
	{"KB", 1 << 10},
	{"MB", 1 << 20},
	{"K", 1 << 10},
	{"M", 1 << 20},
	{"B", 1},
}

// ParseSize converts a byte count such as "512", "64K", "2MB" or "1MiB"
// into bytes. Units are binary and case-insensitive; an empty string means
// the default body limit.
func ParseSize(value string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(value))
	if s == "" {
		return constants.DefaultMaxBodySizeBytes, nil
	}

	multiplier := int64(1)
	for _, unit := range sizeUnits {
		if number, ok := strings.CutSuffix(s, unit.suffix); ok {
			s, multiplier = strings.TrimSpace(number), unit.multiplier
			break
		}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q", value)
	}
	if n < 0 {
		return 0, fmt.Errorf("size must not be negative, got %q", value)
	}
	if n > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("size %q overflows", value)
	}
	return n * multiplier, nil
}
