// Package config loads polyform settings from TOML.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/njchilds90/gopoly/internal/logger"
)

// EnvPath names the environment variable consulted when no --config flag is given.
const EnvPath = "GOPOLY_CONFIG"

//go:embed default.toml
var defaultTOML []byte

// Config is the full polyform configuration.
type Config struct {
	Log    logger.Config `toml:"log"`
	Server ServerConfig  `toml:"server"`
	Batch  BatchConfig   `toml:"batch"`
	Render RenderConfig  `toml:"render"`
}

// ServerConfig controls the HTTP tool server.
type ServerConfig struct {
	Addr              string   `toml:"addr"`
	ReadHeaderTimeout Duration `toml:"read_header_timeout"`
	ReadTimeout       Duration `toml:"read_timeout"`
	WriteTimeout      Duration `toml:"write_timeout"`
	IdleTimeout       Duration `toml:"idle_timeout"`
	ShutdownTimeout   Duration `toml:"shutdown_timeout"`
	MaxBodyBytes      int64    `toml:"max_body_bytes"`
}

// BatchConfig controls file mode.
type BatchConfig struct {
	// OutputExt replaces the input file's extension to name the output file.
	OutputExt string `toml:"output_ext"`

	// LockTimeout bounds the wait for the output file lock.
	LockTimeout Duration `toml:"lock_timeout"`

	// WatchDebounce coalesces bursts of write events in --watch mode.
	WatchDebounce Duration `toml:"watch_debounce"`
}

// RenderConfig controls how results are printed.
type RenderConfig struct {
	PreferredVar string `toml:"preferred_var"`
	LaTeX        bool   `toml:"latex"`
	Color        string `toml:"color"` // auto, always, never
}

// Duration is a wrapper for time.Duration that supports TOML marshaling.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for Duration.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler for Duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func (d Duration) String() string {
	return d.Duration.String()
}

// Default returns the built-in configuration.
func Default() *Config {
	var cfg Config
	if err := toml.Unmarshal(defaultTOML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return &cfg
}

// Load layers the file at path over the defaults. An empty path falls back to
// $GOPOLY_CONFIG; if that is unset too, the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("parsing %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges that TOML decoding cannot.
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive (got: %d)", c.Server.MaxBodyBytes)
	}
	if !strings.HasPrefix(c.Batch.OutputExt, ".") || len(c.Batch.OutputExt) < 2 {
		return fmt.Errorf("batch.output_ext must look like \".out\" (got: %q)", c.Batch.OutputExt)
	}
	if len(c.Render.PreferredVar) != 1 || !isLetter(c.Render.PreferredVar[0]) {
		return fmt.Errorf("render.preferred_var must be a single letter (got: %q)", c.Render.PreferredVar)
	}
	switch c.Render.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("render.color must be one of auto, always, never (got: %s)", c.Render.Color)
	}
	return nil
}

// PreferredVar returns the configured tie-break variable as a byte.
func (c *Config) PreferredVar() byte { return c.Render.PreferredVar[0] }

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
