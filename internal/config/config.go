// Package config loads the server configuration from a YAML file, with
// defaults that make a bare `chesscore` invocation work out of the box.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Listen is the address the HTTP server binds to.
	Listen string `yaml:"listen"`

	// AllowOrigin is the CORS origin the frontend is served from.
	AllowOrigin string `yaml:"allow_origin"`

	Engine EngineConfig `yaml:"engine"`

	// FENLogPath is the append-only log of positions sent to the engine.
	// Empty disables the log.
	FENLogPath string `yaml:"fen_log_path"`

	// DBPath is the SQLite file holding finished games. Empty disables
	// archiving.
	DBPath string `yaml:"db_path"`
}

type EngineConfig struct {
	// Path to a UCI engine binary. Empty disables bot play.
	Path string `yaml:"path"`

	// Depth is the search depth requested per move.
	Depth int `yaml:"depth"`

	// MoveTimeout bounds how long a bot move may take.
	MoveTimeout Duration `yaml:"move_timeout"`
}

// Duration lets a timeout be written as "5s" in the YAML file.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Listen:      ":3000",
		AllowOrigin: "http://localhost:5173",
		Engine: EngineConfig{
			Depth:       10,
			MoveTimeout: Duration(10 * time.Second),
		},
		FENLogPath: "chesscore.fen",
		DBPath:     "chesscore.db",
	}
}

// Load reads the YAML file at path on top of the defaults. A missing file is
// an error; call Default directly when no file is expected.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen must not be empty")
	}
	if c.Engine.Depth <= 0 {
		return fmt.Errorf("engine depth must be positive, got %d", c.Engine.Depth)
	}
	if c.Engine.MoveTimeout <= 0 {
		return fmt.Errorf("engine move_timeout must be positive, got %v", c.Engine.MoveTimeout.Std())
	}
	return nil
}
