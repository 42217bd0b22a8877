package config

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	appDir     = "drawtreeornament"
	configFile = "config.toml"
)

// Limits on what a drawing session can produce. A committed ornament is at
// most MaxOrnamentSide pixels on a side.
const (
	MaxCanvasSize   = 600
	MaxPixelRatio   = 4
	MaxOrnamentSide = MaxCanvasSize * MaxPixelRatio
	// MaxOrnamentBytes keeps a full tree's snapshot, base64 encoded, under
	// the websocket message limit.
	MaxOrnamentBytes = 256 << 10
)

// Config is the on-disk application configuration.
type Config struct {
	// Port the host serves its tree on.
	Port int
	// Logical size of the ornament canvas.
	CanvasWidth  int
	CanvasHeight int
	// PixelRatio overrides the window's scale when non-zero.
	PixelRatio float64
	// DataDir holds the hosted tree. Empty means the default data directory.
	DataDir string
	// Advertise announces hosted trees on the LAN over mDNS.
	Advertise bool
	// Name is shown as the author of ornaments drawn here. Empty means the
	// host name.
	Name string
}

func Default() Config {
	return Config{
		Port:         8888,
		CanvasWidth:  300,
		CanvasHeight: 300,
		Advertise:    true,
	}
}

// Validate reports settings the app can't start with.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 || c.CanvasWidth > MaxCanvasSize || c.CanvasHeight > MaxCanvasSize {
		return fmt.Errorf("config: canvas size %dx%d must be between 1 and %d", c.CanvasWidth, c.CanvasHeight, MaxCanvasSize)
	}
	if c.PixelRatio < 0 || c.PixelRatio > MaxPixelRatio {
		return fmt.Errorf("config: pixel ratio %v must be between 0 and %d", c.PixelRatio, MaxPixelRatio)
	}
	return nil
}

// Load reads config.toml from dir, writing the defaults first if it does not
// exist. Keys missing from the file keep their default values.
func Load(dir string) (Config, error) {
	conf := Default()
	path := filepath.Join(dir, configFile)

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Println("Initializing config")
		if err := Write(dir, conf); err != nil {
			return conf, err
		}
		return conf, nil
	}
	if err != nil {
		return conf, fmt.Errorf("couldn't check config file: %w", err)
	}

	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return conf, fmt.Errorf("couldn't read config file: %w", err)
	}
	return conf, conf.Validate()
}

// Write stores conf as config.toml in dir.
func Write(dir string, conf Config) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("couldn't create config directory: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(conf); err != nil {
		return fmt.Errorf("couldn't encode config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, configFile), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("couldn't write config file: %w", err)
	}
	return nil
}

// Dir returns the configuration directory.
func Dir() string {
	return filepath.Join(xdgOrFallback("XDG_CONFIG_HOME", filepath.Join(os.Getenv("HOME"), ".config")), appDir)
}

// TreeDir returns where the hosted tree is kept.
func (c Config) TreeDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return filepath.Join(xdgOrFallback("XDG_DATA_HOME", filepath.Join(os.Getenv("HOME"), ".local", "share")), appDir, "tree")
}

// Author returns the name ornaments drawn on this machine are signed with.
func (c Config) Author() string {
	if c.Name != "" {
		return c.Name
	}
	if host, err := os.Hostname(); err == nil {
		return host
	}
	return "anonymous"
}

func xdgOrFallback(xdg string, fallback string) string {
	if dir := os.Getenv(xdg); dir != "" {
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
	}
	log.Printf("Couldn't resolve $%s falling back to '%s'", xdg, fallback)
	return fallback
}
