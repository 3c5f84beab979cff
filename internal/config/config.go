package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/jask/countdemo/internal/counter"
)

const (
	envPrefix     = "COUNTDEMO"
	envConfigPath = "COUNTDEMO_CONFIG"
	appDir        = "countdemo"
)

// Config holds application configuration.
type Config struct {
	Counter CounterConfig `toml:"counter"`
	Journal JournalConfig `toml:"journal"`
	Log     LogConfig     `toml:"log"`
	UI      UIConfig      `toml:"ui"`
	Keys    KeysConfig    `toml:"keys"`
}

// CounterConfig controls the initializer.
type CounterConfig struct {
	Iterations int64 `toml:"iterations"`
}

// JournalConfig holds sqlite settings for the action journal.
type JournalConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// LogConfig selects where the standard logger writes while the TUI runs.
type LogConfig struct {
	File string `toml:"file"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Title     string `toml:"title" mapstructure:"title"`
	AltScreen bool   `toml:"alt_screen" mapstructure:"alt_screen"`
}

// KeysConfig maps each trigger to the keys that fire it.
type KeysConfig struct {
	Increment []string `toml:"increment"`
	Decrement []string `toml:"decrement"`
	Reset     []string `toml:"reset"`
	Remount   []string `toml:"remount"`
	Command   []string `toml:"command"`
	Quit      []string `toml:"quit"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Counter: CounterConfig{Iterations: 10_000_000},
		Journal: JournalConfig{
			Enabled: false,
			Path:    filepath.Join(os.Getenv("HOME"), ".local", "share", appDir, "journal.db"),
		},
		UI: UIConfig{Title: "useReducer counter", AltScreen: true},
		Keys: KeysConfig{
			Increment: []string{"+", "i", "up"},
			Decrement: []string{"-", "d", "down"},
			Reset:     []string{"r"},
			Remount:   []string{"m"},
			Command:   []string{":"},
			Quit:      []string{"q", "ctrl+c"},
		},
	}
}

// Load reads configuration from file and env. Env var overrides use prefix COUNTDEMO_.
func Load() (Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("counter.iterations", d.Counter.Iterations)
	v.SetDefault("journal.enabled", d.Journal.Enabled)
	v.SetDefault("journal.path", d.Journal.Path)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("ui.title", d.UI.Title)
	v.SetDefault("ui.alt_screen", d.UI.AltScreen)
	v.SetDefault("keys.increment", d.Keys.Increment)
	v.SetDefault("keys.decrement", d.Keys.Decrement)
	v.SetDefault("keys.reset", d.Keys.Reset)
	v.SetDefault("keys.remount", d.Keys.Remount)
	v.SetDefault("keys.command", d.Keys.Command)
	v.SetDefault("keys.quit", d.Keys.Quit)

	v.SetConfigType("toml")

	if cfgPath := os.Getenv(envConfigPath); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", appDir))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the app cannot run with.
func (c Config) Validate() error {
	if c.Counter.Iterations < 0 {
		return fmt.Errorf("counter.iterations must not be negative, got %d", c.Counter.Iterations)
	}
	if c.Counter.Iterations > counter.MaxIterations {
		return fmt.Errorf("counter.iterations must be at most %d, got %d", counter.MaxIterations, c.Counter.Iterations)
	}
	if c.Journal.Enabled && strings.TrimSpace(c.Journal.Path) == "" {
		return errors.New("journal.path is required when journal.enabled is set")
	}
	for name, keys := range map[string][]string{
		"increment": c.Keys.Increment,
		"decrement": c.Keys.Decrement,
		"reset":     c.Keys.Reset,
		"remount":   c.Keys.Remount,
		"command":   c.Keys.Command,
		"quit":      c.Keys.Quit,
	} {
		if len(keys) == 0 {
			return fmt.Errorf("keys.%s must list at least one key", name)
		}
	}
	return nil
}

// DefaultPath is where Load looks when COUNTDEMO_CONFIG is unset.
func DefaultPath() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", appDir, "config.toml")
}

// Render encodes cfg as TOML under a short header comment.
func Render(cfg Config) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("# countdemo configuration\n# Every key can be overridden with COUNTDEMO_<SECTION>_<KEY>.\n\n")
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(cfg); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return buf.String(), nil
}

// WriteDefault writes the default configuration to path. An existing file is
// left alone and reported with os.ErrExist.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("write config %s: %w", path, os.ErrExist)
	}
	body, err := Render(Default())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(body), 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Rename(tmp, path)
}
