// Package config loads settings from config files and FSTUNES_* environment
// variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/radian-software/fstunes/internal/errmsg"
	"github.com/radian-software/fstunes/internal/match"
	"github.com/radian-software/fstunes/internal/playlist"
)

const (
	appName   = "fstunes"
	envPrefix = "FSTUNES_"
)

type Config struct {
	Home        string `koanf:"home"`         // library root, required
	QueueLength int64  `koanf:"queue_length"` // entries kept behind the current song

	Editor         string `koanf:"editor"` // shell command, defaults to $VISUAL or $EDITOR
	SetDelimiter   string `koanf:"set_delimiter"`
	RangeDelimiter string `koanf:"range_delimiter"`
	Debug          bool   `koanf:"debug"`

	Player PlayerConfig `koanf:"player"`
}

// PlayerConfig holds the shell commands used by seek --play and --pause.
type PlayerConfig struct {
	PlayCommand  string `koanf:"play_command"`
	PauseCommand string `koanf:"pause_command"`
}

// Load reads the config files, then the environment. Later sources win.
func Load() (*Config, error) {
	return load(getConfigPaths())
}

func load(configPaths []string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errmsg.Configuration(errmsg.OpConfigLoad, "reading %s: %v", path, err)
			}
		}
	}

	// FSTUNES_QUEUE_LENGTH -> queue_length, FSTUNES_PLAYER__PLAY_COMMAND -> player.play_command
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, errmsg.Configuration(errmsg.OpConfigLoad, "reading environment: %v", err)
	}

	cfg := &Config{
		QueueLength:    playlist.DefaultQueueLength,
		SetDelimiter:   match.DefaultSetDelimiter,
		RangeDelimiter: match.DefaultRangeDelimiter,
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errmsg.Configuration(errmsg.OpConfigLoad, "%v", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.Home = expandPath(cfg.Home)
	return cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
}

func (c *Config) validate() error {
	if c.QueueLength < 0 {
		return errmsg.Configuration(errmsg.OpConfigLoad, "queue_length must not be negative, got %d", c.QueueLength)
	}
	if c.SetDelimiter == "" || c.RangeDelimiter == "" {
		return errmsg.Configuration(errmsg.OpConfigLoad, "delimiters must not be empty")
	}
	return nil
}

// EditorCommand returns the configured editor, then $VISUAL, then $EDITOR,
// then vi.
func (c *Config) EditorCommand() string {
	for _, cmd := range []string{c.Editor, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if cmd != "" {
			return cmd
		}
	}
	return "vi"
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/fstunes/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./fstunes.toml (pwd, highest priority)
		appName + ".toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
