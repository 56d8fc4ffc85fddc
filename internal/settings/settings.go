// Package settings loads user preferences for the swiper CLI.
//
// Settings come from a TOML file and environment variables. Env overrides
// use the SWIPER_ prefix with dots replaced by underscores, so ui.cell_width
// becomes SWIPER_UI_CELL_WIDTH. The file is read from SWIPER_CONFIG when set,
// otherwise from $XDG_CONFIG_HOME/swiper/config.toml (or ~/.config/swiper).
package settings

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/matzehuels/swiper/pkg/errors"
)

const (
	appName   = "swiper"
	envPrefix = "SWIPER"

	// DefaultCellWidth is the pixel width assumed for one terminal column.
	DefaultCellWidth = 8
	// DefaultFrameRate is the terminal animation frame rate.
	DefaultFrameRate = 60
	// DefaultAddr is the listen address for swiper serve.
	DefaultAddr = ":8080"
)

// Settings holds application settings.
type Settings struct {
	UI     UISettings     `mapstructure:"ui"`
	Server ServerSettings `mapstructure:"server"`
	Deck   DeckSettings   `mapstructure:"deck"`
}

// UISettings holds terminal presentation settings.
type UISettings struct {
	CellWidth int `mapstructure:"cell_width"`
	FrameRate int `mapstructure:"frame_rate"`
}

// ServerSettings holds HTTP API settings.
type ServerSettings struct {
	Addr string `mapstructure:"addr"`
}

// DeckSettings holds deck lookup settings.
type DeckSettings struct {
	DefaultPath string `mapstructure:"default_path"`
}

// Load reads settings from file and env.
func Load() (Settings, error) {
	v := viper.New()

	v.SetDefault("ui.cell_width", DefaultCellWidth)
	v.SetDefault("ui.frame_rate", DefaultFrameRate)
	v.SetDefault("server.addr", DefaultAddr)
	v.SetDefault("deck.default_path", "")

	v.SetConfigType("toml")
	if path := os.Getenv(envPrefix + "_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) && !os.IsNotExist(err) {
			return Settings{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read settings")
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "unmarshal settings")
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate rejects settings the CLI cannot work with.
func (s Settings) Validate() error {
	if s.UI.CellWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "ui.cell_width must be positive, got %d", s.UI.CellWidth)
	}
	if s.UI.FrameRate <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "ui.frame_rate must be positive, got %d", s.UI.FrameRate)
	}
	if s.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr is empty")
	}
	return nil
}

// configDir returns the settings directory using XDG standard (~/.config/swiper/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
