package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"

	"BatchRenamer/internal/listing"
	"BatchRenamer/internal/session"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

type Config struct {
	Logging struct {
		Level string
		File  string
	}
	Session struct {
		Directory string
		Mode      string
		SortBy    string `mapstructure:"sort_by"`
	}
	Window struct {
		Width  float32
		Height float32
	}
}

// New returns a viper instance with defaults, config file lookup paths and
// BATCHREN_* environment overrides.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.batchren")
	v.AddConfigPath(".")

	v.SetEnvPrefix("batchren")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
	v.SetDefault("session.directory", "")
	v.SetDefault("session.mode", listing.Files.String())
	v.SetDefault("session.sort_by", listing.ByName.String())
	v.SetDefault("window.width", DefaultWidth)
	v.SetDefault("window.height", DefaultHeight)
	return v
}

// Load reads the config file, if any, into a Config. An explicit file that
// cannot be read is an error; a missing default file is not.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// InitialState converts the session section into a session.State.
func (c *Config) InitialState() (session.State, error) {
	mode, err := listing.ParseScanMode(c.Session.Mode)
	if err != nil {
		return session.State{}, err
	}
	sortBy, err := listing.ParseSortKey(c.Session.SortBy)
	if err != nil {
		return session.State{}, err
	}
	return session.State{
		Directory: c.Session.Directory,
		Mode:      mode,
		SortBy:    sortBy,
	}, nil
}
