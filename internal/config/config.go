package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "WSN"

// DefaultPath is where Load looks when no path is given.
const DefaultPath = "configs/config.yml"

type Config struct {
	Port        string            `mapstructure:"port"`
	Log         LogConfig         `mapstructure:"log"`
	DB          DBConfig          `mapstructure:"db"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Acquisition AcquisitionConfig `mapstructure:"acquisition"`
	Monitor     MonitorConfig     `mapstructure:"monitor"`
	Graph       GraphConfig       `mapstructure:"graph"`
	Server      ServerConfig      `mapstructure:"server"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

type AcquisitionConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"` // 0 waits for the backend indefinitely
}

type ModeConfig struct {
	Name         string `mapstructure:"name"`
	StartControl string `mapstructure:"start_control"`
	StopControl  string `mapstructure:"stop_control"`
}

type MonitorConfig struct {
	DefaultInterval time.Duration `mapstructure:"default_interval"`
	Menus           []string      `mapstructure:"menus"`
	MobileMenus     []string      `mapstructure:"mobile_menus"`
	Modes           []ModeConfig  `mapstructure:"modes"`
}

type GraphConfig struct {
	MaxPoints int `mapstructure:"max_points"`
}

type ServerConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.path", "wsn_dashboard.db")
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("acquisition.base_url", "http://127.0.0.1:5000")
	v.SetDefault("acquisition.timeout", time.Duration(0))
	v.SetDefault("monitor.default_interval", time.Second)
	v.SetDefault("monitor.menus", []string{"btn_ihome", "btn_monit", "btn_about", "btn_confi", "btn_acqui", "btn_gtime", "btn_gfreq"})
	v.SetDefault("monitor.mobile_menus", []string{"btn_ihome", "btn_monit", "btn_about"})
	v.SetDefault("monitor.modes", []map[string]any{
		{"name": "mon", "start_control": "btn_start_mon", "stop_control": "btn_stop_mon"},
		{"name": "monASD", "start_control": "btn_start_asd", "stop_control": "btn_stop_asd"},
	})
	v.SetDefault("graph.max_points", 600)
	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
}

// Load reads path (DefaultPath when empty) on top of the defaults; WSN_*
// environment variables override both. A missing file is not an error.
func Load(path string) (Config, error) {
	var cfg Config

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)

	if path == "" {
		path = DefaultPath
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the services cannot run with.
func (c Config) Validate() error {
	if c.Acquisition.BaseURL == "" {
		return errors.New("acquisition.base_url is required")
	}
	if c.Acquisition.Timeout < 0 {
		return errors.New("acquisition.timeout must not be negative")
	}
	if c.Monitor.DefaultInterval <= 0 {
		return errors.New("monitor.default_interval must be positive")
	}
	seen := make(map[string]bool, len(c.Monitor.Modes))
	for i, m := range c.Monitor.Modes {
		if m.Name == "" {
			return fmt.Errorf("monitor.modes[%d]: name is required", i)
		}
		if seen[m.Name] {
			return fmt.Errorf("monitor.modes[%d]: duplicate mode %q", i, m.Name)
		}
		seen[m.Name] = true
	}
	return nil
}
