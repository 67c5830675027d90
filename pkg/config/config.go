// Package config loads service settings from defaults, an optional YAML
// file and CENTER_FINDER_ prefixed environment variables, in that order.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "CENTER_FINDER"

type CMS struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type Rabbit struct {
	Url    string `mapstructure:"url"`
	VHost  string `mapstructure:"vhost"`
	Prefix string `mapstructure:"prefix"`
}

type Eligibility struct {
	ApplicationUrl string `mapstructure:"application_url"`
}

type Config struct {
	Listen       string        `mapstructure:"listen"`
	DebugListen  string        `mapstructure:"debug_listen"`
	Profiling    bool          `mapstructure:"profiling"`
	LogLevel     string        `mapstructure:"log_level"`
	SnapshotFile string        `mapstructure:"snapshot_file"`
	SessionTTL   time.Duration `mapstructure:"session_ttl"`
	CMS          CMS           `mapstructure:"cms"`
	Redis        Redis         `mapstructure:"redis"`
	Rabbit       Rabbit        `mapstructure:"rabbit"`
	Eligibility  Eligibility   `mapstructure:"eligibility"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", ":8080")
	v.SetDefault("debug_listen", ":8081")
	v.SetDefault("profiling", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("snapshot_file", "data/snapshot.dbz")
	v.SetDefault("session_ttl", "24h")
	v.SetDefault("cms.endpoint", "")
	v.SetDefault("cms.timeout", "10s")
	v.SetDefault("cms.cache_ttl", "60s")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("rabbit.url", "")
	v.SetDefault("rabbit.vhost", "")
	v.SetDefault("rabbit.prefix", "centerfinder")
	v.SetDefault("eligibility.application_url", "")
}

func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads file when given, a missing file is an error.
func Load(file string) (*Config, error) {
	v := NewViper()
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}
	return FromViper(v)
}

func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.CMS.Timeout <= 0 {
		return fmt.Errorf("cms.timeout must be positive")
	}
	if c.CMS.CacheTTL < 0 {
		return fmt.Errorf("cms.cache_ttl can not be negative")
	}
	return nil
}
