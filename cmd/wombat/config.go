package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/layer-3/wombat/core"
)

// Config is the process configuration.
type Config struct {
	AppName    string        `mapstructure:"app_name"`
	ListenAddr string        `mapstructure:"listen_addr"`
	RedisURL   string        `mapstructure:"redis_url"`
	BridgeURL  string        `mapstructure:"bridge_url"`
	Origin     string        `mapstructure:"origin"`
	UserAgent  string        `mapstructure:"user_agent"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	LogLevel   string        `mapstructure:"log_level"`
	Chains     []core.Chain  `mapstructure:"chains"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "")
	v.SetDefault("listen_addr", ":9000")
	v.SetDefault("redis_url", "")
	v.SetDefault("bridge_url", "http://127.0.0.1:50006")
	v.SetDefault("origin", "")
	v.SetDefault("user_agent", "")
	v.SetDefault("session_ttl", 24*time.Hour)
	v.SetDefault("log_level", "info")
}

// loadConfig reads configFile (if set), WOMBAT_* env vars and bound flags.
func loadConfig(v *viper.Viper, configFile string) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix("wombat")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.AppName == "" {
		return nil, fmt.Errorf("app_name: %w", core.ErrMissingAppName)
	}
	if len(cfg.Chains) == 0 {
		return nil, fmt.Errorf("chains: %w", core.ErrNoChains)
	}

	return &cfg, nil
}
