package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	Google struct {
		ClientID string
	}
	JWT struct {
		Secret string
	}
	Log struct {
		Level string
	}
}

// Load reads config from environment (BRAIN_ prefix) and optional secondbrain.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BRAIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("secondbrain")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":3000")
	v.SetDefault("log.level", "info")

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Google.ClientID = v.GetString("google.client_id")
	cfg.JWT.Secret = v.GetString("jwt.secret")
	cfg.Log.Level = v.GetString("log.level")

	if cfg.DB.Driver == "" {
		return nil, fmt.Errorf("BRAIN_DB_DRIVER is required (sqlite3, mysql, postgres)")
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("BRAIN_DB_DSN is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("BRAIN_JWT_SECRET is required")
	}
	// Google client ID is optional: without it /google-auth rejects every
	// token instead of verifying against an empty audience.

	return cfg, nil
}
