package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultSessionDir holds the session database when SessionDB is not set.
const DefaultSessionDir = ".cocreate"

// Config holds runtime settings for the cocreate CLI.
type Config struct {
	ServerURL      string
	SessionDB      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.SessionDB = ""
	c.RequestTimeout = 90 * time.Second
}

// LoadConfig constructs a Config from defaults and the environment. Flags are
// applied later by the command tree.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, viper.New())
	return cfg
}

func parseEnv(c *Config, v *viper.Viper) {
	v.SetEnvPrefix("cocreate")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	_ = v.BindEnv("server_url")
	_ = v.BindEnv("session_db")
	_ = v.BindEnv("timeout")

	if v.IsSet("server_url") {
		c.ServerURL = v.GetString("server_url")
	}
	if v.IsSet("session_db") {
		c.SessionDB = v.GetString("session_db")
	}
	if v.IsSet("timeout") {
		if d := v.GetDuration("timeout"); d > 0 {
			c.RequestTimeout = d
		}
	}
}
