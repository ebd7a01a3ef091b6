package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Host          string        `mapstructure:"host"`
	Port          int           `mapstructure:"port"`
	AllowOrigins  []string      `mapstructure:"allow_origins"`
	LogLevel      string        `mapstructure:"log_level"`
	MaxUploadMB   int           `mapstructure:"max_upload_mb"`
	LogFile       string        `mapstructure:"log_file"`
	GeometryPath  string        `mapstructure:"geometry_path"` // пусто: встроенная карта
	Palette       []string      `mapstructure:"palette"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
	MaxSessions   int           `mapstructure:"max_sessions"`
	ExportScale   float64       `mapstructure:"export_scale"`
	ExportTimeout time.Duration `mapstructure:"export_timeout"`
}

var defaultPalette = []string{
	"#f3f0eb", "#e8e1d6", "#ddd2c1", "#d1c2ad", "#c6b399", "#bca486",
	"#b19573", "#a58761", "#9a7850", "#8e6a40", "#7a3946", "#9f2241",
}

// Load reads .env (if any), then defaults < config file < CHORO_* env.
func Load(cfgFile string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CHORO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("port", 8082)
	v.SetDefault("allow_origins", []string{"*"})
	v.SetDefault("log_level", "info")
	v.SetDefault("max_upload_mb", 32)
	v.SetDefault("log_file", "logs/choropleth-service.log")
	v.SetDefault("geometry_path", "")
	v.SetDefault("palette", defaultPalette)
	v.SetDefault("session_ttl", 2*time.Hour)
	v.SetDefault("max_sessions", 256)
	v.SetDefault("export_scale", 3.0)
	v.SetDefault("export_timeout", 20*time.Second)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	// из env списки приходят одной строкой через запятую
	c.AllowOrigins = splitList(c.AllowOrigins)
	c.Palette = splitList(c.Palette)
	if len(c.Palette) == 0 {
		c.Palette = defaultPalette
	}
	if c.ExportScale <= 0 {
		c.ExportScale = 3
	}
	return c, nil
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
