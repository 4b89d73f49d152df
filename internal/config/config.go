package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string        `mapstructure:"port"`
	DatabaseURL string        `mapstructure:"database_url"`
	AutoMigrate bool          `mapstructure:"auto_migrate"`
	JWTSecret   string        `mapstructure:"jwt_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
	BcryptCost  int           `mapstructure:"bcrypt_cost"`

	ImportMaxFileBytes int64  `mapstructure:"import_max_file_bytes"`
	ImportBaseDir      string `mapstructure:"import_base_dir"`

	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	RedisChannel  string `mapstructure:"redis_channel"`
	EventBuffer   int    `mapstructure:"event_buffer"`
}

var defaults = map[string]any{
	"port":                  "8080",
	"database_url":          "",
	"auto_migrate":          true,
	"jwt_secret":            "",
	"token_ttl":             "24h",
	"bcrypt_cost":           10,
	"import_max_file_bytes": 10 << 20,
	"import_base_dir":       ".",
	"redis_addr":            "",
	"redis_password":        "",
	"redis_db":              0,
	"redis_channel":         "nest:user.created",
	"event_buffer":          256,
}

// Load reads an optional .env file, then an optional configs/config.yaml,
// then the environment. Later sources win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	if c.ImportMaxFileBytes <= 0 {
		return fmt.Errorf("IMPORT_MAX_FILE_BYTES must be positive, got %d", c.ImportMaxFileBytes)
	}
	return nil
}
