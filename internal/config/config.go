package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go-pos-terminal/pkg/database"
	"go-pos-terminal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig    `mapstructure:"app"`
	DB     DBConfig     `mapstructure:"db"`
	Logger LoggerConfig `mapstructure:"logger"`
	Sales  SalesConfig  `mapstructure:"sales"`
	Backup BackupConfig `mapstructure:"backup"`
}

type AppConfig struct {
	Env       string `mapstructure:"env"`
	StoreName string `mapstructure:"store_name"`
}

type DBConfig struct {
	Driver          string        `mapstructure:"driver"`
	Path            string        `mapstructure:"path"`
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	LogLevel        string        `mapstructure:"log_level"`
}

type LoggerConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Output            string `mapstructure:"output"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type SalesConfig struct {
	StrictStock       bool `mapstructure:"strict_stock"`
	LowStockThreshold int  `mapstructure:"low_stock_threshold"`
}

type BackupConfig struct {
	Dir string `mapstructure:"dir"`
}

// SetDefaults registers every key so env overrides work without a config file
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "production")
	v.SetDefault("app.store_name", "GENERAL STORE POS SYSTEM")

	v.SetDefault("db.driver", database.DriverSQLite)
	v.SetDefault("db.path", "pos_database.db")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", time.Hour)
	v.SetDefault("db.log_level", "warn")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.output", "pos.log")
	v.SetDefault("logger.disable_caller", false)
	v.SetDefault("logger.disable_stacktrace", true)

	v.SetDefault("sales.strict_stock", true)
	v.SetDefault("sales.low_stock_threshold", 10)

	v.SetDefault("backup.dir", ".")
}

// LoadConfig reads .env, then pos.yaml (optional) and POS_* environment variables.
// cfgFile, when set, replaces the search paths and must exist.
func LoadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	// .env is optional; real env vars win over it
	_ = godotenv.Load()

	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("pos")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.pos")
		v.AddConfigPath("/etc/pos")
	}

	v.SetEnvPrefix("POS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// IsDevelopment reports whether app.env selects development logging
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.App.Env, "development")
}

// Database maps the db section onto pkg/database
func (c *Config) Database() database.Config {
	return database.Config{
		Driver:          strings.ToLower(c.DB.Driver),
		Path:            c.DB.Path,
		DSN:             c.DB.DSN,
		MaxOpenConns:    c.DB.MaxOpenConns,
		MaxIdleConns:    c.DB.MaxIdleConns,
		ConnMaxLifetime: c.DB.ConnMaxLifetime,
		LogLevel:        c.DB.LogLevel,
	}
}

// ZapConfig maps the logger section onto pkg/logger
func (c *Config) ZapConfig() *logger.ZapLoggerConfig {
	var outputs []string
	for _, p := range strings.Split(c.Logger.Output, ",") {
		if p = strings.TrimSpace(p); p != "" {
			outputs = append(outputs, p)
		}
	}
	return &logger.ZapLoggerConfig{
		IsDevelopment:     c.IsDevelopment(),
		Encoding:          c.Logger.Encoding,
		Level:             c.Logger.Level,
		OutputPaths:       outputs,
		DisableCaller:     c.Logger.DisableCaller,
		DisableStacktrace: c.Logger.DisableStacktrace,
	}
}
