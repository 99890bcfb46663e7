package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Engine   EngineConfig
	Auth     AuthConfig
	Log      LogConfig
}

type ServerConfig struct {
	Addr string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// StorageConfig selects the capture store backing. "postgres" uses the
// database above, "memory" keeps everything in process.
type StorageConfig struct {
	Driver string
}

type EngineConfig struct {
	ConvertPath    string
	PythonPath     string
	DetectorScript string
	DetectorModel  string
	ScalePercent   int
}

type AuthConfig struct {
	// JWTSecret enables bearer-token auth on destructive routes when
	// non-empty.
	JWTSecret string
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from an optional yaml file and PLATECAP_*
// environment variables, environment taking precedence.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "platecap")
	v.SetDefault("database.password", "platecap")
	v.SetDefault("database.name", "platecap")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("storage.driver", "postgres")
	v.SetDefault("engine.convert_path", "convert")
	v.SetDefault("engine.python_path", "python3")
	v.SetDefault("engine.detector_script", "./detector/detect_plate.py")
	v.SetDefault("engine.detector_model", "./detector/model.zip")
	v.SetDefault("engine.scale_percent", 50)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetEnvPrefix("PLATECAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr: v.GetString("server.addr"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("database.host"),
			Port:     v.GetInt("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			Name:     v.GetString("database.name"),
			SSLMode:  v.GetString("database.sslmode"),
		},
		Storage: StorageConfig{
			Driver: v.GetString("storage.driver"),
		},
		Engine: EngineConfig{
			ConvertPath:    v.GetString("engine.convert_path"),
			PythonPath:     v.GetString("engine.python_path"),
			DetectorScript: v.GetString("engine.detector_script"),
			DetectorModel:  v.GetString("engine.detector_model"),
			ScalePercent:   v.GetInt("engine.scale_percent"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("auth.jwt_secret"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if cfg.Storage.Driver != "postgres" && cfg.Storage.Driver != "memory" {
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Storage.Driver)
	}
	if cfg.Engine.ScalePercent <= 0 || cfg.Engine.ScalePercent > 100 {
		return nil, fmt.Errorf("engine.scale_percent must be in (0, 100], got %d", cfg.Engine.ScalePercent)
	}

	return cfg, nil
}
