package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Backend   BackendConfig   `mapstructure:"backend"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Logger    LoggerConfig    `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// BackendConfig holds the collection backend connection settings
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DashboardConfig holds the dashboard behaviour settings
type DashboardConfig struct {
	RefreshInterval     time.Duration `mapstructure:"refresh_interval"`
	RecentActivityLimit int           `mapstructure:"recent_activity_limit"`
	OverdueDisplayLimit int           `mapstructure:"overdue_display_limit"`
	BatchCallLimit      int           `mapstructure:"batch_call_limit"`
	BatchCallSpacing    time.Duration `mapstructure:"batch_call_spacing"`
	ToastDuration       time.Duration `mapstructure:"toast_duration"`
	Timezone            string        `mapstructure:"timezone"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load reads configPath (optional, YAML) on top of the defaults, then applies
// the environment. A .env file in the working directory is loaded first when
// present; variables already set in the process win over it.
func Load(configPath string) (*Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	if err := bindEnvVars(v); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	// Backend defaults
	v.SetDefault("backend.base_url", "http://localhost:8000")
	v.SetDefault("backend.timeout", 30*time.Second)

	// Dashboard defaults
	v.SetDefault("dashboard.refresh_interval", 30*time.Second)
	v.SetDefault("dashboard.recent_activity_limit", 5)
	v.SetDefault("dashboard.overdue_display_limit", 5)
	v.SetDefault("dashboard.batch_call_limit", 5)
	v.SetDefault("dashboard.batch_call_spacing", time.Second)
	v.SetDefault("dashboard.toast_duration", 3*time.Second)
	v.SetDefault("dashboard.timezone", "Asia/Kolkata")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "json")
}

// bindEnvVars binds environment variables to configuration keys.
// API_BASE_URL is the deployment injection point for the backend address.
func bindEnvVars(v *viper.Viper) error {
	bindings := map[string]string{
		"backend.base_url": "API_BASE_URL",
		"server.port":      "DASHBOARD_PORT",
		"logger.level":     "LOG_LEVEL",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return err
		}
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.base_url %q is not an absolute URL", c.Backend.BaseURL)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be positive")
	}

	d := c.Dashboard
	if d.RefreshInterval <= 0 {
		return fmt.Errorf("dashboard.refresh_interval must be positive")
	}
	if d.RecentActivityLimit <= 0 {
		return fmt.Errorf("dashboard.recent_activity_limit must be positive")
	}
	if d.OverdueDisplayLimit <= 0 {
		return fmt.Errorf("dashboard.overdue_display_limit must be positive")
	}
	if d.BatchCallLimit <= 0 {
		return fmt.Errorf("dashboard.batch_call_limit must be positive")
	}
	if d.BatchCallSpacing < 0 {
		return fmt.Errorf("dashboard.batch_call_spacing must not be negative")
	}
	if d.ToastDuration <= 0 {
		return fmt.Errorf("dashboard.toast_duration must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

// Location resolves the display timezone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Dashboard.Timezone)
	if err != nil {
		return nil, fmt.Errorf("dashboard.timezone: %w", err)
	}
	return loc, nil
}
