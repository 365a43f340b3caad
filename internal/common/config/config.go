// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Backend       BackendConfig      `mapstructure:"backend"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Admin         AdminConfig        `mapstructure:"admin"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	CookieName      string `mapstructure:"cookie_name"`
	CookieSecure    bool   `mapstructure:"cookie_secure"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// BackendConfig selects the upstream origin and request timeout per environment.
type BackendConfig struct {
	Environments map[string]BackendEndpoint `mapstructure:"environments"`
}

type BackendEndpoint struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// Current returns the endpoint for the given environment, falling back to development.
func (b BackendConfig) Current(environment string) BackendEndpoint {
	if ep, ok := b.Environments[environment]; ok {
		return ep
	}
	return b.Environments[EnvDevelopment]
}

type StorageConfig struct {
	Driver string      `mapstructure:"driver"` // redis | memory
	TTL    int         `mapstructure:"ttl"`    // milliseconds
	Redis  RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AdminConfig holds the fixed admin credentials and the sentinel token written on login.
type AdminConfig struct {
	Sentinel    string             `mapstructure:"sentinel"`
	Credentials []AdminCredentials `mapstructure:"credentials"`
}

type AdminCredentials struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// NotificationConfig holds settings for decision notifications.
type NotificationConfig struct {
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled  bool   `mapstructure:"enabled"`
		SenderID string `mapstructure:"sender_id"`
	} `mapstructure:"sms"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// String hides the redis password.
func (r RedisConfig) String() string {
	return fmt.Sprintf("redis://%s/%d", r.Address, r.DB)
}
