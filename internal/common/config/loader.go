// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const productionBackendURL = "https://gokrixo.onrender.com"

// Load reads configs/config.yaml, merges configs/config.<APP_ENVIRONMENT>.yaml on top
// and applies environment overrides.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	env := currentEnvironment()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // env file is optional

	return finish(v, env)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v, currentEnvironment())
}

func finish(v *viper.Viper, env string) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.App.Environment == "" {
		cfg.App.Environment = env
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func currentEnvironment() string {
	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = EnvDevelopment
	}
	return env
}

func loadEnvFile() {
	possiblePaths := []string{".env", "../.env", "../../.env"}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

func overrideEmptyConfig(cfg *Config) {
	if cfg.Storage.Redis.Password == "" {
		if val := os.Getenv("REDIS_PASSWORD"); val != "" {
			cfg.Storage.Redis.Password = val
		}
	}
	if val := os.Getenv("BACKEND_BASE_URL"); val != "" {
		ep := cfg.Backend.Environments[cfg.App.Environment]
		ep.BaseURL = val
		cfg.Backend.Environments[cfg.App.Environment] = ep
	}
	if val := os.Getenv("ADMIN_PASSWORD"); val != "" && len(cfg.Admin.Credentials) > 0 {
		cfg.Admin.Credentials[0].Password = val
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "krixo-panel"
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8090"
	}
	if cfg.Server.CookieName == "" {
		cfg.Server.CookieName = "krixo_client"
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30000
	}

	defaults := map[string]BackendEndpoint{
		EnvDevelopment: {BaseURL: "http://localhost:8080", Timeout: 10000},
		EnvProduction:  {BaseURL: productionBackendURL, Timeout: 10000},
		EnvTest:        {BaseURL: productionBackendURL, Timeout: 5000},
	}
	if cfg.Backend.Environments == nil {
		cfg.Backend.Environments = map[string]BackendEndpoint{}
	}
	for env, def := range defaults {
		ep := cfg.Backend.Environments[env]
		if ep.BaseURL == "" {
			ep.BaseURL = def.BaseURL
		}
		if ep.Timeout == 0 {
			ep.Timeout = def.Timeout
		}
		cfg.Backend.Environments[env] = ep
	}

	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "memory"
	}
	if cfg.Storage.TTL == 0 {
		cfg.Storage.TTL = 7 * 24 * 60 * 60 * 1000
	}

	if cfg.Admin.Sentinel == "" {
		cfg.Admin.Sentinel = "admin-token"
	}
	if len(cfg.Admin.Credentials) == 0 {
		cfg.Admin.Credentials = []AdminCredentials{
			{Email: "admin@krixo.com", Password: "admin123"},
			{Email: "admin", Password: "password"},
		}
	}

	if cfg.Notifications.AWS.Region == "" {
		cfg.Notifications.AWS.Region = "eu-west-3"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	ep := cfg.Backend.Current(cfg.App.Environment)
	if ep.BaseURL == "" {
		return fmt.Errorf("backend.environments.%s.base_url is required", cfg.App.Environment)
	}
	if ep.Timeout < 0 {
		return fmt.Errorf("backend.environments.%s.timeout must be positive", cfg.App.Environment)
	}

	switch cfg.Storage.Driver {
	case "memory":
	case "redis":
		if cfg.Storage.Redis.Address == "" {
			return fmt.Errorf("storage.redis.address is required")
		}
	default:
		return fmt.Errorf("storage.driver must be redis or memory, got %q", cfg.Storage.Driver)
	}

	if strings.HasPrefix(cfg.Admin.Sentinel, "worker-") {
		return fmt.Errorf("admin.sentinel must not use the worker- prefix")
	}

	if cfg.Notifications.Email.Enabled && cfg.Notifications.Email.FromEmail == "" {
		return fmt.Errorf("notifications.email.from_email is required when email is enabled")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
