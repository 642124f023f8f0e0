package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabasesConfig  `mapstructure:"database"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Access     AccessConfig     `mapstructure:"access"`
	Delivery   DeliveryConfig   `mapstructure:"delivery"`
	Summarizer SummarizerConfig `mapstructure:"summarizer"`
	CORS       CORSConfig       `mapstructure:"cors"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Hostname     string        `mapstructure:"hostname"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout  time.Duration `mapstructure:"idleTimeout"`
}

// DatabasesConfig holds all database configurations
type DatabasesConfig struct {
	Access DatabaseConfig `mapstructure:"access"`
}

// DatabaseConfig holds individual database configuration
type DatabaseConfig struct {
	Type            string        `mapstructure:"type"`
	Hostname        string        `mapstructure:"hostname"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// AccessConfig holds the consent-gated access protocol bounds.
// Defaults: 6-digit codes, 3 attempts, 5 minute request TTL, 20 minute grant TTL.
type AccessConfig struct {
	OTPLength      int           `mapstructure:"otp_length"`
	OTPMaxAttempts int           `mapstructure:"otp_max_attempts"`
	RequestTTL     time.Duration `mapstructure:"request_ttl"`
	GrantTTL       time.Duration `mapstructure:"grant_ttl"`
}

// DeliveryConfig holds the out-of-band OTP delivery channel configuration
type DeliveryConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SummarizerConfig holds the generative-AI summarization service configuration
type SummarizerConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	BaseURL         string        `mapstructure:"base_url"`
	Model           string        `mapstructure:"model"`
	APIKey          string        `mapstructure:"api_key"`
	Timeout         time.Duration `mapstructure:"timeout"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxOutputTokens int           `mapstructure:"max_output_tokens"`
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

var globalConfig *Config

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file path
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
		v.AddConfigPath(".")
	}

	// Read from environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("HEALTH_ACCESS")

	// Read the config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal config
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyAccessDefaults(&config.Access)

	// Validate config
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	globalConfig = &config
	return &config, nil
}

// applyAccessDefaults fills in protocol bound defaults when unset
func applyAccessDefaults(access *AccessConfig) {
	if access.OTPLength <= 0 {
		access.OTPLength = 6
	}
	if access.OTPMaxAttempts <= 0 {
		access.OTPMaxAttempts = 3
	}
	if access.RequestTTL <= 0 {
		access.RequestTTL = 5 * time.Minute
	}
	if access.GrantTTL <= 0 {
		access.GrantTTL = 20 * time.Minute
	}
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Database.Access.Hostname == "" {
		return fmt.Errorf("database hostname is required")
	}

	if config.Database.Access.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if config.Delivery.Enabled && config.Delivery.BaseURL == "" {
		return fmt.Errorf("delivery base URL is required when delivery is enabled")
	}

	if config.Summarizer.Enabled && config.Summarizer.BaseURL == "" {
		return fmt.Errorf("summarizer base URL is required when summarizer is enabled")
	}

	if config.Access.OTPLength < 4 || config.Access.OTPLength > 10 {
		return fmt.Errorf("otp_length must be between 4 and 10, got %d", config.Access.OTPLength)
	}

	return nil
}

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// SetGlobal sets the global configuration (for testing purposes)
func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

// GetDSN returns the database connection string
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&multiStatements=true",
		d.User,
		d.Password,
		d.Hostname,
		d.Port,
		d.Database,
	)
}

// GetServerAddress returns the server address in host:port format
func (s *ServerConfig) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", s.Hostname, s.Port)
}
