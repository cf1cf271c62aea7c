package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Firebase FirebaseConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

// FirebaseConfig holds Firebase / GCP project configuration.
type FirebaseConfig struct {
	ProjectID                    string
	StorageBucket                string
	SignedURLServiceAccountEmail string
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)
	v.AutomaticEnv()
	bindEnvVars(v)

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("server.port"),
			Environment:     v.GetString("server.environment"),
			AllowedOrigins:  splitOrigins(v.GetString("server.allowedorigins")),
			ShutdownTimeout: v.GetDuration("server.shutdowntimeout"),
		},
		Firebase: FirebaseConfig{
			ProjectID:                    v.GetString("firebase.projectid"),
			StorageBucket:                v.GetString("firebase.storagebucket"),
			SignedURLServiceAccountEmail: v.GetString("firebase.signedurlserviceaccountemail"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("logging.level"),
		},
	}

	if cfg.Firebase.StorageBucket == "" && cfg.Firebase.ProjectID != "" {
		cfg.Firebase.StorageBucket = cfg.Firebase.ProjectID + ".appspot.com"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowedorigins", "http://localhost:3000")
	v.SetDefault("server.shutdowntimeout", 10*time.Second)
	v.SetDefault("logging.level", "info")
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.environment", "ENV", "ENVIRONMENT")
	v.BindEnv("server.allowedorigins", "ALLOWED_ORIGINS")

	v.BindEnv("firebase.projectid", "FIREBASE_PROJECT_ID", "GOOGLE_CLOUD_PROJECT")
	v.BindEnv("firebase.storagebucket", "FIREBASE_STORAGE_BUCKET")
	v.BindEnv("firebase.signedurlserviceaccountemail", "SIGNED_URL_SERVICE_ACCOUNT_EMAIL")

	v.BindEnv("logging.level", "LOG_LEVEL")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Firebase.ProjectID == "" {
		return fmt.Errorf("firebase.projectid is required (set FIREBASE_PROJECT_ID or GOOGLE_CLOUD_PROJECT)")
	}
	return nil
}

func splitOrigins(raw string) []string {
	out := []string{}
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
