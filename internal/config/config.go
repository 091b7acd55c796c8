package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Auth        AuthConfig
	Uploads     UploadsConfig
	Inquiries   InquiriesConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Path string
}

type AuthConfig struct {
	TokenSecret   string
	SecureCookie  bool
	AdminEmail    string
	AdminPassword string
}

type UploadsConfig struct {
	Root string
}

type InquiriesConfig struct {
	WebhookEndpoint string
}

func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("vitrine_env", "")
	v.SetDefault("app_env", "")
	v.SetDefault("go_env", "")
	v.SetDefault("vitrine_port", 8080)
	v.SetDefault("vitrine_db_path", "data/vitrine")
	v.SetDefault("vitrine_upload_root", "data/uploads")
	v.SetDefault("vitrine_secure_cookie", false)
	v.SetDefault("vitrine_admin_email", "admin@example.com")
	v.SetDefault("vitrine_admin_password", "")
	v.SetDefault("vitrine_inquiry_webhook", "")

	env := resolveEnvironment(v)
	port := v.GetInt("vitrine_port")
	if port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid VITRINE_PORT: %d", port)
	}

	cfg := Config{
		Environment: env,
		Server:      ServerConfig{Port: port},
		Database: DatabaseConfig{
			Path: strings.TrimSpace(v.GetString("vitrine_db_path")),
		},
		Auth: AuthConfig{
			TokenSecret:   strings.TrimSpace(v.GetString("vitrine_token_secret")),
			SecureCookie:  v.GetBool("vitrine_secure_cookie"),
			AdminEmail:    strings.TrimSpace(v.GetString("vitrine_admin_email")),
			AdminPassword: v.GetString("vitrine_admin_password"),
		},
		Uploads: UploadsConfig{
			Root: strings.TrimSpace(v.GetString("vitrine_upload_root")),
		},
		Inquiries: InquiriesConfig{
			WebhookEndpoint: strings.TrimSpace(v.GetString("vitrine_inquiry_webhook")),
		},
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/vitrine"
	}
	if cfg.Uploads.Root == "" {
		cfg.Uploads.Root = "data/uploads"
	}
	if !cfg.IsLocalDevelopment() && cfg.Auth.TokenSecret == "" {
		return Config{}, fmt.Errorf("VITRINE_TOKEN_SECRET is required outside local/dev environments")
	}
	if cfg.IsLocalDevelopment() && cfg.Auth.TokenSecret == "" {
		cfg.Auth.TokenSecret = "vitrine-local-dev"
	}
	if !cfg.IsLocalDevelopment() && cfg.Auth.AdminPassword == "" {
		return Config{}, fmt.Errorf("VITRINE_ADMIN_PASSWORD is required outside local/dev environments")
	}
	if cfg.IsLocalDevelopment() && cfg.Auth.AdminPassword == "" {
		cfg.Auth.AdminPassword = "vitrine-local-dev"
	}

	return cfg, nil
}

func (c Config) IsLocalDevelopment() bool {
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "", "local", "dev", "development", "test":
		return true
	default:
		return false
	}
}

func resolveEnvironment(v *viper.Viper) string {
	for _, key := range []string{"vitrine_env", "app_env", "go_env"} {
		value := strings.TrimSpace(v.GetString(key))
		if value != "" {
			return strings.ToLower(value)
		}
	}
	return ""
}
