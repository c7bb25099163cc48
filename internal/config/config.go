// internal/config/config.go
package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const (
	placeholderEmailJSKey = "user_your_public_key"
	placeholderDBMarker   = "your-project"
)

type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	// DatabaseURL selects hosted mode when set to a real DSN. Empty or
	// placeholder values fall back to the local JSON store.
	DatabaseURL string `envconfig:"DATABASE_URL"`
	DataDir     string `envconfig:"DATA_DIR" default:"data"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisUsername string `envconfig:"REDIS_USERNAME"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	EmailJSServiceID  string `envconfig:"EMAILJS_SERVICE_ID" default:"service_your_service_id"`
	EmailJSTemplateID string `envconfig:"EMAILJS_TEMPLATE_ID" default:"template_your_template_id"`
	EmailJSPublicKey  string `envconfig:"EMAILJS_PUBLIC_KEY" default:"user_your_public_key"`

	JWTSecret string `envconfig:"JWT_SECRET"`
}

func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, errors.Wrap(err, "process environment")
	}
	return &c, nil
}

// HostedMode reports whether the hosted relational backend should be
// used. Decided once at startup, never per call.
func (c *Config) HostedMode() bool {
	return c.DatabaseURL != "" && !strings.Contains(c.DatabaseURL, placeholderDBMarker)
}

// MailConfigured reports whether the EmailJS relay credentials are real.
// With placeholder credentials the verification code is surfaced through
// the log instead, intended only for local development.
func (c *Config) MailConfigured() bool {
	return c.EmailJSPublicKey != "" && c.EmailJSPublicKey != placeholderEmailJSKey
}
