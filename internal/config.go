package internal

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Runtime environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// SMTP transport security modes.
const (
	SMTPSecurityStartTLS = "starttls"
	SMTPSecurityTLS      = "tls"
	SMTPSecurityNone     = "none"
)

// Config represents the application configuration.
type Config struct {
	App   ApplicationConfig `yaml:"app"`
	Mongo MongoConfig       `yaml:"mongo"`
	SMTP  SMTPConfig        `yaml:"smtp"`
	Mail  MailConfig        `yaml:"mail"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Mongo.Validate(); err != nil {
		return err
	}
	if err := c.SMTP.Validate(); err != nil {
		return err
	}
	// Mail goes out from the relay account unless a sender is set explicitly.
	if c.Mail.FromAddress == "" {
		c.Mail.FromAddress = c.SMTP.User
	}
	return c.Mail.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	Env      string     `yaml:"env" env:"NODE_ENV"`
	LogLevel slog.Level `yaml:"log_level" env:"LOG_LEVEL"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration. Env is normalised to
// lower case and defaults to development; values other than development and
// production (test, staging) are kept and run with neither special case.
func (c *ApplicationConfig) Validate() error {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	if c.Env == "" {
		c.Env = EnvDevelopment
	}
	return c.HTTP.Validate()
}

// IsProduction reports whether the service runs in production mode.
func (c *ApplicationConfig) IsProduction() bool {
	return c.Env == EnvProduction
}

// IsDevelopment reports whether error details may be returned to clients.
func (c *ApplicationConfig) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port           int           `yaml:"port" env:"PORT"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"FRONTEND_URL" envSeparator:","`
	StaticDir      string        `yaml:"static_dir" env:"STATIC_DIR"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.StaticDir, validation.Required),
	)
}

// MongoConfig holds the document database connection settings.
type MongoConfig struct {
	URI      string        `yaml:"uri" env:"MONGO_URI"`
	Database string        `yaml:"database" env:"MONGO_DATABASE"`
	Timeout  time.Duration `yaml:"timeout" env:"MONGO_TIMEOUT"`
}

// Validate validates the MongoDB configuration.
func (c *MongoConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.URI, validation.Required),
		validation.Field(&c.Database, validation.Required),
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Millisecond)),
	)
}

// SMTPConfig holds the outgoing mail relay settings.
//
// Security selects how the connection is protected:
//   - "starttls" (default): plaintext dial upgraded with STARTTLS when offered.
//   - "tls": implicit TLS, usually port 465.
//   - "none": no TLS at all, for local catchers such as Mailpit.
type SMTPConfig struct {
	Host     string        `yaml:"host" env:"SMTP_HOST"`
	Port     int           `yaml:"port" env:"SMTP_PORT"`
	User     string        `yaml:"user" env:"SMTP_USER"`
	Password string        `yaml:"password" env:"SMTP_PASS"`
	Security string        `yaml:"security" env:"SMTP_TLS"`
	Timeout  time.Duration `yaml:"timeout" env:"SMTP_TIMEOUT"`
}

// Validate validates the SMTP configuration.
func (c *SMTPConfig) Validate() error {
	if c.Security == "" {
		c.Security = SMTPSecurityStartTLS
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Host, validation.Required),
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.Security, validation.In(SMTPSecurityStartTLS, SMTPSecurityTLS, SMTPSecurityNone)),
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Millisecond)),
	)
}

// MailConfig holds the sender identity, the owner's contact details and template settings.
type MailConfig struct {
	FromName     string `yaml:"from_name" env:"MAIL_FROM_NAME"`
	FromAddress  string `yaml:"from_address" env:"MAIL_FROM"`
	OwnerEmail   string `yaml:"owner_email" env:"OWNER_EMAIL"`
	OwnerPhone   string `yaml:"owner_phone" env:"OWNER_PHONE"`
	TemplatesDir string `yaml:"templates_dir" env:"MAIL_TEMPLATES_DIR"`
	Timezone     string `yaml:"timezone" env:"MAIL_TIMEZONE"`
}

// Validate validates the mail configuration.
func (c *MailConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.FromName, validation.Required),
		validation.Field(&c.FromAddress, validation.Required, is.EmailFormat),
		validation.Field(&c.OwnerEmail, validation.Required, is.EmailFormat),
		validation.Field(&c.Timezone, validation.Required),
	)
}

// Location resolves the configured timezone, falling back to UTC.
func (c *MailConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			Env:      EnvDevelopment,
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port:           5002,
				AllowedOrigins: []string{"http://localhost:5173"},
				StaticDir:      "./frontend/dist",
				ReadTimeout:    10 * time.Second,
				WriteTimeout:   30 * time.Second,
			},
		},
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "portfolio",
			Timeout:  5 * time.Second,
		},
		SMTP: SMTPConfig{
			Host:     "localhost",
			Port:     587,
			Security: SMTPSecurityStartTLS,
			Timeout:  8 * time.Second,
		},
		Mail: MailConfig{
			FromName: "Portfolio Dev",
			Timezone: "Europe/Paris",
		},
	}
}
