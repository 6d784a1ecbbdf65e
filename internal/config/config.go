// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const DefaultAddress = "johndoe@nowhere.com"

const (
	TransportSMTP = "smtp"
	TransportSES  = "ses"
	TransportLog  = "log"
)

// MailConfig holds the addresses used for every outbound message.
// It is copied by value into handlers, so a request always sees one
// consistent sender/recipient pair.
type MailConfig struct {
	Sender    string `yaml:"sender"`
	Recipient string `yaml:"recipient"`
}

type SMTPConfig struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"min=1,max=65535"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	// Crypto is empty for a plain connection, "starttls"/"tls" to upgrade
	// after connecting, or "ssl" for implicit TLS.
	Crypto string `yaml:"crypto" validate:"omitempty,oneof=starttls tls ssl"`
}

type SESConfig struct {
	Region    string `yaml:"region" validate:"required"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

type Config struct {
	Port               string
	Environment        string
	Transport          string `validate:"oneof=smtp ses log"`
	CORSAllowedOrigins []string
	Mail               MailConfig `validate:"-"`
	SMTP               SMTPConfig `validate:"-"`
	SES                SESConfig  `validate:"-"`
}

// Default returns the configuration used when nothing else is provided.
func Default() *Config {
	return &Config{
		Port:               "8080",
		Environment:        "development",
		Transport:          TransportSMTP,
		CORSAllowedOrigins: []string{"*"},
		Mail: MailConfig{
			Sender:    DefaultAddress,
			Recipient: DefaultAddress,
		},
		SMTP: SMTPConfig{
			Host: "localhost",
			Port: 25,
		},
		SES: SESConfig{
			Region: "us-east-1",
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file named
// by CONFIG_FILE, an optional .env file and finally the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile builds the configuration from defaults and the given YAML file,
// without consulting the environment.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.applyFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.Transport = strings.ToLower(getEnv("MAIL_TRANSPORT", c.Transport))
	if origins := getEnv("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		c.CORSAllowedOrigins = splitList(origins)
	}

	c.Mail.Sender = getEnv("MAIL_SENDER", c.Mail.Sender)
	c.Mail.Recipient = getEnv("MAIL_RECIPIENT", c.Mail.Recipient)

	c.SMTP.Host = getEnv("SMTP_HOST", c.SMTP.Host)
	if raw := getEnv("SMTP_PORT", ""); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid SMTP_PORT %q: %w", raw, err)
		}
		c.SMTP.Port = port
	}
	c.SMTP.Username = getEnv("SMTP_USER", c.SMTP.Username)
	c.SMTP.Password = getEnv("SMTP_PASSWORD", c.SMTP.Password)
	c.SMTP.Crypto = strings.ToLower(getEnv("SMTP_CRYPTO", c.SMTP.Crypto))

	c.SES.Region = getEnv("AWS_REGION", c.SES.Region)
	c.SES.AccessKey = getEnv("AWS_ACCESS_KEY_ID", c.SES.AccessKey)
	c.SES.SecretKey = getEnv("AWS_SECRET_ACCESS_KEY", c.SES.SecretKey)
	return nil
}

// Validate checks the settings of the selected transport. Mail addresses
// are left to the transport.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	switch c.Transport {
	case TransportSMTP:
		if err := v.Struct(c.SMTP); err != nil {
			return fmt.Errorf("invalid smtp config: %w", err)
		}
	case TransportSES:
		if err := v.Struct(c.SES); err != nil {
			return fmt.Errorf("invalid ses config: %w", err)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
