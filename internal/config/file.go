package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// fileConfig mirrors the YAML layout. Empty values leave the current
// setting untouched, except mail addresses: a present key always wins,
// even when empty, matching how the environment is applied.
type fileConfig struct {
	Server struct {
		Port        string   `yaml:"port"`
		Environment string   `yaml:"environment"`
		CORSOrigins []string `yaml:"cors_allowed_origins"`
	} `yaml:"server"`
	Mail struct {
		Sender    *string `yaml:"sender"`
		Recipient *string `yaml:"recipient"`
		Transport string  `yaml:"transport"`
	} `yaml:"mail"`
	SMTP SMTPConfig `yaml:"smtp"`
	SES  SESConfig  `yaml:"ses"`
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&c.Port, fc.Server.Port)
	setString(&c.Environment, fc.Server.Environment)
	if len(fc.Server.CORSOrigins) > 0 {
		c.CORSAllowedOrigins = fc.Server.CORSOrigins
	}

	if fc.Mail.Sender != nil {
		c.Mail.Sender = *fc.Mail.Sender
	}
	if fc.Mail.Recipient != nil {
		c.Mail.Recipient = *fc.Mail.Recipient
	}
	setString(&c.Transport, strings.ToLower(fc.Mail.Transport))

	setString(&c.SMTP.Host, fc.SMTP.Host)
	if fc.SMTP.Port != 0 {
		c.SMTP.Port = fc.SMTP.Port
	}
	setString(&c.SMTP.Username, fc.SMTP.Username)
	setString(&c.SMTP.Password, fc.SMTP.Password)
	setString(&c.SMTP.Crypto, strings.ToLower(fc.SMTP.Crypto))

	setString(&c.SES.Region, fc.SES.Region)
	setString(&c.SES.AccessKey, fc.SES.AccessKey)
	setString(&c.SES.SecretKey, fc.SES.SecretKey)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
