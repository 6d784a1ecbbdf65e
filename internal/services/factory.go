package services

import (
	"context"
	"fmt"
	"time"

	"mailsender/internal/config"
)

const smtpCommandTimeout = 30 * time.Second

// NewEmailSender builds the transport selected by cfg.Transport.
func NewEmailSender(ctx context.Context, cfg *config.Config) (EmailSender, error) {
	switch cfg.Transport {
	case config.TransportSMTP:
		return &SMTPSender{
			Host:    cfg.SMTP.Host,
			Port:    cfg.SMTP.Port,
			User:    cfg.SMTP.Username,
			Pass:    cfg.SMTP.Password,
			Crypto:  cfg.SMTP.Crypto,
			Timeout: smtpCommandTimeout,
		}, nil
	case config.TransportSES:
		client, err := config.NewSESClient(ctx, cfg.SES)
		if err != nil {
			return nil, fmt.Errorf("create ses client: %w", err)
		}
		return NewSESSender(client), nil
	case config.TransportLog:
		return &LogSender{}, nil
	default:
		return nil, fmt.Errorf("unknown mail transport %q", cfg.Transport)
	}
}
