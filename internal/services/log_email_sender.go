package services

import (
	"context"
	"log"

	"mailsender/internal/models"
)

// LogSender writes messages to the log instead of delivering them.
type LogSender struct {
	Logger *log.Logger
}

func (s *LogSender) Send(ctx context.Context, msg models.OutboundMessage) error {
	if err := ctx.Err(); err != nil {
		return messagingError("log", "send", err)
	}
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("[MAIL] from=%s to=%s subject=%q body=%q", msg.From, msg.To, msg.Subject, msg.Body)
	return nil
}
