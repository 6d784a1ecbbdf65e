package services

import (
	"context"
	"errors"
	"fmt"

	"mailsender/internal/models"
)

type EmailSender interface {
	Send(ctx context.Context, msg models.OutboundMessage) error
}

// ErrMessaging matches every *MessagingError with errors.Is.
var ErrMessaging = errors.New("messaging error")

// MessagingError reports a delivery failure from a transport.
type MessagingError struct {
	Transport string
	Op        string
	Err       error
}

func (e *MessagingError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Transport, e.Op, e.Err)
}

func (e *MessagingError) Unwrap() error { return e.Err }

func (e *MessagingError) Is(target error) bool { return target == ErrMessaging }

func messagingError(transport, op string, err error) error {
	return &MessagingError{Transport: transport, Op: op, Err: err}
}
