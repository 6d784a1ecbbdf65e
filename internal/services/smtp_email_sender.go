package services

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/google/uuid"
	"mailsender/internal/models"
)

// SMTPSender delivers messages over one SMTP connection per Send.
//
// Crypto selects how the connection is secured:
//   - "" plain connection
//   - "starttls" or "tls" upgrades with STARTTLS after connecting (port 587)
//   - "ssl" implicit TLS from the first byte (port 465)
type SMTPSender struct {
	Host   string
	Port   int
	User   string
	Pass   string
	Crypto string

	// TLSConfig overrides the TLS settings derived from Host.
	TLSConfig *tls.Config
	// Timeout bounds each SMTP command. Zero keeps the client default.
	Timeout time.Duration
}

func (s *SMTPSender) Send(ctx context.Context, msg models.OutboundMessage) error {
	if err := ctx.Err(); err != nil {
		return messagingError("smtp", "send", err)
	}

	client, err := s.dial()
	if err != nil {
		return messagingError("smtp", "connect", err)
	}
	defer client.Close()

	if s.Timeout > 0 {
		client.CommandTimeout = s.Timeout
		client.SubmissionTimeout = s.Timeout
	}

	if s.User != "" {
		_, mechs := client.Extension("AUTH")
		if err := client.Auth(s.authClient(mechs)); err != nil {
			return messagingError("smtp", "auth", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return messagingError("smtp", "send", err)
	}

	body, err := renderMessage(msg, time.Now())
	if err != nil {
		return messagingError("smtp", "render", err)
	}
	if err := client.SendMail(msg.From, []string{msg.To}, strings.NewReader(body)); err != nil {
		return messagingError("smtp", "send", err)
	}
	return nil
}

func (s *SMTPSender) dial() (*smtp.Client, error) {
	addr := net.JoinHostPort(s.Host, strconv.Itoa(s.Port))

	switch strings.ToLower(s.Crypto) {
	case "starttls", "tls":
		return smtp.DialStartTLS(addr, s.tlsConfig())
	case "ssl":
		return smtp.DialTLS(addr, s.tlsConfig())
	case "":
		return smtp.Dial(addr)
	default:
		return nil, fmt.Errorf("unsupported crypto type: %s", s.Crypto)
	}
}

func (s *SMTPSender) tlsConfig() *tls.Config {
	if s.TLSConfig != nil {
		return s.TLSConfig
	}
	return &tls.Config{ServerName: s.Host}
}

// authClient picks PLAIN unless the server only advertises LOGIN.
// mechs is the space separated AUTH extension parameter.
func (s *SMTPSender) authClient(mechs string) sasl.Client {
	offered := strings.Fields(strings.ToUpper(mechs))
	if !slices.Contains(offered, "PLAIN") && slices.Contains(offered, "LOGIN") {
		return sasl.NewLoginClient(s.User, s.Pass)
	}
	return sasl.NewPlainClient("", s.User, s.Pass)
}

var errHeaderInjection = errors.New("header value contains CR or LF")

func renderMessage(msg models.OutboundMessage, now time.Time) (string, error) {
	for _, v := range []string{msg.From, msg.To, msg.Subject} {
		if strings.ContainsAny(v, "\r\n") {
			return "", fmt.Errorf("%w: %q", errHeaderInjection, v)
		}
	}

	headers := []string{
		"From: " + msg.From,
		"To: " + msg.To,
		"Subject: " + msg.Subject,
		"Date: " + now.Format(time.RFC1123Z),
		"Message-ID: " + messageID(msg.From),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
	}

	var b strings.Builder
	for _, h := range headers {
		b.WriteString(h)
		b.WriteString("\r\n")
	}
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	b.WriteString("\r\n")
	return b.String(), nil
}

func messageID(from string) string {
	domain := "localhost"
	if i := strings.LastIndex(from, "@"); i >= 0 && i < len(from)-1 {
		domain = strings.TrimSuffix(from[i+1:], ">")
	}
	return "<" + uuid.NewString() + "@" + domain + ">"
}
