package models

import "mailsender/internal/config"

const (
	HelloSubject = "Hello world!"
	HelloBody    = "This is an email sent by a Go app."
)

// OutboundMessage is built fresh for each request and handed to a
// transport. It is never stored.
type OutboundMessage struct {
	From    string
	To      string
	Subject string
	Body    string
}

func NewHelloMessage(mail config.MailConfig) OutboundMessage {
	return OutboundMessage{
		From:    mail.Sender,
		To:      mail.Recipient,
		Subject: HelloSubject,
		Body:    HelloBody,
	}
}
