package handlers

import (
	"log"
	"net/http"

	"mailsender/internal/config"
	"mailsender/internal/models"
	"mailsender/internal/services"
)

type MailHandler struct {
	mailer services.EmailSender
	mail   config.MailConfig
}

func NewMailHandler(cfg *config.Config, mailer services.EmailSender) *MailHandler {
	return &MailHandler{
		mailer: mailer,
		mail:   cfg.Mail,
	}
}

// SendMail sends the hello message to the configured recipient.
func (h *MailHandler) SendMail(w http.ResponseWriter, r *http.Request) {
	mail := h.mail
	log.Printf("Sending email to %s", mail.Recipient)

	msg := models.NewHelloMessage(mail)
	if err := h.mailer.Send(r.Context(), msg); err != nil {
		log.Printf("Failed to send email to %s: %v", mail.Recipient, err)
		writeJSONErrorResponse(w, http.StatusInternalServerError, "messaging_error", "Failed to send email")
		return
	}

	log.Println("Email successfully sent")

	writeText(w, http.StatusOK, "Email sent to "+mail.Recipient)
}
