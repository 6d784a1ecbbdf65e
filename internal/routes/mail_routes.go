package routes

import (
	"github.com/go-chi/chi/v5"
	"mailsender/internal/config"
	"mailsender/internal/handlers"
	"mailsender/internal/services"
)

func RegisterMailRoutes(router chi.Router, cfg *config.Config, mailer services.EmailSender) {
	mailHandler := handlers.NewMailHandler(cfg, mailer)

	router.Get("/", mailHandler.SendMail)
}
