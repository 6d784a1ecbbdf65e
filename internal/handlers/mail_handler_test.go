package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"mailsender/internal/config"
	"mailsender/internal/models"
	"mailsender/internal/services"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []models.OutboundMessage
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg models.OutboundMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

func (m *recordingMailer) messages() []models.OutboundMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.OutboundMessage(nil), m.sent...)
}

func testConfig(sender, recipient string) *config.Config {
	cfg := config.Default()
	cfg.Mail = config.MailConfig{Sender: sender, Recipient: recipient}
	return cfg
}

func TestSendMailSuccess(t *testing.T) {
	mailer := &recordingMailer{}
	h := NewMailHandler(testConfig("x@y.com", "a@b.com"), mailer)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.SendMail(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	if got := w.Body.String(); got != "Email sent to a@b.com" {
		t.Fatalf("unexpected body %q", got)
	}

	sent := mailer.messages()
	if len(sent) != 1 {
		t.Fatalf("expected 1 send, got %d", len(sent))
	}
	want := models.OutboundMessage{From: "x@y.com", To: "a@b.com", Subject: "Hello world!", Body: models.HelloBody}
	if sent[0] != want {
		t.Fatalf("expected %+v, got %+v", want, sent[0])
	}
}

func TestSendMailDefaults(t *testing.T) {
	mailer := &recordingMailer{}
	h := NewMailHandler(config.Default(), mailer)

	w := httptest.NewRecorder()
	h.SendMail(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := w.Body.String(); got != "Email sent to johndoe@nowhere.com" {
		t.Fatalf("unexpected body %q", got)
	}
	sent := mailer.messages()
	if len(sent) != 1 || sent[0].From != "johndoe@nowhere.com" || sent[0].To != "johndoe@nowhere.com" {
		t.Fatalf("unexpected messages %+v", sent)
	}
}

func TestSendMailTransportFailure(t *testing.T) {
	mailer := &recordingMailer{err: &services.MessagingError{Transport: "smtp", Op: "auth", Err: errors.New("535 bad credentials")}}
	h := NewMailHandler(testConfig("x@y.com", "a@b.com"), mailer)

	w := httptest.NewRecorder()
	h.SendMail(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", w.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "messaging_error" {
		t.Fatalf("expected messaging_error, got %v", resp)
	}
	if w.Body.String() == "Email sent to a@b.com" {
		t.Fatalf("confirmation must not be returned on failure")
	}
	if len(mailer.messages()) != 1 {
		t.Fatalf("expected exactly one attempt, no retry")
	}
}

func TestSendMailRepeatedCallsSendEachTime(t *testing.T) {
	mailer := &recordingMailer{}
	h := NewMailHandler(testConfig("x@y.com", "a@b.com"), mailer)

	const n = 5
	for i := 0; i < n; i++ {
		w := httptest.NewRecorder()
		h.SendMail(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("call %d: expected 200 got %d", i, w.Code)
		}
	}

	sent := mailer.messages()
	if len(sent) != n {
		t.Fatalf("expected %d sends, got %d", n, len(sent))
	}
	for i := 1; i < n; i++ {
		if sent[i] != sent[0] {
			t.Fatalf("send %d differs: %+v vs %+v", i, sent[i], sent[0])
		}
	}
}

func TestSendMailConcurrent(t *testing.T) {
	mailer := &recordingMailer{}
	h := NewMailHandler(testConfig("x@y.com", "a@b.com"), mailer)

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			h.SendMail(w, httptest.NewRequest(http.MethodGet, "/", nil))
			if w.Body.String() != "Email sent to a@b.com" {
				errs <- fmt.Errorf("unexpected body %q", w.Body.String())
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}

	for _, m := range mailer.messages() {
		if m.From != "x@y.com" || m.To != "a@b.com" {
			t.Fatalf("mixed configuration in %+v", m)
		}
	}
	if got := len(mailer.messages()); got != n {
		t.Fatalf("expected %d sends, got %d", n, got)
	}
}

func TestNewMailHandlerCopiesConfig(t *testing.T) {
	mailer := &recordingMailer{}
	cfg := testConfig("x@y.com", "a@b.com")
	h := NewMailHandler(cfg, mailer)

	cfg.Mail.Recipient = "changed@b.com"

	w := httptest.NewRecorder()
	h.SendMail(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := w.Body.String(); got != "Email sent to a@b.com" {
		t.Fatalf("unexpected body %q", got)
	}
}
