package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/legwalet/le-barber/internal/config"
)

// Known template names. Each renders a subject and a plain-text body from
// the caller's parameter map.
const (
	TemplateBarberInvitation    = "barber_invitation"
	TemplateBookingConfirmation = "booking_confirmation"
	TemplateBookingRequest      = "booking_request"
	TemplateRentalNotification  = "rental_notification"
)

// Result mirrors the delivery collaborator's contract: success plus a
// message id, or the error string.
type Result struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

type Mailer struct {
	host string
	port string
	user string
	pass string
	from string
}

func New(cfg *config.Config) *Mailer {
	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &Mailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: from,
	}
}

// Send renders a template and delivers it synchronously.
func (m *Mailer) Send(template, to string, params map[string]string) Result {
	if m.host == "" || m.user == "" {
		return Result{Success: false, Error: "smtp not configured"}
	}

	subject, body, err := render(template, params)
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	msg := "From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
		"\r\n" + body

	addr := m.host + ":" + m.port
	auth := smtp.PlainAuth("", m.user, m.pass, m.host)

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	return Result{Success: true, MessageID: fmt.Sprintf("%s:%s", template, to)}
}

// SendAsync is the fire-and-forget path the lifecycle uses: delivery
// failures are logged, never retried, never surfaced to the caller.
func (m *Mailer) SendAsync(template, to string, params map[string]string) {
	go func() {
		if res := m.Send(template, to, params); !res.Success {
			log.Printf("mail %s to %s failed: %s", template, to, res.Error)
		}
	}()
}

func render(template string, params map[string]string) (subject, body string, err error) {
	p := func(key string) string { return params[key] }

	switch template {
	case TemplateBarberInvitation:
		subject = "You have been invited to join Le Barber"
		body = fmt.Sprintf(
			"%s (%s) invited you to join Le Barber as a barber.\n\nYour invitation code: %s\nIt expires on %s.",
			p("inviter_name"), p("inviter_email"), p("code"), p("expires_at"))
	case TemplateBookingConfirmation:
		subject = "Your booking is confirmed"
		body = fmt.Sprintf(
			"Hi %s,\n\n%s confirmed your booking.\n\nService: %s\nDate: %s %s\nPrice: R%s",
			p("client_name"), p("barber_name"), p("service"), p("date"), p("time"), p("price"))
	case TemplateBookingRequest:
		subject = "New booking request near you"
		body = fmt.Sprintf(
			"%s is looking for: %s\nPreferred: %s %s\nBudget: up to R%s\nNotes: %s",
			p("client_name"), p("service"), p("preferred_date"), p("preferred_time"),
			p("max_price"), p("notes"))
	case TemplateRentalNotification:
		subject = "New rental space listed"
		body = fmt.Sprintf(
			"%s listed a space at %s for R%s (%s).\n\n%s",
			p("barber_name"), p("address"), p("price"), p("price_type"), p("description"))
	default:
		return "", "", fmt.Errorf("unknown mail template %q", template)
	}

	return subject, strings.TrimSpace(body), nil
}
