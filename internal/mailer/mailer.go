package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Message is a single outbound email with plain text and HTML bodies.
type Message struct {
	From    string
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Dialer is the subset of gomail.Dialer used by SMTPSender.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender sends mail through an SMTP relay, one connection per message.
type SMTPSender struct {
	dialer Dialer
}

// NewSMTPSender builds a sender for host:port authenticating with user/password.
// STARTTLS is negotiated when the server offers it.
func NewSMTPSender(host string, port int, user, password string) *SMTPSender {
	return &SMTPSender{dialer: gomail.NewDialer(host, port, user, password)}
}

// NewSenderWithDialer wires a custom dialer.
func NewSenderWithDialer(d Dialer) *SMTPSender {
	return &SMTPSender{dialer: d}
}

// Send delivers msg synchronously. The context is checked before dialing only;
// gomail has no cancellation once the SMTP session starts.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(Build(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

// Build converts msg into a multipart/alternative gomail message.
func Build(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}
	return m
}
