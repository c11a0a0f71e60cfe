package notifier

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// EmailNotifier sends HTML reports over SMTP with implicit TLS.
type EmailNotifier struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	To         string
	MaxRetries int

	log zerolog.Logger
}

// NewEmailNotifier creates a notifier for the given SMTP endpoint.
func NewEmailNotifier(host string, port int, username, password, from, to string, log zerolog.Logger) *EmailNotifier {
	return &EmailNotifier{
		Host:       host,
		Port:       port,
		Username:   username,
		Password:   password,
		From:       from,
		To:         to,
		MaxRetries: 3,
		log:        log.With().Str("component", "email").Logger(),
	}
}

// Send delivers one HTML message, retrying with exponential backoff.
func (e *EmailNotifier) Send(ctx context.Context, subject, htmlBody string) error {
	var lastErr error
	for i := 0; i <= e.MaxRetries; i++ {
		if err := e.sendOnce(ctx, subject, htmlBody); err != nil {
			lastErr = err
			backoff := time.Duration(1<<uint(i)) * time.Second
			e.log.Warn().Err(err).Int("attempt", i+1).Dur("backoff", backoff).Msg("email send failed, retrying")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", e.MaxRetries+1, lastErr)
}

func (e *EmailNotifier) sendOnce(ctx context.Context, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", e.Host, e.Port)
	dialer := &tls.Dialer{Config: &tls.Config{ServerName: e.Host}}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	client, err := smtp.NewClient(conn, e.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", e.Username, e.Password, e.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(e.From); err != nil {
		return fmt.Errorf("smtp mail: %w", err)
	}
	if err := client.Rcpt(e.To); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	msg := e.buildMessage(subject, htmlBody)
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish message: %w", err)
	}
	return client.Quit()
}

func (e *EmailNotifier) buildMessage(subject, htmlBody string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\r\n", e.From))
	b.WriteString(fmt.Sprintf("To: %s\r\n", e.To))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")
	return b.String()
}
