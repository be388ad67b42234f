package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

// SMTPNotifier mails the admin about new registrations.
type SMTPNotifier struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	To       string
}

func NewSMTPNotifier(host, port, username, password, adminEmail string) *SMTPNotifier {
	return &SMTPNotifier{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     username,
		To:       adminEmail,
	}
}

func (n *SMTPNotifier) RegistrationCompleted(ctx context.Context, ev RegistrationEvent) error {
	addr := net.JoinHostPort(n.Host, n.Port)

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial smtp %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, n.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: n.Host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}

	if n.Username != "" {
		auth := smtp.PlainAuth("", n.Username, n.Password, n.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(n.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := client.Rcpt(n.To); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write([]byte(n.message(ev))); err != nil {
		w.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close message: %w", err)
	}

	return client.Quit()
}

func (n *SMTPNotifier) message(ev RegistrationEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", n.From)
	fmt.Fprintf(&b, "To: %s\r\n", n.To)
	fmt.Fprintf(&b, "Subject: New BBS Manager registration: %s\r\n", ev.UserName)
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Event %s\r\n", ev.EventID)
	fmt.Fprintf(&b, "User #%d %s <%s> registered at %s\r\n",
		ev.UserID, ev.UserName, ev.UserEmail, ev.At.UTC().Format("2006-01-02 15:04:05 MST"))
	return b.String()
}
