package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// SMTPConfig holds transport settings for the mail server.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// SMTPMailer renders an HTML template and delivers it over SMTP with
// implicit TLS. When credentials are not configured it logs the message
// instead of failing, so development environments work without a mail
// server.
type SMTPMailer struct {
	config    SMTPConfig
	templates *template.Template
	logger    zerolog.Logger
}

// NewSMTP constructs the SMTP mailer.
func NewSMTP(config SMTPConfig, logger zerolog.Logger) (*SMTPMailer, error) {
	templates := template.New("mail")
	for name, body := range bodyTemplates {
		if _, err := templates.New(name).Parse(body); err != nil {
			return nil, fmt.Errorf("failed to parse mail template %q: %w", name, err)
		}
	}

	return &SMTPMailer{
		config:    config,
		templates: templates,
		logger:    logger.With().Str("component", "smtp_mailer").Logger(),
	}, nil
}

// Send renders the template and pushes the message through the transport.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) Result {
	body, err := m.render(msg.Template, msg.Data)
	if err != nil {
		return Result{Success: false, Message: fmt.Sprintf("failed to render email: %v", err)}
	}

	if m.config.Username == "" || m.config.Password == "" {
		m.logger.Warn().
			Str("to", maskAddress(msg.To)).
			Str("template", msg.Template).
			Msg("smtp credentials not configured, email logged instead of sent")
		return Result{Success: true, Message: "logged (smtp not configured)"}
	}

	if err := m.deliver(ctx, msg.To, msg.Subject, body); err != nil {
		return Result{Success: false, Message: fmt.Sprintf("failed to send email: %v", err)}
	}

	return Result{Success: true, Message: "email sent successfully"}
}

func (m *SMTPMailer) render(name string, data map[string]string) (string, error) {
	tmpl := m.templates.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (m *SMTPMailer) deliver(ctx context.Context, to, subject, htmlBody string) error {
	addr := net.JoinHostPort(m.config.Host, strconv.Itoa(m.config.Port))

	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}

	tlsConn := tls.Client(conn, &tls.Config{ServerName: m.config.Host})
	client, err := smtp.NewClient(tlsConn, m.config.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(m.config.FromEmail); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	writer, err := client.Data()
	if err != nil {
		return err
	}

	from := m.config.FromEmail
	if m.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.config.FromName, m.config.FromEmail)
	}

	var payload bytes.Buffer
	fmt.Fprintf(&payload, "From: %s\r\n", from)
	fmt.Fprintf(&payload, "To: %s\r\n", to)
	fmt.Fprintf(&payload, "Subject: %s\r\n", subject)
	payload.WriteString("MIME-Version: 1.0\r\n")
	payload.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	payload.WriteString(htmlBody)

	if _, err := writer.Write(payload.Bytes()); err != nil {
		writer.Close()
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	return client.Quit()
}

func maskAddress(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 1 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}
