// -----------------------------------------------------------------------
// Mailer Service - SMTP delivery collaborator for finished documents
// Implements the attach-to-outbound-message persist boundary. The
// pipeline hands over a buffer and file name; destination, MIME type and
// transport failures are this collaborator's concern.
// -----------------------------------------------------------------------

package mailer

import (
	"context"
	"crypto/rand"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/atelier/internal/interfaces"
)

// Config holds SMTP settings. Supplied explicitly by the caller; the
// pipeline persists no state.
type Config struct {
	Host     string `validate:"required"`
	Port     int    `validate:"required,min=1,max=65535"`
	Username string `validate:"required"`
	Password string `validate:"required"`
	From     string `validate:"required,email"`
	FromName string
	UseTLS   bool
}

// Validate validates the config using go-playground/validator
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// Attachment represents an email attachment
type Attachment struct {
	Filename    string // Filename for the attachment
	ContentType string // MIME type
	Content     []byte // Raw content bytes
}

// Service sends documents as email attachments over SMTP
type Service struct {
	config Config
	logger arbor.ILogger
}

// NewService creates a new mailer service with validated configuration
func NewService(config Config, logger arbor.ILogger) (*Service, error) {
	if config.FromName == "" {
		config.FromName = "Atelier"
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mailer config: %w", err)
	}
	return &Service{
		config: config,
		logger: logger,
	}, nil
}

// DocumentPersist returns a persist collaborator bound to a recipient and
// subject. The returned collaborator emails the finished document as an
// attachment with a short plain-text body.
func (s *Service) DocumentPersist(to, subject string) interfaces.Persist {
	return interfaces.PersistFunc(func(ctx context.Context, filename string, content []byte) error {
		body := fmt.Sprintf("Your document is ready.\r\n\r\nOpen the attached %s for the full formatted document.\r\n", filename)
		return s.SendWithAttachment(ctx, to, subject, body, Attachment{
			Filename:    filename,
			ContentType: contentTypeFor(filename),
			Content:     content,
		})
	})
}

// SendWithAttachment sends a plain-text email with one file attachment
func (s *Service) SendWithAttachment(ctx context.Context, to, subject, textBody string, attachment Attachment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	boundary := generateBoundary()

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=\"%s\"\r\n", boundary))
	msg.WriteString("\r\n")

	// Text part - base64 keeps long lines within RFC 5322 limits
	msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("Content-Transfer-Encoding: base64\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(encodeBase64WithLineBreaks([]byte(textBody)))
	msg.WriteString("\r\n")

	// Attachment part
	msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	msg.WriteString(fmt.Sprintf("Content-Type: %s; name=\"%s\"\r\n", attachment.ContentType, attachment.Filename))
	msg.WriteString("Content-Transfer-Encoding: base64\r\n")
	msg.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=\"%s\"\r\n", attachment.Filename))
	msg.WriteString("\r\n")
	msg.WriteString(encodeBase64WithLineBreaks(attachment.Content))
	msg.WriteString("\r\n")

	msg.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	s.logger.Info().
		Str("to", to).
		Str("subject", subject).
		Str("attachment", attachment.Filename).
		Int("attachment_size", len(attachment.Content)).
		Msg("Sending document email")

	var err error
	if s.config.UseTLS {
		err = s.sendWithTLS(addr, auth, to, msg.String())
	} else {
		err = smtp.SendMail(addr, auth, s.config.From, []string{to}, []byte(msg.String()))
	}
	if err != nil {
		s.logger.Error().Err(err).Str("to", to).Msg("Failed to send document email")
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// sendWithTLS sends over an explicit TLS connection (Gmail, etc.)
func (s *Service) sendWithTLS(addr string, auth smtp.Auth, to, msg string) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.config.Host})
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP auth failed: %w", err)
	}
	if err := client.Mail(s.config.From); err != nil {
		return fmt.Errorf("SMTP MAIL failed: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("SMTP RCPT failed: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("SMTP DATA failed: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize message: %w", err)
	}
	return client.Quit()
}

// contentTypeFor maps a document file name to its MIME type
func contentTypeFor(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".docx"):
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case strings.HasSuffix(filename, ".pdf"):
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// generateBoundary creates a random MIME boundary to avoid conflicts with
// message content
func generateBoundary() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "atelier-boundary-fallback"
	}
	return fmt.Sprintf("atelier-%x", b)
}

// encodeBase64WithLineBreaks encodes content in base64 wrapped at 76
// characters per RFC 2045
func encodeBase64WithLineBreaks(content []byte) string {
	encoded := base64.StdEncoding.EncodeToString(content)

	var sb strings.Builder
	for len(encoded) > 76 {
		sb.WriteString(encoded[:76])
		sb.WriteString("\r\n")
		encoded = encoded[76:]
	}
	sb.WriteString(encoded)
	return sb.String()
}
