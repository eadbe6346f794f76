package notify

import (
	"fmt"
	"net/smtp"
	"strconv"
	"strings"

	"context"

	"github.com/rs/zerolog"
)

// SMTPConfig holds configuration for the outbound SMTP server and the
// default sending identity used when a message carries none of its own.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// SMTPSender delivers messages over SMTP, one copy per recipient, and
// aggregates per-recipient outcomes into a single Delivery.
type SMTPSender struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSMTPSender creates an SMTP-backed sender.
func NewSMTPSender(config SMTPConfig, logger zerolog.Logger) *SMTPSender {
	return &SMTPSender{config: config, logger: logger}
}

// Send delivers the message. When neither the message nor the config carry
// credentials the send is logged and reported successful, so development
// environments work without a mail account.
func (s *SMTPSender) Send(ctx context.Context, msg Message) Delivery {
	from := msg.From
	if from.Email == "" {
		from = Identity{Name: s.config.FromName, Email: s.config.FromEmail, Password: s.config.Password}
	}

	delivery := Delivery{MessageID: msg.ID, Total: len(msg.To)}

	if from.Email == "" || from.Password == "" {
		s.logger.Warn().
			Str("messageId", msg.ID.String()).
			Strs("to", msg.To).
			Str("subject", msg.Subject).
			Msg("SMTP credentials not configured - notification logged instead of sent")
		delivery.Successful = len(msg.To)
		return delivery
	}

	auth := smtp.PlainAuth("", from.Email, from.Password, s.config.Host)
	addr := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	for _, to := range msg.To {
		select {
		case <-ctx.Done():
			delivery.Failed = delivery.Total - delivery.Successful
			delivery.Err = ctx.Err()
			return delivery
		default:
		}

		if err := s.sendOne(addr, auth, from, to, msg); err != nil {
			s.logger.Error().Err(err).
				Str("messageId", msg.ID.String()).
				Str("to", to).
				Msg("Failed to send notification email")
			delivery.Failed++
			delivery.Err = err
			continue
		}
		delivery.Successful++
	}
	return delivery
}

func (s *SMTPSender) sendOne(addr string, auth smtp.Auth, from Identity, to string, msg Message) error {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", from.Name, from.Email)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	if len(msg.Cc) > 0 {
		fmt.Fprintf(&b, "Cc: %s\r\n", strings.Join(msg.Cc, ", "))
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTMLBody)

	recipients := append([]string{to}, msg.Cc...)
	if err := smtp.SendMail(addr, auth, from.Email, recipients, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}
