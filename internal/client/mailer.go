package client

import (
	"fmt"
	"io"
	"sparemart/internal/config"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail with an optional PDF attachment.
type Mailer interface {
	Send(msg *MailMessage) error
}

type MailMessage struct {
	To             string
	Subject        string
	HTMLBody       string
	TextBody       string
	AttachmentName string
	Attachment     []byte
}

type smtpMailer struct {
	cfg *config.Mail
}

func NewMailer(mailCfg *config.Mail) Mailer {
	return &smtpMailer{cfg: mailCfg}
}

func (m *smtpMailer) Send(msg *MailMessage) error {
	// Fail fast before dialing; a misconfigured relay should produce a
	// descriptive error, not a connect timeout.
	if m.cfg.Host == "" || m.cfg.From == "" {
		return fmt.Errorf("mail relay not configured: host and from address are required")
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.cfg.From)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.TextBody)
	gm.AddAlternative("text/html", msg.HTMLBody)

	if len(msg.Attachment) > 0 {
		gm.Attach(msg.AttachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(msg.Attachment)
			return err
		}))
	}

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	return nil
}
