package mail

import (
	"RecipeHub/internal/api/config"
	"errors"

	"gopkg.in/gomail.v2"
)

// Sender 发送纯文本邮件
type Sender interface {
	Send(to, subject, body string) error
}

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	if to == "" {
		return errors.New("empty recipient")
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return s.dialer.DialAndSend(m)
}

// NopSender 未配置 SMTP 时使用
type NopSender struct{}

func (NopSender) Send(string, string, string) error {
	return nil
}
