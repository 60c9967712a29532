package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"net/smtp"
	"strconv"

	"clinic-desk/internal/platform/logger"
)

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Pass     string
	FromName string
	FromAddr string
}

func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.FromAddr != ""
}

// SMTPMailer envía texto plano. Sin User no hace AUTH (MailHog y similares).
type SMTPMailer struct {
	cfg  SMTPConfig
	log  logger.Logger
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg SMTPConfig, log logger.Logger) *SMTPMailer {
	if log == nil {
		log = logger.Nop()
	}
	return &SMTPMailer{
		cfg:  cfg,
		log:  log.With(map[string]any{"module": "smtp"}),
		send: smtp.SendMail,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return errors.New("empty recipient")
	}
	if !m.cfg.Configured() {
		return errors.New("smtp host/from not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	port := m.cfg.Port
	if port == 0 {
		port = 25
	}
	addr := m.cfg.Host + ":" + strconv.Itoa(port)

	msg := buildMessage(m.cfg, to, subject, body)
	m.log.Info("enviando correo", map[string]any{"to": to, "subject": subject, "addr": addr})
	if err := m.send(addr, m.auth(), m.cfg.FromAddr, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (m *SMTPMailer) auth() smtp.Auth {
	if m.cfg.User == "" {
		return nil
	}
	return smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
}

func buildMessage(cfg SMTPConfig, to, subject, body string) []byte {
	from := cfg.FromAddr
	if cfg.FromName != "" {
		from = mime.QEncoding.Encode("utf-8", cfg.FromName) + " <" + cfg.FromAddr + ">"
	}

	var buf bytes.Buffer
	// orden fijo de headers
	for _, h := range [][2]string{
		{"From", from},
		{"To", to},
		{"Subject", mime.QEncoding.Encode("utf-8", subject)},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/plain; charset=UTF-8"},
	} {
		buf.WriteString(h[0] + ": " + h[1] + "\r\n")
	}
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.Bytes()
}
