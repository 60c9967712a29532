package notify

import (
	"context"
	"sync"
	"time"

	"clinic-desk/internal/platform/logger"
)

// Message es un correo retenido por Outbox.
type Message struct {
	To      string
	Subject string
	Body    string
	SentAt  time.Time
}

// Outbox no envía nada: loguea y guarda los correos. Se usa sin SMTP configurado.
type Outbox struct {
	log logger.Logger

	mu   sync.Mutex
	sent []Message
}

func NewOutbox(log logger.Logger) *Outbox {
	if log == nil {
		log = logger.Nop()
	}
	return &Outbox{log: log.With(map[string]any{"module": "outbox"})}
}

func (o *Outbox) Send(ctx context.Context, to, subject, body string) error {
	o.mu.Lock()
	o.sent = append(o.sent, Message{To: to, Subject: subject, Body: body, SentAt: time.Now().UTC()})
	o.mu.Unlock()

	o.log.Info("correo retenido (sin SMTP)", map[string]any{"to": to, "subject": subject})
	return nil
}

func (o *Outbox) Sent() []Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Message(nil), o.sent...)
}
