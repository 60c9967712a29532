package notify

import (
	"context"
	"net/smtp"
	"strings"
	"testing"
)

func TestSMTPMailer_BuildsMessageWithoutAuth(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "localhost", Port: 1025, FromAddr: "recetas@clinica.pe", FromName: "Clínica"}, nil)

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	var gotAuth smtp.Auth
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo, gotMsg = addr, a, from, to, msg
		return nil
	}

	if err := m.Send(context.Background(), "ana@correo.pe", "Receta médica - Ana Ruiz", "Paciente: Ana Ruiz\n"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotAddr != "localhost:1025" || gotFrom != "recetas@clinica.pe" || len(gotTo) != 1 || gotTo[0] != "ana@correo.pe" {
		t.Fatalf("unexpected envelope addr=%q from=%q to=%v", gotAddr, gotFrom, gotTo)
	}
	if gotAuth != nil {
		t.Fatalf("expected no auth without user")
	}
	msg := string(gotMsg)
	if !strings.Contains(msg, "Content-Type: text/plain; charset=UTF-8\r\n") || !strings.HasSuffix(msg, "\r\n\r\nPaciente: Ana Ruiz\n") {
		t.Fatalf("unexpected message:\n%s", msg)
	}
}

func TestSMTPMailer_NotConfigured(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{}, nil)
	if err := m.Send(context.Background(), "a@b.pe", "x", "y"); err == nil {
		t.Fatalf("expected error without host")
	}
}

func TestOutbox_KeepsMessages(t *testing.T) {
	o := NewOutbox(nil)
	_ = o.Send(context.Background(), "a@b.pe", "Receta", "cuerpo")
	sent := o.Sent()
	if len(sent) != 1 || sent[0].To != "a@b.pe" || sent[0].Body != "cuerpo" {
		t.Fatalf("unexpected outbox %#v", sent)
	}
}
