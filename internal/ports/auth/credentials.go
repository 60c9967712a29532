package auth

import (
	"context"
	"strings"
)

type credentialsKey struct{}

// WithCredentials guarda la cookie de sesión entrante para reenviarla al backend.
func WithCredentials(ctx context.Context, cookie string) context.Context {
	cookie = strings.TrimSpace(cookie)
	if cookie == "" {
		return ctx
	}
	return context.WithValue(ctx, credentialsKey{}, cookie)
}

// CredentialsFrom devuelve la cookie guardada o "".
func CredentialsFrom(ctx context.Context) string {
	v, _ := ctx.Value(credentialsKey{}).(string)
	return v
}
