package auth

import "context"

// SessionResolver resuelve la cookie de sesión del backend clínico a Claims.
type SessionResolver interface {
	Resolve(ctx context.Context, cookie string) (Claims, error)
}
