package session

import (
	"context"
	"fmt"

	"clinic-desk/internal/ports/auth"
)

// Resolver implementa auth.SessionResolver usando el backend clínico.
type Resolver struct {
	client *Client
}

func NewResolver(client *Client) *Resolver {
	return &Resolver{client: client}
}

func (r *Resolver) Resolve(ctx context.Context, cookie string) (auth.Claims, error) {
	if r == nil || r.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	claims, err := r.client.Me(ctx, cookie)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("resolve session: %w", err)
	}
	return claims, nil
}
