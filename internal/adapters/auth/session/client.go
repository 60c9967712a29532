package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"clinic-desk/internal/platform/httpclient"
	"clinic-desk/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("session client not configured")
	ErrUnauthorized  = errors.New("session unauthorized")
	ErrUpstream      = errors.New("session upstream error")
)

// DefaultPath es el endpoint del backend que devuelve el usuario logueado.
const DefaultPath = "/api/auth/me"

type Config struct {
	Path string
}

type Client struct {
	http *httpclient.Client
	path string
}

func NewClient(hc *httpclient.Client, cfg Config) *Client {
	p := strings.TrimSpace(cfg.Path)
	if p == "" {
		p = DefaultPath
	}
	return &Client{http: hc, path: p}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != ""
}

// me acepta id numérico o string y el nombre en snake o camel case.
type me struct {
	ID        any    `json:"id"`
	UserID    any    `json:"user_id"`
	DoctorID  any    `json:"doctor_id"`
	FullName  string `json:"full_name"`
	FullName2 string `json:"fullName"`
	Email     string `json:"email"`
}

// Me consulta al backend con la cookie del usuario.
func (c *Client) Me(ctx context.Context, cookie string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}
	cookie = strings.TrimSpace(cookie)
	if cookie == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	var out me
	err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   c.path,
		Header: http.Header{"Cookie": {cookie}},
		Out:    &out,
	})
	switch st := httpclient.StatusOf(err); {
	case err == nil:
	case st == http.StatusUnauthorized || st == http.StatusForbidden:
		return auth.Claims{}, ErrUnauthorized
	default:
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	id := idString(out.ID)
	if id == "" {
		id = idString(out.UserID)
	}
	if id == "" {
		return auth.Claims{}, errors.New("session response missing id")
	}

	name := strings.TrimSpace(out.FullName)
	if name == "" {
		name = strings.TrimSpace(out.FullName2)
	}

	claims := auth.Claims{
		UserID:   id,
		FullName: name,
		Email:    strings.TrimSpace(out.Email),
	}
	// el id de usuario es el del médico salvo que venga doctor_id aparte
	doc := idString(out.DoctorID)
	if doc == "" {
		doc = id
	}
	if n, err := strconv.Atoi(doc); err == nil {
		claims.DoctorID = n
	}
	return claims, nil
}

func idString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatInt(int64(t), 10)
	default:
		return ""
	}
}
