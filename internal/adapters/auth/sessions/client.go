package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dailypawie/internal/platform/httpclient"
	"dailypawie/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("sessions client not configured")
	ErrUnauthorized  = errors.New("session unauthorized")
)

// Config del cliente de sesiones. BaseURL apunta al servicio de identidad
// que emite los tokens de sesión; normalmente viene de env vars.
type Config struct {
	BaseURL string
	APIKey  string

	// Header donde viaja la API key. Vacío => "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

type Client struct {
	http   *httpclient.Client
	apiKey string
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc, err := httpclient.New(strings.TrimSpace(cfg.BaseURL), timeout)
	if err != nil {
		return nil, err
	}

	key := strings.TrimSpace(cfg.APIKey)
	// La API key se fija una sola vez acá: VerifyToken corre concurrente
	// desde el middleware y no debe mutar estado compartido del cliente.
	if key != "" {
		hc.Headers = map[string]string{h: key}
	}

	return &Client{
		http:   hc,
		apiKey: key,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.apiKey != ""
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// VerifyToken valida un token de sesión contra el servicio de identidad.
func (c *Client) VerifyToken(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrUnauthorized
	}

	var resp verifyResponse
	if err := c.http.PostJSON(ctx, "/v1/sessions/verify", verifyRequest{Token: token}, &resp); err != nil {
		if httpclient.IsHTTPStatus(err, 401) || httpclient.IsHTTPStatus(err, 403) {
			return auth.Claims{}, ErrUnauthorized
		}
		return auth.Claims{}, fmt.Errorf("sessions verify: %w", err)
	}

	return auth.Claims{
		UserID: strings.TrimSpace(resp.UserID),
		Email:  strings.TrimSpace(resp.Email),
		Role:   auth.Role(strings.TrimSpace(resp.Role)),
	}, nil
}
