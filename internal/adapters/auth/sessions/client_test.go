package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"dailypawie/internal/ports/auth"
)

func newTestSessions(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	c, err := NewClient(Config{
		BaseURL: ts.URL,
		APIKey:  "k-123",
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c, ts
}

func TestVerifyToken_SendsAPIKeyAndDecodesClaims(t *testing.T) {
	c, _ := newTestSessions(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/sessions/verify" {
			t.Errorf("request inesperado: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "k-123" {
			t.Errorf("api key = %q", got)
		}
		var body struct {
			Token string `json:"token"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Token != "tok-1" {
			t.Errorf("token = %q", body.Token)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"userId": "u1", "email": "a@b.c", "role": "petOwner",
		})
	})

	claims, err := c.VerifyToken(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.UserID != "u1" || claims.Role != auth.RolePetOwner {
		t.Fatalf("claims inesperados: %+v", claims)
	}
}

// Dos requests autenticados concurrentes disparan dos VerifyToken a la vez;
// la API key no puede depender de estado mutado por llamada.
func TestVerifyToken_ConcurrentCalls(t *testing.T) {
	c, _ := newTestSessions(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Api-Key"); got != "k-123" {
			t.Errorf("api key = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"userId": "u1", "email": "a@b.c", "role": "petOwner",
		})
	})

	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = c.VerifyToken(context.Background(), "tok-1")
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("llamada %d: %v", i, err)
		}
	}
}

func TestVerifyToken_UnauthorizedStatus(t *testing.T) {
	c, _ := newTestSessions(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.VerifyToken(context.Background(), "tok-bad")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, esperaba ErrUnauthorized", err)
	}
}
