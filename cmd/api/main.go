package main

import (
	"net/http"
	"os"
	"time"

	"dailypawie/internal/adapters/auth/sessions"
	"dailypawie/internal/platform/logger"
	"dailypawie/internal/ports/auth"
	"dailypawie/internal/router"
)

// @title DailyPawie API
// @version 1.0
// @description API de documentos de cuidado de mascotas
func main() {
	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	// Sin SESSIONS_BASE_URL el server corre en modo dev (X-Debug-User-ID).
	var verifier auth.AuthVerifier
	if base := os.Getenv("SESSIONS_BASE_URL"); base != "" {
		client, err := sessions.NewClient(sessions.Config{
			BaseURL: base,
			APIKey:  os.Getenv("SESSIONS_API_KEY"),
		})
		if err != nil {
			log.Error("invalid sessions config", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		verifier = sessions.NewVerifier(client)
	}

	r := router.NewRouter(router.Options{AuthVerifier: verifier})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
