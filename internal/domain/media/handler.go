package media

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"dailypawie/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/media", func(mr chi.Router) {
		mr.Post("/", uploadHandler(svc))
		mr.Get("/{mediaID}", getMediaHandler(svc))
	})
}

// uploadHandler godoc
// @Summary Subir archivo (multipart, campo "file")
// @Tags media
// @Router /api/media [post]
func uploadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
			http.Error(w, "invalid multipart body", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, `multipart field "file" required`, http.StatusBadRequest)
			return
		}
		defer file.Close()

		o, err := svc.Upload(r.Context(), claims.UserID, header.Filename, header.Header.Get("Content-Type"), file)
		if err != nil {
			switch {
			case errors.Is(err, ErrTooLarge):
				http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, o)
	}
}

// getMediaHandler godoc
// @Summary Metadata de un archivo subido
// @Tags media
// @Router /api/media/{mediaID} [get]
func getMediaHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		o, err := svc.GetByID(r.Context(), chi.URLParam(r, "mediaID"))
		if err != nil {
			http.Error(w, "media not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, o)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
