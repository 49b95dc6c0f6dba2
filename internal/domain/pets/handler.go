package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"dailypawie/internal/middleware"
	"dailypawie/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))

		// Documento completo (owner, carer o admin)
		pr.Get("/{petID}", getPetHandler(svc))

		// Merge parcial del documento (owner, carer o admin)
		pr.Patch("/{petID}", patchPetHandler(svc))
	})
}

type createPetRequest struct {
	Name     string  `json:"name"`
	Species  string  `json:"species"`
	Breed    string  `json:"breed"`
	Sex      string  `json:"sex"`
	Age      int     `json:"age"`
	Height   float64 `json:"height"`
	Weight   float64 `json:"weight"`
	Photo    string  `json:"photo"`
	PetCarer string  `json:"petCarer"`
}

// patchPetRequest decodifica el body de PATCH.
// Punteros para PATCH real: nil = sección no enviada.
type patchPetRequest struct {
	Name     *string  `json:"name"`
	Species  *string  `json:"species"`
	Breed    *string  `json:"breed"`
	Sex      *string  `json:"sex"`
	Age      *int     `json:"age"`
	Height   *float64 `json:"height"`
	Weight   *float64 `json:"weight"`
	Photo    *string  `json:"photo"`
	PetCarer *string  `json:"petCarer"`

	MedicalRecord *MedicalRecord `json:"medicalRecord"`
	DailyCare     *DailyCare     `json:"dailyCare"`
	Reminders     *[]Reminder    `json:"reminders"`
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Tags pets
// @Router /api/pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:     req.Name,
			Species:  req.Species,
			Breed:    req.Breed,
			Sex:      req.Sex,
			Age:      req.Age,
			Height:   req.Height,
			Weight:   req.Weight,
			Photo:    req.Photo,
			PetCarer: req.PetCarer,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, p)
	}
}

// listPetsHandler godoc
// @Summary Listar mascotas del usuario autenticado
// @Tags pets
// @Router /api/pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	// Owner-only (lo compartido como carer sale por /api/users/me)
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, items)
	}
}

// getPetHandler godoc
// @Summary Documento completo de la mascota
// @Tags pets
// @Router /api/pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		p, err := svc.GetByID(r.Context(), petID)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		if !canAccess(p, claims) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		writeJSON(w, http.StatusOK, p)
	}
}

// patchPetHandler godoc
// @Summary Merge parcial del documento de la mascota
// @Tags pets
// @Router /api/pets/{petID} [patch]
func patchPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		current, err := svc.GetByID(r.Context(), petID)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		if !canAccess(current, claims) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req patchPetRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.Patch(r.Context(), petID, PatchInput{
			Name:          req.Name,
			Species:       req.Species,
			Breed:         req.Breed,
			Sex:           req.Sex,
			Age:           req.Age,
			Height:        req.Height,
			Weight:        req.Weight,
			Photo:         req.Photo,
			PetCarer:      req.PetCarer,
			MedicalRecord: req.MedicalRecord,
			DailyCare:     req.DailyCare,
			Reminders:     req.Reminders,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "pet not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, updated)
	}
}

// canAccess: owner y carer ven y editan el documento; admin bypass.
func canAccess(p Pet, claims auth.Claims) bool {
	if claims.Role == auth.RoleAdmin {
		return true
	}
	return p.PetOwner == claims.UserID || (p.PetCarer != "" && p.PetCarer == claims.UserID)
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// (pets/users/media) para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
