package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dailypawie/internal/domain/pets"
	"dailypawie/internal/ports/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
)

// PetLister evita el ciclo users <-> pets: el servicio solo necesita listar
// mascotas por owner para armar la vista derivada.
type PetLister interface {
	ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error)
}

type Service struct {
	repo  Repository
	petsl PetLister
	now   func() time.Time
	newID func() string
}

func NewService(repo Repository, petsl PetLister) *Service {
	return &Service{
		repo:  repo,
		petsl: petsl,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

type RegisterInput struct {
	Email    string
	Role     string
	Name     string
	Surname  string
	Phone    string
	Location string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return User{}, fmt.Errorf("%w: valid email required", ErrInvalidInput)
	}

	role := auth.Role(strings.TrimSpace(in.Role))
	switch role {
	case "":
		role = auth.RolePetOwner
	case auth.RoleAdmin, auth.RolePetOwner, auth.RolePetCarer:
	default:
		return User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, in.Role)
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, fmt.Errorf("%w: email already registered", ErrInvalidInput)
	}

	now := s.now()
	u := User{
		ID:        s.newID(),
		Email:     email,
		Role:      role,
		Name:      strings.TrimSpace(in.Name),
		Surname:   strings.TrimSpace(in.Surname),
		Phone:     strings.TrimSpace(in.Phone),
		Location:  strings.TrimSpace(in.Location),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, ErrNotFound
	}
	return u, nil
}

// Profile arma el usuario + ownedPets recalculado desde los documentos Pet.
// No hay doble escritura: si un Pet cambia de owner, la vista se corrige sola
// en la próxima lectura.
func (s *Service) Profile(ctx context.Context, userID string) (Profile, error) {
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	owned := []OwnedPetSummary{}
	if s.petsl != nil {
		items, err := s.petsl.ListByOwner(ctx, userID)
		if err != nil {
			return Profile{}, err
		}
		for _, p := range items {
			owned = append(owned, OwnedPetSummary{
				ID:      p.ID,
				Name:    p.Name,
				Species: string(p.Species),
			})
		}
	}

	return Profile{User: u, OwnedPets: owned}, nil
}
