package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
)

type Service struct {
	repo  Repository
	now   func() time.Time
	newID func() string
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

type CreateInput struct {
	Name     string
	Species  string
	Breed    string
	Sex      string
	Age      int
	Height   float64
	Weight   float64
	Photo    string
	PetCarer string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Species) == "" {
		return Pet{}, fmt.Errorf("%w: species required", ErrInvalidInput)
	}

	now := s.now()
	p := Pet{
		ID:       s.newID(),
		Name:     strings.TrimSpace(in.Name),
		Species:  Species(strings.TrimSpace(in.Species)),
		Breed:    strings.TrimSpace(in.Breed),
		Sex:      Sex(strings.TrimSpace(in.Sex)),
		Age:      in.Age,
		Height:   in.Height,
		Weight:   in.Weight,
		Photo:    strings.TrimSpace(in.Photo),
		PetOwner: ownerUserID,
		PetCarer: strings.TrimSpace(in.PetCarer),

		CreatedAt: now,
		UpdatedAt: now,
	}
	normalize(&p)

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, ErrNotFound
	}
	normalize(&p)
	return p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	items, err := s.repo.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		normalize(&items[i])
	}
	return items, nil
}

// PatchInput modela un PATCH parcial del documento: nil = sección no enviada.
// Las secciones embebidas (medicalRecord, dailyCare, reminders) se reemplazan
// completas cuando vienen en el body; los clientes siempre mandan la sección
// entera con el array ya modificado.
type PatchInput struct {
	Name     *string
	Species  *string
	Breed    *string
	Sex      *string
	Age      *int
	Height   *float64
	Weight   *float64
	Photo    *string
	PetCarer *string

	MedicalRecord *MedicalRecord
	DailyCare     *DailyCare
	Reminders     *[]Reminder
}

// Patch aplica un merge parcial sobre el documento almacenado. A todo
// sub-registro que llegue con id vacío se le asigna identidad acá; un id
// repetido dentro del mismo array es rechazado, la unicidad por array debe
// sostenerse después de cada mutación.
func (s *Service) Patch(ctx context.Context, petID string, in PatchInput) (Pet, error) {
	current, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, ErrNotFound
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Pet{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		current.Name = strings.TrimSpace(*in.Name)
	}
	if in.Species != nil {
		if strings.TrimSpace(*in.Species) == "" {
			return Pet{}, fmt.Errorf("%w: species cannot be empty", ErrInvalidInput)
		}
		current.Species = Species(strings.TrimSpace(*in.Species))
	}
	if in.Breed != nil {
		current.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Sex != nil {
		current.Sex = Sex(strings.TrimSpace(*in.Sex))
	}
	if in.Age != nil {
		current.Age = *in.Age
	}
	if in.Height != nil {
		current.Height = *in.Height
	}
	if in.Weight != nil {
		current.Weight = *in.Weight
	}
	if in.Photo != nil {
		current.Photo = strings.TrimSpace(*in.Photo)
	}
	if in.PetCarer != nil {
		current.PetCarer = strings.TrimSpace(*in.PetCarer)
	}

	if in.MedicalRecord != nil {
		current.MedicalRecord = *in.MedicalRecord
	}
	if in.DailyCare != nil {
		current.DailyCare = *in.DailyCare
	}
	if in.Reminders != nil {
		current.Reminders = *in.Reminders
	}

	normalize(&current)
	if err := s.assignRecordIDs(&current); err != nil {
		return Pet{}, err
	}

	current.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, current); err != nil {
		return Pet{}, err
	}
	return current, nil
}

// OwnerOf expone el petOwner de una mascota.
// Se usa para evitar ciclos de imports entre módulos (pets <-> users).
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.PetOwner, nil
}

func (s *Service) assignRecordIDs(p *Pet) error {
	mr := &p.MedicalRecord
	arrays := []error{
		assignIDs(mr.Vaccines, "vaccines", s.newID),
		assignIDs(mr.Dewormings, "dewormings", s.newID),
		assignIDs(mr.VetAppointments, "vetAppointments", s.newID),
		assignIDs(mr.SurgicalProcedures, "surgicalProcedures", s.newID),
		assignIDs(mr.Allergies, "allergies", s.newID),
		assignIDs(mr.LaboratoryTests, "laboratoryTests", s.newID),
		assignIDs(mr.MedicalTreatments, "medicalTreatments", s.newID),
		assignIDs(mr.EvolutionTracking, "evolutionTracking", s.newID),
		assignIDs(p.DailyCare.Feedings, "feedings", s.newID),
		assignIDs(p.DailyCare.HygieneRoutines, "hygieneRoutines", s.newID),
		assignIDs(p.Reminders, "reminders", s.newID),
	}
	for _, err := range arrays {
		if err != nil {
			return err
		}
	}
	return nil
}

// assignIDs muta el array in place: id vacío => id nuevo; id repetido => error.
func assignIDs[T any, PT interface {
	*T
	identifiable
}](arr []T, category string, newID func() string) error {
	seen := make(map[string]struct{}, len(arr))
	for i := range arr {
		p := PT(&arr[i])
		id := p.recordID()
		if strings.TrimSpace(id) == "" {
			id = newID()
			p.setRecordID(id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate record id %q in %s", ErrInvalidInput, id, category)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// normalize garantiza arrays no-nil para que el documento serialice [] y no null.
func normalize(p *Pet) {
	mr := &p.MedicalRecord
	if mr.Vaccines == nil {
		mr.Vaccines = []Vaccine{}
	}
	if mr.Dewormings == nil {
		mr.Dewormings = []Deworming{}
	}
	if mr.VetAppointments == nil {
		mr.VetAppointments = []VetAppointment{}
	}
	if mr.SurgicalProcedures == nil {
		mr.SurgicalProcedures = []SurgicalProcedure{}
	}
	if mr.Allergies == nil {
		mr.Allergies = []Allergy{}
	}
	if mr.LaboratoryTests == nil {
		mr.LaboratoryTests = []LaboratoryTest{}
	}
	if mr.MedicalTreatments == nil {
		mr.MedicalTreatments = []MedicalTreatment{}
	}
	if mr.EvolutionTracking == nil {
		mr.EvolutionTracking = []EvolutionEntry{}
	}
	if p.DailyCare.Feedings == nil {
		p.DailyCare.Feedings = []Feeding{}
	}
	if p.DailyCare.HygieneRoutines == nil {
		p.DailyCare.HygieneRoutines = []HygieneRoutine{}
	}
	if p.Reminders == nil {
		p.Reminders = []Reminder{}
	}
}
