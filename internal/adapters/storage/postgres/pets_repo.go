package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"dailypawie/internal/domain/pets"
)

// PetsRepo persiste el documento Pet: campos de perfil en columnas, las
// secciones embebidas (medical_record, daily_care, reminders) como JSONB.
type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	mr, dc, rem, err := marshalSections(p)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, pet_owner, pet_carer,
			name, species, breed, sex,
			age, height, weight, photo,
			medical_record, daily_care, reminders,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`,
		p.ID,
		p.PetOwner,
		p.PetCarer,
		p.Name,
		p.Species,
		p.Breed,
		p.Sex,
		p.Age,
		p.Height,
		p.Weight,
		p.Photo,
		mr,
		dc,
		rem,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	mr, dc, rem, err := marshalSections(p)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			pet_carer = $2,
			name = $3,
			species = $4,
			breed = $5,
			sex = $6,
			age = $7,
			height = $8,
			weight = $9,
			photo = $10,
			medical_record = $11,
			daily_care = $12,
			reminders = $13,
			updated_at = $14
		WHERE id = $1
	`,
		p.ID,
		p.PetCarer,
		p.Name,
		p.Species,
		p.Breed,
		p.Sex,
		p.Age,
		p.Height,
		p.Weight,
		p.Photo,
		mr,
		dc,
		rem,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, pet_owner, pet_carer,
			name, species, breed, sex,
			age, height, weight, photo,
			medical_record, daily_care, reminders,
			created_at, updated_at
		FROM pets
		WHERE id = $1
	`, id)

	p, err := scanPet(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, pet_owner, pet_carer,
			name, species, breed, sex,
			age, height, weight, photo,
			medical_record, daily_care, reminders,
			created_at, updated_at
		FROM pets
		WHERE pet_owner = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var mr, dc, rem []byte

	if err := row.Scan(
		&p.ID,
		&p.PetOwner,
		&p.PetCarer,
		&p.Name,
		&p.Species,
		&p.Breed,
		&p.Sex,
		&p.Age,
		&p.Height,
		&p.Weight,
		&p.Photo,
		&mr,
		&dc,
		&rem,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	if len(mr) > 0 {
		if err := json.Unmarshal(mr, &p.MedicalRecord); err != nil {
			return pets.Pet{}, fmt.Errorf("decode medical_record: %w", err)
		}
	}
	if len(dc) > 0 {
		if err := json.Unmarshal(dc, &p.DailyCare); err != nil {
			return pets.Pet{}, fmt.Errorf("decode daily_care: %w", err)
		}
	}
	if len(rem) > 0 {
		if err := json.Unmarshal(rem, &p.Reminders); err != nil {
			return pets.Pet{}, fmt.Errorf("decode reminders: %w", err)
		}
	}

	return p, nil
}

func marshalSections(p pets.Pet) (mr, dc, rem []byte, err error) {
	if mr, err = json.Marshal(p.MedicalRecord); err != nil {
		return nil, nil, nil, fmt.Errorf("encode medical_record: %w", err)
	}
	if dc, err = json.Marshal(p.DailyCare); err != nil {
		return nil, nil, nil, fmt.Errorf("encode daily_care: %w", err)
	}
	if rem, err = json.Marshal(p.Reminders); err != nil {
		return nil, nil, nil, fmt.Errorf("encode reminders: %w", err)
	}
	return mr, dc, rem, nil
}
