package postgres

import (
	"context"
	"database/sql"
	"strings"

	"dailypawie/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, email, role,
			name, surname, phone, location, photo,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		u.ID,
		u.Email,
		u.Role,
		u.Name,
		u.Surname,
		u.Phone,
		u.Location,
		u.Photo,
		u.CreatedAt,
		u.UpdatedAt,
	)
	return err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.getWhere(ctx, "id = $1", strings.TrimSpace(id))
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.getWhere(ctx, "email = $1", strings.ToLower(strings.TrimSpace(email)))
}

func (r *UsersRepo) getWhere(ctx context.Context, where, arg string) (users.User, error) {
	if arg == "" {
		return users.User{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, email, role,
			name, surname, phone, location, photo,
			created_at, updated_at
		FROM users
		WHERE `+where, arg)

	var u users.User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Role,
		&u.Name,
		&u.Surname,
		&u.Phone,
		&u.Location,
		&u.Photo,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return users.User{}, ErrNotFound
		}
		return users.User{}, err
	}

	return u, nil
}
