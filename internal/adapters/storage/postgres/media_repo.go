package postgres

import (
	"context"
	"database/sql"
	"strings"

	"dailypawie/internal/domain/media"
)

// MediaRepo guarda metadata + bytes en la misma tabla (bytea).
// Suficiente para los tamaños que maneja la app; un object store vendría
// después si hiciera falta.
type MediaRepo struct {
	db *sql.DB
}

func NewMediaRepo(db *sql.DB) *MediaRepo {
	return &MediaRepo{db: db}
}

func (r *MediaRepo) Create(ctx context.Context, o media.Object, data []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO media (
			id, filename, mime_type, size,
			uploaded_by, uploaded_at, data
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		o.ID,
		o.Filename,
		o.MimeType,
		o.Size,
		o.UploadedBy,
		o.UploadedAt,
		data,
	)
	return err
}

func (r *MediaRepo) GetByID(ctx context.Context, id string) (media.Object, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return media.Object{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, filename, mime_type, size, uploaded_by, uploaded_at
		FROM media
		WHERE id = $1
	`, id)

	var o media.Object
	if err := row.Scan(
		&o.ID,
		&o.Filename,
		&o.MimeType,
		&o.Size,
		&o.UploadedBy,
		&o.UploadedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return media.Object{}, ErrNotFound
		}
		return media.Object{}, err
	}

	return o, nil
}
