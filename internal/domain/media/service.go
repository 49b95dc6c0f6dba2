package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("media not found")
	ErrTooLarge     = errors.New("file too large")
)

// MaxUploadBytes limita el tamaño de archivo aceptado.
const MaxUploadBytes = 10 << 20 // 10MB

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

// Upload guarda el archivo y devuelve la metadata con id asignado.
func (s *Service) Upload(ctx context.Context, uploadedBy, filename, mimeType string, r io.Reader) (Object, error) {
	if strings.TrimSpace(uploadedBy) == "" {
		return Object{}, ErrInvalidInput
	}
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return Object{}, fmt.Errorf("%w: filename required", ErrInvalidInput)
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return Object{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return Object{}, ErrTooLarge
	}
	if len(data) == 0 {
		return Object{}, fmt.Errorf("%w: empty file", ErrInvalidInput)
	}

	o := Object{
		ID:         s.newID(),
		Filename:   filename,
		MimeType:   strings.TrimSpace(mimeType),
		Size:       int64(len(data)),
		UploadedBy: uploadedBy,
		UploadedAt: s.now(),
	}

	if err := s.repo.Create(ctx, o, data); err != nil {
		return Object{}, err
	}
	return o, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Object, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Object{}, ErrNotFound
	}
	return o, nil
}
