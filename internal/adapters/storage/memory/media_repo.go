package memory

import (
	"context"
	"errors"
	"sync"

	"dailypawie/internal/domain/media"
)

type mediaRepo struct {
	mu   sync.RWMutex
	byID map[string]media.Object
	data map[string][]byte
}

func NewMediaRepo() media.Repository {
	return &mediaRepo{
		byID: make(map[string]media.Object),
		data: make(map[string][]byte),
	}
}

func (r *mediaRepo) Create(ctx context.Context, o media.Object, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o.ID == "" {
		return errors.New("media id required")
	}
	if _, exists := r.byID[o.ID]; exists {
		return errors.New("media already exists")
	}
	r.byID[o.ID] = o
	r.data[o.ID] = data
	return nil
}

func (r *mediaRepo) GetByID(ctx context.Context, id string) (media.Object, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return media.Object{}, ErrNotFound
	}
	return o, nil
}
