package media

import "context"

type Repository interface {
	Create(ctx context.Context, o Object, data []byte) error
	GetByID(ctx context.Context, id string) (Object, error)
}
