package contract

import (
	"context"

	"afom-board-be/internal/entity"
	"afom-board-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	Update(ctx context.Context, note *entity.Note) error
	// UpdatePositions writes bucket and sort_index for every note in one pass.
	UpdatePositions(ctx context.Context, notes []*entity.Note) error
	// HealOrigin sets origin_bucket only where it is still empty. Reports whether a row changed.
	HealOrigin(ctx context.Context, id uuid.UUID, origin entity.Bucket) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error)
	CountByBucket(ctx context.Context, sessionId string) (map[entity.Bucket]int64, error)
}
