package contract

import (
	"context"

	"afom-board-be/internal/entity"
)

type ConfrontationRepository interface {
	FindBySession(ctx context.Context, sessionId string) (*entity.Confrontation, error)
	Upsert(ctx context.Context, confrontation *entity.Confrontation) error
}
