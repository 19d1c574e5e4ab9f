package contract

import (
	"context"
	"time"

	"afom-board-be/internal/entity"
)

type SessionRepository interface {
	FindByToken(ctx context.Context, token string) (*entity.Session, error)
	Upsert(ctx context.Context, session *entity.Session) error
	TouchActivity(ctx context.Context, token string, at time.Time) error
}
