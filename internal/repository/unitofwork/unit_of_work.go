package unitofwork

import (
	"context"

	"afom-board-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	NoteRepository() contract.NoteRepository
	SessionRepository() contract.SessionRepository
	ConfrontationRepository() contract.ConfrontationRepository
}
