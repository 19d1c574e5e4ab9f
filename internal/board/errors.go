package board

import (
	"fmt"

	"afom-board-be/internal/entity"
)

var (
	ErrInvalidBucket       = fmt.Errorf("%w: invalid bucket", entity.ErrValidation)
	ErrNotContentBucket    = fmt.Errorf("%w: bucket must be one of acquis, faiblesses, opportunites, menaces", entity.ErrValidation)
	ErrEmptyContent        = fmt.Errorf("%w: content must not be empty", entity.ErrValidation)
	ErrInvalidSessionToken = fmt.Errorf("%w: session token must not be empty", entity.ErrValidation)
	ErrSessionTokenTooLong = fmt.Errorf("%w: session token is too long", entity.ErrValidation)
	ErrNoteNotInSourceList = fmt.Errorf("%w: note is not part of its source bucket", entity.ErrNotFound)
	ErrNoteNotArchived     = fmt.Errorf("%w: note is not archived", entity.ErrValidation)
)
