package service

import (
	"fmt"

	"afom-board-be/internal/entity"
)

var (
	ErrNoteNotFound            = fmt.Errorf("%w: note not found", entity.ErrNotFound)
	ErrConfirmationRequired    = fmt.Errorf("%w: deleting a note requires confirmation", entity.ErrValidation)
	ErrNotEnoughNotes          = fmt.Errorf("%w: not enough notes to analyse", entity.ErrValidation)
	ErrUnknownShortlistNote    = fmt.Errorf("%w: shortlisted note does not belong to this session", entity.ErrValidation)
	ErrArchivedShortlist       = fmt.Errorf("%w: archived notes cannot be shortlisted", entity.ErrValidation)
	ErrShortlistBucketMismatch = fmt.Errorf("%w: shortlisted note is not in that quadrant", entity.ErrValidation)
	ErrUnsupportedFormat       = fmt.Errorf("%w: export format must be csv or json", entity.ErrValidation)
)
