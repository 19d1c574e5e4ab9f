package dto

import (
	"time"

	"afom-board-be/internal/entity"

	"github.com/google/uuid"
)

type SaveConfrontationRequest struct {
	Shortlist entity.Shortlist `json:"shortlist"`
	Checks    []entity.Cell    `json:"checks"`
}

type AutoFillRequest struct {
	Shortlist entity.Shortlist `json:"shortlist"`
}

type AxisResponse struct {
	NoteId  uuid.UUID `json:"note_id"`
	Bucket  string    `json:"bucket"`
	Content string    `json:"content"`
	Score   int       `json:"score"`
}

type ConfrontationResponse struct {
	SessionId string           `json:"session_id"`
	Shortlist entity.Shortlist `json:"shortlist"`
	Checks    []entity.Cell    `json:"checks"`
	Rows      []AxisResponse   `json:"rows"`
	Columns   []AxisResponse   `json:"columns"`
	UpdatedAt *time.Time       `json:"updated_at"`
}
