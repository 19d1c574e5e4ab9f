package dto

import (
	"time"

	"afom-board-be/internal/board"
	"afom-board-be/internal/entity"

	"github.com/google/uuid"
)

type SubmitNoteRequest struct {
	Bucket    string `json:"bucket" validate:"required"`
	Author    string `json:"author"`
	Content   string `json:"content" validate:"required"`
	Anonymous bool   `json:"anonymous"`
}

type MoveNoteRequest struct {
	Bucket string `json:"bucket" validate:"required"`
	Index  int    `json:"index"`
}

// NudgeNoteRequest moves a note by grid steps. Columns defaults to the board's layout width.
type NudgeNoteRequest struct {
	Step    int `json:"step"`
	Row     int `json:"row"`
	Columns int `json:"columns" validate:"gte=0"`
}

type RestoreNoteRequest struct {
	Bucket string `json:"bucket"`
}

type EditNoteRequest struct {
	Author    string `json:"author"`
	Content   string `json:"content" validate:"required"`
	Anonymous bool   `json:"anonymous"`
}

type NoteResponse struct {
	Id            uuid.UUID  `json:"id"`
	SessionId     string     `json:"session_id"`
	Bucket        string     `json:"bucket"`
	OriginBucket  string     `json:"origin_bucket"`
	DisplayColor  string     `json:"display_color"`
	Content       string     `json:"content"`
	Author        string     `json:"author"`
	SortIndex     int64      `json:"sort_index"`
	Archived      bool       `json:"archived"`
	LastBucket    string     `json:"last_bucket,omitempty"`
	LastSortIndex *int64     `json:"last_sort_index,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

func NewNoteResponse(n *entity.Note) NoteResponse {
	return NoteResponse{
		Id:            n.Id,
		SessionId:     n.SessionId,
		Bucket:        n.Bucket.String(),
		OriginBucket:  n.OriginBucket.String(),
		DisplayColor:  board.ColorOf(board.DisplayBucket(n)),
		Content:       n.Content,
		Author:        n.Author,
		SortIndex:     n.SortIndex,
		Archived:      n.IsArchived(),
		LastBucket:    n.LastBucket.String(),
		LastSortIndex: n.LastSortIndex,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
		DeletedAt:     n.DeletedAt,
	}
}

func NewNoteResponses(notes []*entity.Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, NewNoteResponse(n))
	}
	return out
}

// ToEntity rebuilds the note carried by a live frame.
func (r NoteResponse) ToEntity() *entity.Note {
	return &entity.Note{
		Id:            r.Id,
		SessionId:     r.SessionId,
		Bucket:        entity.Bucket(r.Bucket),
		OriginBucket:  entity.Bucket(r.OriginBucket),
		Content:       r.Content,
		Author:        r.Author,
		SortIndex:     r.SortIndex,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		DeletedAt:     r.DeletedAt,
		LastBucket:    entity.Bucket(r.LastBucket),
		LastSortIndex: r.LastSortIndex,
	}
}

type MoveNoteResponse struct {
	Note    NoteResponse   `json:"note"`
	Changed []NoteResponse `json:"changed"`
	NoOp    bool           `json:"no_op"`
}

type BucketCountsResponse struct {
	SessionId string           `json:"session_id"`
	Counts    map[string]int64 `json:"counts"`
	Active    int64            `json:"active"`
	Archived  int64            `json:"archived"`
}
