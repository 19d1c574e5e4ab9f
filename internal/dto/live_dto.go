package dto

import (
	"afom-board-be/internal/board"
	"afom-board-be/internal/entity"

	"github.com/google/uuid"
)

const (
	FrameSnapshot = "snapshot"
	FrameChange   = "change"
)

// BoardChangeMessage is the payload on the in-process board topic and on the
// Redis fan-out channel.
type BoardChangeMessage struct {
	SessionId  string               `json:"session_id"`
	Kind       string               `json:"kind"`
	Notes      []NoteResponse       `json:"notes"`
	RemovedIds []uuid.UUID          `json:"removed_ids"`
	From       map[uuid.UUID]string `json:"from,omitempty"`
}

func NewBoardChangeMessage(c board.Change) BoardChangeMessage {
	var from map[uuid.UUID]string
	if len(c.From) > 0 {
		from = make(map[uuid.UUID]string, len(c.From))
		for id, b := range c.From {
			from[id] = b.String()
		}
	}
	return BoardChangeMessage{
		SessionId:  c.SessionId,
		Kind:       string(c.Kind),
		Notes:      NewNoteResponses(c.Notes),
		RemovedIds: c.RemovedIds,
		From:       from,
	}
}

func (m BoardChangeMessage) ToChange() board.Change {
	notes := make([]*entity.Note, 0, len(m.Notes))
	for _, n := range m.Notes {
		notes = append(notes, n.ToEntity())
	}
	var from map[uuid.UUID]entity.Bucket
	if len(m.From) > 0 {
		from = make(map[uuid.UUID]entity.Bucket, len(m.From))
		for id, b := range m.From {
			from[id] = entity.Bucket(b)
		}
	}
	return board.Change{
		SessionId:  m.SessionId,
		Kind:       board.ChangeKind(m.Kind),
		Notes:      notes,
		RemovedIds: m.RemovedIds,
		From:       from,
	}
}

// BoardFrame is what a live viewer receives over the websocket.
type BoardFrame struct {
	Type       string         `json:"type"`
	Kind       string         `json:"kind,omitempty"`
	Bucket     string         `json:"bucket,omitempty"`
	Notes      []NoteResponse `json:"notes,omitempty"`
	Upserts    []NoteResponse `json:"upserts,omitempty"`
	RemovedIds []uuid.UUID    `json:"removed_ids,omitempty"`
}

func NewSnapshotFrame(f board.Filter, notes []*entity.Note) BoardFrame {
	return BoardFrame{
		Type:   FrameSnapshot,
		Bucket: f.Bucket.String(),
		Notes:  NewNoteResponses(notes),
	}
}

func NewChangeFrame(kind board.ChangeKind, p board.Projection) BoardFrame {
	return BoardFrame{
		Type:       FrameChange,
		Kind:       string(kind),
		Upserts:    NewNoteResponses(p.Upserts),
		RemovedIds: p.Removals,
	}
}
