package events

import "time"

const WorkshopPrefix = "workshop."

const (
	NoteSubmitted = WorkshopPrefix + "NOTE_SUBMITTED"
	NoteMoved     = WorkshopPrefix + "NOTE_MOVED"
	NoteArchived  = WorkshopPrefix + "NOTE_ARCHIVED"
	NoteRestored  = WorkshopPrefix + "NOTE_RESTORED"
	NoteEdited    = WorkshopPrefix + "NOTE_EDITED"
	NoteDeleted   = WorkshopPrefix + "NOTE_DELETED"
)

const (
	KeySessionID  = "session_id"
	KeyNoteID     = "note_id"
	KeyBucket     = "bucket"
	KeyOccurredAt = "occurred_at"
)

// NewWorkshopEvent builds a board gesture event. occurred_at is carried in
// the payload so subscribers can recover it.
func NewWorkshopEvent(eventType, sessionID, noteID, bucket string, at time.Time) BaseEvent {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			KeySessionID:  sessionID,
			KeyNoteID:     noteID,
			KeyBucket:     bucket,
			KeyOccurredAt: at.UTC().Format(time.RFC3339Nano),
		},
		OccurredAt: at,
	}
}
