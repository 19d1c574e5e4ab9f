package mapper

import (
	"time"

	"afom-board-be/internal/entity"
	"afom-board-be/internal/model"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	var updatedAt *time.Time
	if !n.UpdatedAt.IsZero() {
		t := n.UpdatedAt
		updatedAt = &t
	}

	var lastSortIndex *int64
	if n.LastSortIndex != nil {
		v := *n.LastSortIndex
		lastSortIndex = &v
	}

	var deletedAt *time.Time
	if n.DeletedAt != nil {
		t := *n.DeletedAt
		deletedAt = &t
	}

	return &entity.Note{
		Id:            n.Id,
		SessionId:     n.SessionId,
		Bucket:        entity.Bucket(n.Bucket),
		OriginBucket:  entity.Bucket(n.OriginBucket),
		Content:       n.Content,
		Author:        n.Author,
		SortIndex:     n.SortIndex,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     updatedAt,
		DeletedAt:     deletedAt,
		LastBucket:    entity.Bucket(n.LastBucket),
		LastSortIndex: lastSortIndex,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	var updatedAt time.Time
	if n.UpdatedAt != nil {
		updatedAt = *n.UpdatedAt
	}

	return &model.Note{
		Id:            n.Id,
		SessionId:     n.SessionId,
		Bucket:        n.Bucket.String(),
		OriginBucket:  n.OriginBucket.String(),
		Content:       n.Content,
		Author:        n.Author,
		SortIndex:     n.SortIndex,
		LastBucket:    n.LastBucket.String(),
		LastSortIndex: n.LastSortIndex,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     updatedAt,
		DeletedAt:     n.DeletedAt,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

func (m *NoteMapper) ToModels(notes []*entity.Note) []*model.Note {
	models := make([]*model.Note, len(notes))
	for i, n := range notes {
		models[i] = m.ToModel(n)
	}
	return models
}
