package mapper

import (
	"encoding/json"
	"time"

	"afom-board-be/internal/entity"
	"afom-board-be/internal/model"

	"gorm.io/datatypes"
)

type ConfrontationMapper struct{}

func NewConfrontationMapper() *ConfrontationMapper {
	return &ConfrontationMapper{}
}

func (m *ConfrontationMapper) ToEntity(c *model.Confrontation) (*entity.Confrontation, error) {
	if c == nil {
		return nil, nil
	}

	var shortlist entity.Shortlist
	if len(c.Shortlist) > 0 {
		if err := json.Unmarshal(c.Shortlist, &shortlist); err != nil {
			return nil, err
		}
	}

	var checks []entity.Cell
	if len(c.Checks) > 0 {
		if err := json.Unmarshal(c.Checks, &checks); err != nil {
			return nil, err
		}
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Confrontation{
		SessionId: c.SessionId,
		Shortlist: shortlist,
		Checks:    checks,
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
	}, nil
}

func (m *ConfrontationMapper) ToModel(c *entity.Confrontation) (*model.Confrontation, error) {
	if c == nil {
		return nil, nil
	}

	shortlist, err := json.Marshal(c.Shortlist)
	if err != nil {
		return nil, err
	}

	checks := c.Checks
	if checks == nil {
		checks = []entity.Cell{}
	}
	checksJSON, err := json.Marshal(checks)
	if err != nil {
		return nil, err
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Confrontation{
		SessionId: c.SessionId,
		Shortlist: datatypes.JSON(shortlist),
		Checks:    datatypes.JSON(checksJSON),
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
	}, nil
}
