package implementation

import (
	"context"
	"errors"

	"afom-board-be/internal/entity"
	"afom-board-be/internal/mapper"
	"afom-board-be/internal/model"
	"afom-board-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConfrontationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConfrontationMapper
}

func NewConfrontationRepository(db *gorm.DB) contract.ConfrontationRepository {
	return &ConfrontationRepositoryImpl{
		db:     db,
		mapper: mapper.NewConfrontationMapper(),
	}
}

func (r *ConfrontationRepositoryImpl) FindBySession(ctx context.Context, sessionId string) (*entity.Confrontation, error) {
	var m model.Confrontation
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *ConfrontationRepositoryImpl) Upsert(ctx context.Context, confrontation *entity.Confrontation) error {
	m, err := r.mapper.ToModel(confrontation)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"shortlist", "checks", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	saved, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*confrontation = *saved
	return nil
}
