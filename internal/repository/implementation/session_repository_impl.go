package implementation

import (
	"context"
	"errors"
	"time"

	"afom-board-be/internal/entity"
	"afom-board-be/internal/mapper"
	"afom-board-be/internal/model"
	"afom-board-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMapper
}

func NewSessionRepository(db *gorm.DB) contract.SessionRepository {
	return &SessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionMapper(),
	}
}

func (r *SessionRepositoryImpl) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	var m model.Session
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SessionRepositoryImpl) Upsert(ctx context.Context, session *entity.Session) error {
	m := r.mapper.ToModel(session)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"project_name", "theme_name", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

// TouchActivity creates the session row on first activity, so boards opened
// by token alone still get tracked.
func (r *SessionRepositoryImpl) TouchActivity(ctx context.Context, token string, at time.Time) error {
	m := &model.Session{Token: token, LastActivityAt: &at}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_activity_at", "updated_at"}),
	}).Create(m).Error
}
