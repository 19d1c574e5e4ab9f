package implementation

import (
	"context"
	"errors"

	"afom-board-be/internal/entity"
	"afom-board-be/internal/mapper"
	"afom-board-be/internal/model"
	"afom-board-be/internal/repository/contract"
	"afom-board-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteMapper
}

func NewNoteRepository(db *gorm.DB) contract.NoteRepository {
	return &NoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteMapper(),
	}
}

func (r *NoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entity.Note) error {
	if note.Id == uuid.Nil {
		note.Id = uuid.New()
	}
	m := r.mapper.ToModel(note)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*note = *r.mapper.ToEntity(m)
	return nil
}

func (r *NoteRepositoryImpl) Update(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*note = *r.mapper.ToEntity(m)
	return nil
}

func (r *NoteRepositoryImpl) UpdatePositions(ctx context.Context, notes []*entity.Note) error {
	db := r.db.WithContext(ctx)
	for _, n := range notes {
		err := db.Model(&model.Note{}).
			Where("id = ?", n.Id).
			Updates(map[string]interface{}{
				"bucket":     n.Bucket.String(),
				"sort_index": n.SortIndex,
			}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *NoteRepositoryImpl) HealOrigin(ctx context.Context, id uuid.UUID, origin entity.Bucket) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ? AND origin_bucket = ?", id, "").
		Update("origin_bucket", origin.String())
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Note{}, "id = ?", id).Error
}

func (r *NoteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	var m model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var models []*model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

type bucketCount struct {
	Bucket string
	Total  int64
}

func (r *NoteRepositoryImpl) CountByBucket(ctx context.Context, sessionId string) (map[entity.Bucket]int64, error) {
	var rows []bucketCount
	err := r.db.WithContext(ctx).
		Model(&model.Note{}).
		Select("bucket, COUNT(*) AS total").
		Where("session_id = ?", sessionId).
		Group("bucket").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entity.Bucket]int64, len(rows))
	for _, row := range rows {
		counts[entity.Bucket(row.Bucket)] = row.Total
	}
	return counts, nil
}
