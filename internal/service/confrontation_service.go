package service

import (
	"context"
	"fmt"

	"afom-board-be/internal/confrontation"
	"afom-board-be/internal/dto"
	"afom-board-be/internal/entity"
	"afom-board-be/internal/repository/contract"
	"afom-board-be/internal/repository/specification"
	"afom-board-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IConfrontationService interface {
	Get(ctx context.Context, sessionId string) (*dto.ConfrontationResponse, error)
	Save(ctx context.Context, sessionId string, req *dto.SaveConfrontationRequest) (*dto.ConfrontationResponse, error)
	AutoFill(ctx context.Context, sessionId string, req *dto.AutoFillRequest) (*dto.ConfrontationResponse, error)
}

type confrontationService struct {
	uowFactory unitofwork.RepositoryFactory
	matcher    confrontation.Matcher
}

func NewConfrontationService(uowFactory unitofwork.RepositoryFactory, matcher confrontation.Matcher) IConfrontationService {
	if matcher == nil {
		matcher = confrontation.NoMatch
	}
	return &confrontationService{
		uowFactory: uowFactory,
		matcher:    matcher,
	}
}

func (s *confrontationService) Get(ctx context.Context, sessionId string) (*dto.ConfrontationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	saved, err := uow.ConfrontationRepository().FindBySession(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		saved = &entity.Confrontation{SessionId: sessionId}
	}
	return toConfrontationResponse(saved), nil
}

func (s *confrontationService) Save(ctx context.Context, sessionId string, req *dto.SaveConfrontationRequest) (*dto.ConfrontationResponse, error) {
	checks, err := confrontation.Validate(req.Shortlist, req.Checks)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	shortlist, err := resolveShortlist(ctx, uow.NoteRepository(), sessionId, req.Shortlist)
	if err != nil {
		return nil, err
	}

	c := &entity.Confrontation{
		SessionId: sessionId,
		Shortlist: shortlist,
		Checks:    checks,
	}
	if err := uow.ConfrontationRepository().Upsert(ctx, c); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return toConfrontationResponse(c), nil
}

// AutoFill proposes checks for the submitted shortlist. Nothing is stored.
func (s *confrontationService) AutoFill(ctx context.Context, sessionId string, req *dto.AutoFillRequest) (*dto.ConfrontationResponse, error) {
	if _, err := confrontation.Validate(req.Shortlist, nil); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	shortlist, err := resolveShortlist(ctx, uow.NoteRepository(), sessionId, req.Shortlist)
	if err != nil {
		return nil, err
	}

	return toConfrontationResponse(&entity.Confrontation{
		SessionId: sessionId,
		Shortlist: shortlist,
		Checks:    confrontation.AutoFill(shortlist, s.matcher),
	}), nil
}

// resolveShortlist checks every shortlisted note is an active note of the
// session, still in the quadrant it is listed under, and refreshes its text
// from the board.
func resolveShortlist(ctx context.Context, repo contract.NoteRepository, sessionId string, sl entity.Shortlist) (entity.Shortlist, error) {
	ids := confrontation.NoteIds(sl)
	if len(ids) == 0 {
		return sl, nil
	}

	notes, err := repo.FindAll(ctx,
		specification.BySession{SessionID: sessionId},
		specification.ByIDs{IDs: ids},
	)
	if err != nil {
		return sl, err
	}
	byId := make(map[uuid.UUID]*entity.Note, len(notes))
	for _, n := range notes {
		byId[n.Id] = n
	}

	refresh := func(bucket entity.Bucket, items []entity.ShortlistItem) ([]entity.ShortlistItem, error) {
		out := make([]entity.ShortlistItem, 0, len(items))
		for _, it := range items {
			n, ok := byId[it.NoteId]
			if !ok {
				return nil, ErrUnknownShortlistNote
			}
			if n.IsArchived() {
				return nil, ErrArchivedShortlist
			}
			if n.Bucket != bucket {
				return nil, fmt.Errorf("%w (%s is in %s)", ErrShortlistBucketMismatch, bucket, n.Bucket)
			}
			out = append(out, entity.ShortlistItem{NoteId: n.Id, Content: n.Content})
		}
		return out, nil
	}

	var out entity.Shortlist
	if out.Acquis, err = refresh(entity.BucketAcquis, sl.Acquis); err != nil {
		return sl, err
	}
	if out.Faiblesses, err = refresh(entity.BucketFaiblesses, sl.Faiblesses); err != nil {
		return sl, err
	}
	if out.Opportunites, err = refresh(entity.BucketOpportunites, sl.Opportunites); err != nil {
		return sl, err
	}
	if out.Menaces, err = refresh(entity.BucketMenaces, sl.Menaces); err != nil {
		return sl, err
	}
	return out, nil
}

func toConfrontationResponse(c *entity.Confrontation) *dto.ConfrontationResponse {
	scores := confrontation.Score(c.Shortlist, c.Checks)

	checks := c.Checks
	if checks == nil {
		checks = []entity.Cell{}
	}

	res := &dto.ConfrontationResponse{
		SessionId: c.SessionId,
		Shortlist: c.Shortlist,
		Checks:    checks,
		Rows:      make([]dto.AxisResponse, 0),
		Columns:   make([]dto.AxisResponse, 0),
		UpdatedAt: c.UpdatedAt,
	}
	for _, a := range confrontation.Rows(c.Shortlist) {
		res.Rows = append(res.Rows, dto.AxisResponse{
			NoteId:  a.Item.NoteId,
			Bucket:  a.Bucket.String(),
			Content: a.Item.Content,
			Score:   scores.Rows[a.Item.NoteId],
		})
	}
	for _, a := range confrontation.Columns(c.Shortlist) {
		res.Columns = append(res.Columns, dto.AxisResponse{
			NoteId:  a.Item.NoteId,
			Bucket:  a.Bucket.String(),
			Content: a.Item.Content,
			Score:   scores.Columns[a.Item.NoteId],
		})
	}
	return res
}
