package service

import (
	"context"
	"net/url"
	"strings"

	"afom-board-be/internal/board"
	"afom-board-be/internal/dto"
	"afom-board-be/internal/entity"
	"afom-board-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	sessionTokenLength = 8
	participantMode    = "participant"
)

type ISessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	Show(ctx context.Context, token string) (*dto.SessionResponse, error)
	Update(ctx context.Context, token string, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error)
	Links(token string) dto.SessionLinksResponse
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
	clientURL  string
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory, clientURL string) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
		clientURL:  strings.TrimRight(clientURL, "/"),
	}
}

// NewSessionToken returns a short, typeable token.
func NewSessionToken() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:sessionTokenLength])
}

func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	session := &entity.Session{
		Token:       NewSessionToken(),
		ProjectName: strings.TrimSpace(req.ProjectName),
		ThemeName:   strings.TrimSpace(req.ThemeName),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SessionRepository().Upsert(ctx, session); err != nil {
		return nil, err
	}

	return s.response(session, buildCounts(session.Token, nil)), nil
}

// Show never fails for an unknown token: sessions exist as soon as someone
// holds the token.
func (s *sessionService) Show(ctx context.Context, token string) (*dto.SessionResponse, error) {
	token, err := board.NormalizeSessionToken(token)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.SessionRepository().FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session = &entity.Session{Token: token}
	}

	counts, err := uow.NoteRepository().CountByBucket(ctx, token)
	if err != nil {
		return nil, err
	}

	return s.response(session, buildCounts(token, counts)), nil
}

func (s *sessionService) Update(ctx context.Context, token string, req *dto.UpdateSessionRequest) (*dto.SessionResponse, error) {
	token, err := board.NormalizeSessionToken(token)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	repo := uow.SessionRepository()
	session, err := repo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session = &entity.Session{Token: token}
	}
	session.ProjectName = strings.TrimSpace(req.ProjectName)
	session.ThemeName = strings.TrimSpace(req.ThemeName)

	if err := repo.Upsert(ctx, session); err != nil {
		return nil, err
	}

	counts, err := uow.NoteRepository().CountByBucket(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return s.response(session, buildCounts(token, counts)), nil
}

func (s *sessionService) Links(token string) dto.SessionLinksResponse {
	facilitator := s.clientURL + "/?session=" + url.QueryEscape(token)
	return dto.SessionLinksResponse{
		Token:       token,
		Participant: facilitator + "&mode=" + participantMode,
		Facilitator: facilitator,
	}
}

func (s *sessionService) response(session *entity.Session, counts dto.BucketCountsResponse) *dto.SessionResponse {
	return &dto.SessionResponse{
		Token:          session.Token,
		ProjectName:    session.ProjectName,
		ThemeName:      session.ThemeName,
		LastActivityAt: session.LastActivityAt,
		Counts:         counts,
		Links:          s.Links(session.Token),
	}
}
