package service

import (
	"context"
	"encoding/json"
	"time"

	"afom-board-be/internal/board"
	"afom-board-be/internal/dto"
	"afom-board-be/internal/entity"
	"afom-board-be/internal/pkg/logger"
	"afom-board-be/internal/repository/contract"
	"afom-board-be/internal/repository/specification"
	"afom-board-be/internal/repository/unitofwork"
	"afom-board-be/pkg/events"

	"github.com/google/uuid"
)

const boardModule = "BoardService"

type IBoardService interface {
	Submit(ctx context.Context, sessionId string, req *dto.SubmitNoteRequest) (*dto.NoteResponse, error)
	List(ctx context.Context, sessionId string, bucket string) ([]dto.NoteResponse, error)
	Snapshot(ctx context.Context, sessionId string, filter board.Filter) ([]*entity.Note, error)
	Counts(ctx context.Context, sessionId string) (*dto.BucketCountsResponse, error)
	MoveTo(ctx context.Context, sessionId string, noteId uuid.UUID, req *dto.MoveNoteRequest) (*dto.MoveNoteResponse, error)
	MoveRelative(ctx context.Context, sessionId string, noteId uuid.UUID, req *dto.NudgeNoteRequest) (*dto.MoveNoteResponse, error)
	Archive(ctx context.Context, sessionId string, noteId uuid.UUID) (*dto.NoteResponse, error)
	Restore(ctx context.Context, sessionId string, noteId uuid.UUID, req *dto.RestoreNoteRequest) (*dto.NoteResponse, error)
	Edit(ctx context.Context, sessionId string, noteId uuid.UUID, req *dto.EditNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, sessionId string, noteId uuid.UUID, confirmed bool) error
}

type BoardServiceConfig struct {
	// NudgeColumns is the grid width used when a nudge does not say.
	NudgeColumns int
	Now          func() time.Time
}

type boardService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   events.Publisher
	logger           logger.ILogger
	seq              *board.Sequencer
	now              func() time.Time
	nudgeColumns     int
}

func NewBoardService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
	log logger.ILogger,
	cfg BoardServiceConfig,
) IBoardService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	columns := cfg.NudgeColumns
	if columns < 1 {
		columns = 2
	}
	return &boardService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
		seq:              board.NewSequencer(now),
		now:              now,
		nudgeColumns:     columns,
	}
}

func (s *boardService) Submit(ctx context.Context, sessionId string, req *dto.SubmitNoteRequest) (*dto.NoteResponse, error) {
	bucket, err := board.ParseContentBucket(req.Bucket)
	if err != nil {
		return nil, err
	}
	content, err := board.NormalizeContent(req.Content)
	if err != nil {
		return nil, err
	}
	author := board.NormalizeAuthor(req.Author, req.Anonymous)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	repo := uow.NoteRepository()
	existing, err := repo.FindAll(ctx,
		specification.BySession{SessionID: sessionId},
		specification.ByBucket{Bucket: bucket},
	)
	if err != nil {
		return nil, err
	}

	note := &entity.Note{
		Id:           uuid.New(),
		SessionId:    sessionId,
		Bucket:       bucket,
		OriginBucket: bucket,
		Content:      content,
		Author:       author,
		SortIndex:    board.AppendIndex(s.seq, existing),
		CreatedAt:    s.now(),
	}
	if err := repo.Create(ctx, note); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publish(ctx, board.Change{SessionId: sessionId, Kind: board.ChangeSubmitted, Notes: []*entity.Note{note}})
	s.emit(ctx, events.NoteSubmitted, note)

	res := dto.NewNoteResponse(note)
	return &res, nil
}

func (s *boardService) List(ctx context.Context, sessionId string, bucket string) ([]dto.NoteResponse, error) {
	var filter board.Filter
	if bucket != "" {
		b, err := board.ParseBucket(bucket)
		if err != nil {
			return nil, err
		}
		filter.Bucket = b
	}

	notes, err := s.Snapshot(ctx, sessionId, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewNoteResponses(notes), nil
}

// Snapshot reads the ordered board for a filter. Legacy notes without an
// origin bucket are healed on the way out.
func (s *boardService) Snapshot(ctx context.Context, sessionId string, filter board.Filter) ([]*entity.Note, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.NoteRepository()

	specs := []specification.Specification{specification.BySession{SessionID: sessionId}}
	if filter.Bucket != "" {
		specs = append(specs, specification.ByBucket{Bucket: filter.Bucket})
	}
	specs = append(specs, specification.OrderBySortIndex{})

	notes, err := repo.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	board.SortBoard(notes)

	s.healOrigins(ctx, repo, sessionId, notes)
	return notes, nil
}

// healOrigins fills origin_bucket on the session's legacy rows and patches
// the notes already read for the snapshot.
func (s *boardService) healOrigins(ctx context.Context, repo contract.NoteRepository, sessionId string, notes []*entity.Note) {
	legacy, err := repo.FindAll(ctx, specification.BySession{SessionID: sessionId}, specification.MissingOrigin{})
	if err != nil {
		s.logger.Warn(boardModule, "Failed to read notes missing an origin bucket", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return
	}
	if len(legacy) == 0 {
		return
	}

	read := make(map[uuid.UUID]*entity.Note, len(notes))
	for _, n := range notes {
		read[n.Id] = n
	}

	var healed []*entity.Note
	for _, n := range legacy {
		if !board.HealOrigin(n) {
			continue
		}
		changed, err := repo.HealOrigin(ctx, n.Id, n.OriginBucket)
		if err != nil {
			s.logger.Warn(boardModule, "Failed to heal origin bucket", map[string]interface{}{
				"note_id": n.Id.String(),
				"error":   err.Error(),
			})
			continue
		}
		// another reader may have healed it first; the value is the same
		if r, ok := read[n.Id]; ok {
			r.OriginBucket = n.OriginBucket
		}
		if changed {
			healed = append(healed, n)
		}
	}

	if len(healed) > 0 {
		s.publish(ctx, board.Change{SessionId: sessionId, Kind: board.ChangeHealed, Notes: healed})
	}
}

func (s *boardService) Counts(ctx context.Context, sessionId string) (*dto.BucketCountsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	counts, err := uow.NoteRepository().CountByBucket(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	res := buildCounts(sessionId, counts)
	return &res, nil
}

func buildCounts(sessionId string, counts map[entity.Bucket]int64) dto.BucketCountsResponse {
	res := dto.BucketCountsResponse{
		SessionId: sessionId,
		Counts:    make(map[string]int64, len(entity.ContentBuckets)+1),
	}
	for _, b := range entity.ContentBuckets {
		res.Counts[b.String()] = counts[b]
		res.Active += counts[b]
	}
	res.Archived = counts[entity.BucketArchive]
	res.Counts[entity.BucketArchive.String()] = res.Archived
	return res
}

// moveTarget resolves where a note goes given its ordered current bucket.
type moveTarget func(note *entity.Note, current []*entity.Note) (entity.Bucket, int)

func (s *boardService) MoveTo(ctx context.Context, sessionId string, noteId uuid.UUID, req *dto.MoveNoteRequest) (*dto.MoveNoteResponse, error) {
	target, err := board.ParseBucket(req.Bucket)
	if err != nil {
		return nil, err
	}
	return s.move(ctx, sessionId, noteId, func(*entity.Note, []*entity.Note) (entity.Bucket, int) {
		return target, req.Index
	})
}

func (s *boardService) MoveRelative(ctx context.Context, sessionId string, noteId uuid.UUID, req *dto.NudgeNoteRequest) (*dto.MoveNoteResponse, error) {
	columns := req.Columns
	if columns < 1 {
		columns = s.nudgeColumns
	}
	return s.move(ctx, sessionId, noteId, func(note *entity.Note, current []*entity.Note) (entity.Bucket, int) {
		from := board.IndexOf(current, note.Id)
		return note.Bucket, board.RelativeTarget(from, req.Step, req.Row, columns)
	})
}

func (s *boardService) move(ctx context.Context, sessionId string, noteId uuid.UUID, resolve moveTarget) (*dto.MoveNoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	repo := uow.NoteRepository()
	note, err := findNote(ctx, repo, sessionId, noteId)
	if err != nil {
		return nil, err
	}

	source, err := s.bucketNotes(ctx, repo, sessionId, note.Bucket)
	if err != nil {
		return nil, err
	}
	target, index := resolve(note, board.Sorted(source))

	// dropping an active note on the bin is an archive gesture
	if target == entity.BucketArchive && !note.IsArchived() {
		from := note.Bucket
		archived, err := s.archiveInTx(ctx, repo, note)
		if err != nil {
			return nil, err
		}
		if err := uow.Commit(); err != nil {
			return nil, err
		}
		s.publish(ctx, board.Change{SessionId: sessionId, Kind: board.ChangeArchived, Notes: []*entity.Note{archived}, From: board.Departed(archived.Id, from)})
		s.emit(ctx, events.NoteArchived, archived)
		res := dto.NewNoteResponse(archived)
		return &dto.MoveNoteResponse{Note: res, Changed: []dto.NoteResponse{res}}, nil
	}

	var destination []*entity.Note
	if target != note.Bucket && target.IsValid() {
		destination, err = s.bucketNotes(ctx, repo, sessionId, target)
		if err != nil {
			return nil, err
		}
	}

	plan, err := board.PlanMove(source, destination, noteId, target, index)
	if err != nil {
		return nil, err
	}
	if plan.NoOp {
		return &dto.MoveNoteResponse{Note: dto.NewNoteResponse(plan.Moved), NoOp: true}, nil
	}

	if err := repo.UpdatePositions(ctx, plan.Changes); err != nil {
		return nil, err
	}

	// leaving the bin by drag behaves like a restore at the drop position
	if plan.SourceBucket == entity.BucketArchive && plan.Moved.Bucket.IsContent() {
		if err := board.Restore(note, plan.Moved.Bucket, plan.Moved.SortIndex); err != nil {
			return nil, err
		}
		if err := repo.Update(ctx, note); err != nil {
			return nil, err
		}
		*plan.Moved = *note
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	change := board.Change{SessionId: sessionId, Kind: board.ChangeMoved, Notes: plan.Changes}
	if plan.CrossBucket() {
		change.From = board.Departed(plan.Moved.Id, plan.SourceBucket)
	}
	s.publish(ctx, change)
	s.emit(ctx, events.NoteMoved, plan.Moved)

	return &dto.MoveNoteResponse{
		Note:    dto.NewNoteResponse(plan.Moved),
		Changed: dto.NewNoteResponses(plan.Changes),
	}, nil
}

func (s *boardService) Archive(ctx context.Context, sessionId string, noteId uuid.UUID) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	repo := uow.NoteRepository()
	note, err := findNote(ctx, repo, sessionId, noteId)
	if err != nil {
		return nil, err
	}
	if note.IsArchived() {
		res := dto.NewNoteResponse(note)
		return &res, nil
	}

	from := note.Bucket
	archived, err := s.archiveInTx(ctx, repo, note)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publish(ctx, board.Change{SessionId: sessionId, Kind: board.ChangeArchived, Notes: []*entity.Note{archived}, From: board.Departed(archived.Id, from)})
	s.emit(ctx, events.NoteArchived, archived)

	res := dto.NewNoteResponse(archived)
	return &res, nil
}

// archiveInTx appends the note to the end of the bin. The source bucket keeps
// its gap; indices only need to be ordered, not dense.
func (s *boardService) archiveInTx(ctx context.Context, repo contract.NoteRepository, note *entity.Note) (*entity.Note, error) {
	bin, err := s.bucketNotes(ctx, repo, note.SessionId, entity.BucketArchive)
	if err != nil {
		return nil, err
	}
	board.HealOrigin(note)
	if !board.Archive(note, board.AppendIndex(s.seq, bin), s.now()) {
		return note, nil
	}
	if err := repo.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *boardService) Restore(ctx context.Context, sessionId string, noteId uuid.UUID, req *dto.RestoreNoteRequest) (*dto.NoteResponse, error) {
	var target *entity.Bucket
	if req != nil && req.Bucket != "" {
		b, err := board.ParseContentBucket(req.Bucket)
		if err != nil {
			return nil, err
		}
		target = &b
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	repo := uow.NoteRepository()
	note, err := findNote(ctx, repo, sessionId, noteId)
	if err != nil {
		return nil, err
	}
	if !note.IsArchived() {
		return nil, board.ErrNoteNotArchived
	}

	bucket, err := board.ResolveRestoreBucket(note, target)
	if err != nil {
		return nil, err
	}
	existing, err := s.bucketNotes(ctx, repo, sessionId, bucket)
	if err != nil {
		return nil, err
	}
	if err := board.Restore(note, bucket, board.AppendIndex(s.seq, existing)); err != nil {
		return nil, err
	}
	if err := repo.Update(ctx, note); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publish(ctx, board.Change{SessionId: sessionId, Kind: board.ChangeRestored, Notes: []*entity.Note{note}, From: board.Departed(note.Id, entity.BucketArchive)})
	s.emit(ctx, events.NoteRestored, note)

	res := dto.NewNoteResponse(note)
	return &res, nil
}

func (s *boardService) Edit(ctx context.Context, sessionId string, noteId uuid.UUID, req *dto.EditNoteRequest) (*dto.NoteResponse, error) {
	content, err := board.NormalizeContent(req.Content)
	if err != nil {
		return nil, err
	}
	author := board.NormalizeAuthor(req.Author, req.Anonymous)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	repo := uow.NoteRepository()
	note, err := findNote(ctx, repo, sessionId, noteId)
	if err != nil {
		return nil, err
	}

	note.Content = content
	note.Author = author
	if err := repo.Update(ctx, note); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publish(ctx, board.Change{SessionId: sessionId, Kind: board.ChangeEdited, Notes: []*entity.Note{note}})
	s.emit(ctx, events.NoteEdited, note)

	res := dto.NewNoteResponse(note)
	return &res, nil
}

func (s *boardService) Delete(ctx context.Context, sessionId string, noteId uuid.UUID, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	repo := uow.NoteRepository()
	note, err := findNote(ctx, repo, sessionId, noteId)
	if err != nil {
		return err
	}
	if err := repo.Delete(ctx, note.Id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.publish(ctx, board.Change{SessionId: sessionId, Kind: board.ChangeDeleted, RemovedIds: []uuid.UUID{note.Id}, From: board.Departed(note.Id, note.Bucket)})
	s.emit(ctx, events.NoteDeleted, note)
	return nil
}

func findNote(ctx context.Context, repo contract.NoteRepository, sessionId string, noteId uuid.UUID) (*entity.Note, error) {
	note, err := repo.FindOne(ctx,
		specification.ByID{ID: noteId},
		specification.BySession{SessionID: sessionId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

func (s *boardService) bucketNotes(ctx context.Context, repo contract.NoteRepository, sessionId string, bucket entity.Bucket) ([]*entity.Note, error) {
	return repo.FindAll(ctx,
		specification.BySession{SessionID: sessionId},
		specification.ByBucket{Bucket: bucket},
		specification.OrderBySortIndex{},
	)
}

// publish runs after commit. A failed publish leaves live viewers stale until
// their next snapshot but never undoes the gesture.
func (s *boardService) publish(ctx context.Context, change board.Change) {
	payload, err := json.Marshal(dto.NewBoardChangeMessage(change))
	if err != nil {
		s.logger.Error(boardModule, "Failed to marshal board change", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Error(boardModule, "Failed to publish board change", map[string]interface{}{
			"session_id": change.SessionId,
			"kind":       string(change.Kind),
			"error":      err.Error(),
		})
	}
}

func (s *boardService) emit(ctx context.Context, eventType string, note *entity.Note) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.NewWorkshopEvent(eventType, note.SessionId, note.Id.String(), note.Bucket.String(), s.now())
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn(boardModule, "Failed to publish domain event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}
