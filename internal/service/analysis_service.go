package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"afom-board-be/internal/board"
	"afom-board-be/internal/constant"
	"afom-board-be/internal/dto"
	"afom-board-be/internal/entity"
	"afom-board-be/internal/pkg/logger"
	"afom-board-be/internal/repository/memory"
	"afom-board-be/internal/repository/specification"
	"afom-board-be/internal/repository/unitofwork"
	"afom-board-be/pkg/llm"
)

const (
	analysisModule = "AnalysisService"

	// MaxAnalysisItems caps insights and recommendations.
	MaxAnalysisItems = 3
)

var errEmptyAnalysis = errors.New("model answer has no usable content")

type IAnalysisService interface {
	Summarize(ctx context.Context, sessionId string) (*dto.AnalysisSummaryResponse, error)
	CentralProblem(ctx context.Context, sessionId string) (*dto.CentralProblemResponse, error)
}

type analysisService struct {
	uowFactory unitofwork.RepositoryFactory
	provider   llm.LLMProvider
	cache      *memory.AnalysisRepository
	logger     logger.ILogger
	minNotes   int
	now        func() time.Time
}

func NewAnalysisService(
	uowFactory unitofwork.RepositoryFactory,
	provider llm.LLMProvider,
	cache *memory.AnalysisRepository,
	log logger.ILogger,
	minNotes int,
) IAnalysisService {
	if minNotes < 1 {
		minNotes = 5
	}
	return &analysisService{
		uowFactory: uowFactory,
		provider:   provider,
		cache:      cache,
		logger:     log,
		minNotes:   minNotes,
		now:        time.Now,
	}
}

type analysisInput struct {
	session *entity.Session
	notes   []*entity.Note
}

// load reads the session meta and its active notes in board order.
func (s *analysisService) load(ctx context.Context, sessionId string) (*analysisInput, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.BySession{SessionID: sessionId},
		specification.ExcludeBucket{Bucket: entity.BucketArchive},
		specification.OrderBySortIndex{},
	)
	if err != nil {
		return nil, err
	}
	if len(notes) < s.minNotes {
		return nil, fmt.Errorf("%w: %d active notes, at least %d required", ErrNotEnoughNotes, len(notes), s.minNotes)
	}
	board.SortBoard(notes)

	session, err := uow.SessionRepository().FindByToken(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session = &entity.Session{Token: sessionId}
	}

	return &analysisInput{session: session, notes: notes}, nil
}

func formatNotes(notes []*entity.Note) string {
	lines := make([]string, 0, len(notes))
	for _, n := range notes {
		lines = append(lines, fmt.Sprintf(constant.AnalysisNoteLineFormat, n.Bucket, n.Author, n.Content))
	}
	return strings.Join(lines, "\n")
}

func (s *analysisService) ask(ctx context.Context, prompt string) (string, error) {
	return s.provider.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: constant.AnalysisSystemPromptV1},
		{Role: llm.RoleUser, Content: prompt},
	}, llm.WithJSON(), llm.WithTemperature(0.4))
}

func (s *analysisService) Summarize(ctx context.Context, sessionId string) (*dto.AnalysisSummaryResponse, error) {
	in, err := s.load(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(constant.AnalysisSummaryPromptV1, in.session.ProjectName, in.session.ThemeName, formatNotes(in.notes))
	summary := &entity.AnalysisSummary{SessionId: sessionId, GeneratedAt: s.now()}

	raw, err := s.ask(ctx, prompt)
	if err == nil {
		summary.Insights, summary.Recommendations, err = ParseSummary(raw)
	}
	if err != nil {
		s.logger.Error(analysisModule, "Summary generation failed, degrading", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		summary.Insights = []entity.Insight{{
			Title:   constant.AnalysisErrorTitle,
			Content: err.Error(),
		}}
		summary.Recommendations = []entity.Recommendation{}
		summary.Degraded = true
	}

	s.cache.SaveSummary(summary)
	return toSummaryResponse(summary), nil
}

func (s *analysisService) CentralProblem(ctx context.Context, sessionId string) (*dto.CentralProblemResponse, error) {
	in, err := s.load(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(constant.CentralProblemPromptV1, in.session.ProjectName, in.session.ThemeName, formatNotes(in.notes))
	problem := &entity.CentralProblem{SessionId: sessionId, GeneratedAt: s.now()}

	raw, err := s.ask(ctx, prompt)
	if err == nil {
		problem.Problem, problem.Rationale, err = ParseCentralProblem(raw)
	}
	if err != nil {
		s.logger.Error(analysisModule, "Central problem generation failed, degrading", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		problem.Problem = ""
		problem.Rationale = err.Error()
		problem.Degraded = true
	}

	s.cache.SaveCentralProblem(problem)
	return toCentralProblemResponse(problem), nil
}

type summaryPayload struct {
	Insights []struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	} `json:"insights"`
	Recommendations []struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Priority string `json:"priority"`
	} `json:"recommendations"`
}

// ParseSummary decodes a model answer into at most three insights and three
// recommendations. An answer without a single insight is a schema mismatch.
func ParseSummary(raw string) ([]entity.Insight, []entity.Recommendation, error) {
	var payload summaryPayload
	if err := json.Unmarshal([]byte(llm.StripCodeFence(raw)), &payload); err != nil {
		return nil, nil, fmt.Errorf("invalid analysis JSON: %w", err)
	}

	insights := make([]entity.Insight, 0, MaxAnalysisItems)
	for _, it := range payload.Insights {
		if len(insights) == MaxAnalysisItems {
			break
		}
		title, content := strings.TrimSpace(it.Title), strings.TrimSpace(it.Content)
		if title == "" && content == "" {
			continue
		}
		insights = append(insights, entity.Insight{Title: title, Content: content})
	}
	if len(insights) == 0 {
		return nil, nil, errEmptyAnalysis
	}

	recs := make([]entity.Recommendation, 0, MaxAnalysisItems)
	for _, r := range payload.Recommendations {
		if len(recs) == MaxAnalysisItems {
			break
		}
		title, content := strings.TrimSpace(r.Title), strings.TrimSpace(r.Content)
		if title == "" && content == "" {
			continue
		}
		recs = append(recs, entity.Recommendation{
			Title:    title,
			Content:  content,
			Priority: NormalizePriority(r.Priority),
		})
	}

	return insights, recs, nil
}

// ParseCentralProblem accepts "problem" or "text" for the statement.
func ParseCentralProblem(raw string) (string, string, error) {
	var payload struct {
		Problem   string `json:"problem"`
		Text      string `json:"text"`
		Rationale string `json:"rationale"`
	}
	if err := json.Unmarshal([]byte(llm.StripCodeFence(raw)), &payload); err != nil {
		return "", "", fmt.Errorf("invalid analysis JSON: %w", err)
	}

	problem := strings.TrimSpace(payload.Problem)
	if problem == "" {
		problem = strings.TrimSpace(payload.Text)
	}
	if problem == "" {
		return "", "", errEmptyAnalysis
	}
	return problem, strings.TrimSpace(payload.Rationale), nil
}

func NormalizePriority(raw string) entity.Priority {
	switch p := entity.Priority(strings.ToUpper(strings.TrimSpace(raw))); p {
	case entity.PriorityUrgent, entity.PriorityHigh, entity.PriorityMedium, entity.PriorityLow:
		return p
	}
	return entity.PriorityMedium
}

func toSummaryResponse(s *entity.AnalysisSummary) *dto.AnalysisSummaryResponse {
	res := &dto.AnalysisSummaryResponse{
		SessionId:       s.SessionId,
		Insights:        make([]dto.InsightResponse, 0, len(s.Insights)),
		Recommendations: make([]dto.RecommendationResponse, 0, len(s.Recommendations)),
		Degraded:        s.Degraded,
		GeneratedAt:     s.GeneratedAt,
	}
	for _, i := range s.Insights {
		res.Insights = append(res.Insights, dto.InsightResponse{Title: i.Title, Content: i.Content})
	}
	for _, r := range s.Recommendations {
		res.Recommendations = append(res.Recommendations, dto.RecommendationResponse{
			Title:    r.Title,
			Content:  r.Content,
			Priority: string(r.Priority),
		})
	}
	return res
}

func toCentralProblemResponse(p *entity.CentralProblem) *dto.CentralProblemResponse {
	return &dto.CentralProblemResponse{
		SessionId:   p.SessionId,
		Problem:     p.Problem,
		Rationale:   p.Rationale,
		Degraded:    p.Degraded,
		GeneratedAt: p.GeneratedAt,
	}
}
