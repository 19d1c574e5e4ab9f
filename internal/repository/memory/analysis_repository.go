package memory

import (
	"time"

	"afom-board-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

const (
	summaryKeyPrefix = "summary:"
	problemKeyPrefix = "problem:"
)

// AnalysisRepository keeps the latest generated analysis per session so
// export can include it without calling the model again.
type AnalysisRepository struct {
	cache *cache.Cache
}

func NewAnalysisRepository(ttl time.Duration) *AnalysisRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AnalysisRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (r *AnalysisRepository) SaveSummary(s *entity.AnalysisSummary) {
	r.cache.Set(summaryKeyPrefix+s.SessionId, s, cache.DefaultExpiration)
}

func (r *AnalysisRepository) GetSummary(sessionID string) (*entity.AnalysisSummary, bool) {
	if x, found := r.cache.Get(summaryKeyPrefix + sessionID); found {
		return x.(*entity.AnalysisSummary), true
	}
	return nil, false
}

func (r *AnalysisRepository) SaveCentralProblem(p *entity.CentralProblem) {
	r.cache.Set(problemKeyPrefix+p.SessionId, p, cache.DefaultExpiration)
}

func (r *AnalysisRepository) GetCentralProblem(sessionID string) (*entity.CentralProblem, bool) {
	if x, found := r.cache.Get(problemKeyPrefix + sessionID); found {
		return x.(*entity.CentralProblem), true
	}
	return nil, false
}

func (r *AnalysisRepository) Delete(sessionID string) {
	r.cache.Delete(summaryKeyPrefix + sessionID)
	r.cache.Delete(problemKeyPrefix + sessionID)
}
