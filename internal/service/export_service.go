package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"afom-board-be/internal/board"
	"afom-board-be/internal/confrontation"
	"afom-board-be/internal/dto"
	"afom-board-be/internal/entity"
	"afom-board-be/internal/repository/memory"
	"afom-board-be/internal/repository/specification"
	"afom-board-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	SectionProject         = "Projet"
	SectionNotes           = "Notes"
	SectionInsights        = "Insights"
	SectionRecommendations = "Recommandations"
	SectionCentralProblem  = "Problème central"
	SectionMatrix          = "Matrice"
)

var csvHeader = []string{"Section", "Sub-section", "Key", "Value"}

type IExportService interface {
	Build(ctx context.Context, sessionId string) (*dto.ExportDocument, error)
	Export(ctx context.Context, sessionId string, format string) (*dto.ExportFile, error)
}

type exportService struct {
	uowFactory unitofwork.RepositoryFactory
	analyses   *memory.AnalysisRepository
	now        func() time.Time
}

func NewExportService(uowFactory unitofwork.RepositoryFactory, analyses *memory.AnalysisRepository) IExportService {
	return &exportService{
		uowFactory: uowFactory,
		analyses:   analyses,
		now:        time.Now,
	}
}

func (s *exportService) Export(ctx context.Context, sessionId string, format string) (*dto.ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = dto.ExportFormatCSV
	}
	if format != dto.ExportFormatCSV && format != dto.ExportFormatJSON {
		return nil, ErrUnsupportedFormat
	}

	doc, err := s.Build(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("afom-%s-%s.%s", strings.ToLower(sessionId), s.now().Format("20060102-1504"), format)
	if format == dto.ExportFormatJSON {
		body, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return &dto.ExportFile{ContentType: "application/json", FileName: name, Body: body}, nil
	}

	body, err := EncodeCSV(doc)
	if err != nil {
		return nil, err
	}
	return &dto.ExportFile{ContentType: "text/csv; charset=utf-8", FileName: name, Body: body}, nil
}

// EncodeCSV flattens the document into Section,Sub-section,Key,Value rows.
func EncodeCSV(doc *dto.ExportDocument) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, sec := range doc.Sections {
		for _, sub := range sec.SubSections {
			for _, e := range sub.Entries {
				if err := w.Write([]string{sec.Section, sub.Name, e.Key, e.Value}); err != nil {
					return nil, err
				}
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *exportService) Build(ctx context.Context, sessionId string) (*dto.ExportDocument, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindByToken(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session = &entity.Session{Token: sessionId}
	}

	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.BySession{SessionID: sessionId},
		specification.ExcludeBucket{Bucket: entity.BucketArchive},
		specification.OrderBySortIndex{},
	)
	if err != nil {
		return nil, err
	}
	board.SortBoard(notes)

	matrix, err := uow.ConfrontationRepository().FindBySession(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	doc := &dto.ExportDocument{SessionId: sessionId}
	doc.Sections = append(doc.Sections,
		s.projectSection(session),
		notesSection(notes),
	)

	summary, _ := s.analyses.GetSummary(sessionId)
	doc.Sections = append(doc.Sections, insightsSection(summary), recommendationsSection(summary))

	problem, _ := s.analyses.GetCentralProblem(sessionId)
	doc.Sections = append(doc.Sections, centralProblemSection(problem), matrixSection(matrix))

	return doc, nil
}

func (s *exportService) projectSection(session *entity.Session) dto.ExportSection {
	lastActivity := ""
	if session.LastActivityAt != nil {
		lastActivity = session.LastActivityAt.UTC().Format(time.RFC3339)
	}
	return dto.ExportSection{
		Section: SectionProject,
		SubSections: []dto.ExportSubSection{{
			Name: "Session",
			Entries: []dto.ExportEntry{
				{Key: "Session", Value: session.Token},
				{Key: "Projet", Value: session.ProjectName},
				{Key: "Thème", Value: session.ThemeName},
				{Key: "Dernière activité", Value: lastActivity},
				{Key: "Exporté le", Value: s.now().UTC().Format(time.RFC3339)},
			},
		}},
	}
}

func notesSection(notes []*entity.Note) dto.ExportSection {
	grouped := make(map[entity.Bucket][]dto.ExportEntry)
	for _, n := range notes {
		grouped[n.Bucket] = append(grouped[n.Bucket], dto.ExportEntry{Key: n.Author, Value: n.Content})
	}

	sec := dto.ExportSection{Section: SectionNotes}
	for _, b := range entity.ContentBuckets {
		entries := grouped[b]
		if entries == nil {
			entries = []dto.ExportEntry{}
		}
		sec.SubSections = append(sec.SubSections, dto.ExportSubSection{Name: board.Label(b), Entries: entries})
	}
	return sec
}

func insightsSection(summary *entity.AnalysisSummary) dto.ExportSection {
	sec := dto.ExportSection{Section: SectionInsights, SubSections: []dto.ExportSubSection{}}
	if summary == nil {
		return sec
	}
	entries := make([]dto.ExportEntry, 0, len(summary.Insights))
	for _, i := range summary.Insights {
		entries = append(entries, dto.ExportEntry{Key: i.Title, Value: i.Content})
	}
	sec.SubSections = append(sec.SubSections, dto.ExportSubSection{Name: SectionInsights, Entries: entries})
	return sec
}

// recommendationsSection groups by priority, most urgent first.
func recommendationsSection(summary *entity.AnalysisSummary) dto.ExportSection {
	sec := dto.ExportSection{Section: SectionRecommendations, SubSections: []dto.ExportSubSection{}}
	if summary == nil {
		return sec
	}
	for _, p := range []entity.Priority{entity.PriorityUrgent, entity.PriorityHigh, entity.PriorityMedium, entity.PriorityLow} {
		var entries []dto.ExportEntry
		for _, r := range summary.Recommendations {
			if r.Priority == p {
				entries = append(entries, dto.ExportEntry{Key: r.Title, Value: r.Content})
			}
		}
		if len(entries) > 0 {
			sec.SubSections = append(sec.SubSections, dto.ExportSubSection{Name: string(p), Entries: entries})
		}
	}
	return sec
}

func centralProblemSection(problem *entity.CentralProblem) dto.ExportSection {
	sec := dto.ExportSection{Section: SectionCentralProblem, SubSections: []dto.ExportSubSection{}}
	if problem == nil {
		return sec
	}
	sec.SubSections = append(sec.SubSections, dto.ExportSubSection{
		Name: "Synthèse",
		Entries: []dto.ExportEntry{
			{Key: "Problème", Value: problem.Problem},
			{Key: "Justification", Value: problem.Rationale},
		},
	})
	return sec
}

func matrixSection(c *entity.Confrontation) dto.ExportSection {
	sec := dto.ExportSection{Section: SectionMatrix, SubSections: []dto.ExportSubSection{}}
	if c == nil {
		return sec
	}

	scores := confrontation.Score(c.Shortlist, c.Checks)
	content := make(map[uuid.UUID]string)

	rows := dto.ExportSubSection{Name: "Lignes", Entries: []dto.ExportEntry{}}
	for _, a := range confrontation.Rows(c.Shortlist) {
		content[a.Item.NoteId] = a.Item.Content
		rows.Entries = append(rows.Entries, dto.ExportEntry{
			Key:   fmt.Sprintf("[%s] %s", board.Label(a.Bucket), a.Item.Content),
			Value: strconv.Itoa(scores.Rows[a.Item.NoteId]),
		})
	}

	cols := dto.ExportSubSection{Name: "Colonnes", Entries: []dto.ExportEntry{}}
	for _, a := range confrontation.Columns(c.Shortlist) {
		content[a.Item.NoteId] = a.Item.Content
		cols.Entries = append(cols.Entries, dto.ExportEntry{
			Key:   fmt.Sprintf("[%s] %s", board.Label(a.Bucket), a.Item.Content),
			Value: strconv.Itoa(scores.Columns[a.Item.NoteId]),
		})
	}

	checks := dto.ExportSubSection{Name: "Croisements", Entries: []dto.ExportEntry{}}
	for _, cell := range c.Checks {
		checks.Entries = append(checks.Entries, dto.ExportEntry{
			Key:   content[cell.RowId],
			Value: content[cell.ColumnId],
		})
	}

	sec.SubSections = append(sec.SubSections, rows, cols, checks)
	return sec
}
