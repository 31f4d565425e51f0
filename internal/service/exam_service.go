package service

import (
	"context"
	"encoding/json"
	"errors"
	"linguacert_backend/internal/model"
	"linguacert_backend/internal/util"
	"linguacert_backend/pkg/monitoring"
	"time"

	"gorm.io/gorm"
)

// QuestionResolver is the lookup path scoring runs against. Unlike the
// client-facing sample, resolved questions carry the correct option index.
type QuestionResolver interface {
	FindByIDs(ids []uint) (map[uint]model.Question, error)
}

// ResultStore is the result ledger: one row per (user, step) for signed-in
// takers, append-only for anonymous ones.
type ResultStore interface {
	Upsert(result *model.Result) (*model.Result, error)
	FindLatest(userID string, step int) (*model.Result, error)
	FindAllForUser(userID string) ([]model.Result, error)
	FindAll() ([]model.Result, error)
}

// CertificateRenderer produces and locates certificate documents.
type CertificateRenderer interface {
	Render(ctx context.Context, result *model.Result) (string, error)
	URLIfExists(ctx context.Context, resultID string) string
}

type ExamService struct {
	Questions QuestionResolver
	Results   ResultStore
	Certs     CertificateRenderer
}

func NewExamService(questions QuestionResolver, results ResultStore, certs CertificateRenderer) *ExamService {
	return &ExamService{Questions: questions, Results: results, Certs: certs}
}

type SubmitRequest struct {
	UserID  *string        `json:"userId"`
	Name    string         `json:"name"`
	Email   *string        `json:"email"`
	Step    int            `json:"step"`
	Level   string         `json:"level"`
	Answers []model.Answer `json:"answers"`
}

type SubmitResponse struct {
	SavedResult       *model.Result `json:"savedResult"`
	Certification     string        `json:"certification"`
	Percentage        float64       `json:"percentage"`
	ProceedToNextStep bool          `json:"proceedToNextStep"`
	CertificateURL    *string       `json:"certificateUrl"`
}

// scoreAnswers scores a submission against the resolved question set. Every
// submitted answer counts toward total; answers whose question no longer
// exists contribute nothing to score, same as a wrong or blank answer.
func scoreAnswers(answers []model.Answer, questions map[uint]model.Question) (score, total int) {
	total = len(answers)
	for _, a := range answers {
		q, ok := questions[a.QuestionID]
		if !ok {
			continue
		}
		if a.SelectedIndex == q.CorrectOptionIndex {
			score++
		}
	}
	return score, total
}

// Submit runs the full pipeline: retake gate, scoring, certification
// decision, result upsert, certificate render. Storage or render failures
// abort the request; nothing is considered committed and the caller may
// resubmit (the upsert absorbs the retry).
func (s *ExamService) Submit(ctx context.Context, req SubmitRequest) (*SubmitResponse, error) {
	userID := normalizeUserID(req.UserID)

	// 第一步挂科后禁止重考
	if userID != nil && req.Step == 1 {
		latest, err := s.Results.FindLatest(*userID, 1)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if latest != nil && latest.Certification == CertFail {
			return nil, util.ErrRetakeNotAllowed
		}
	}

	ids := make([]uint, 0, len(req.Answers))
	seen := make(map[uint]bool, len(req.Answers))
	for _, a := range req.Answers {
		if !seen[a.QuestionID] {
			seen[a.QuestionID] = true
			ids = append(ids, a.QuestionID)
		}
	}

	questions, err := s.Questions.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	score, total := scoreAnswers(req.Answers, questions)
	percentage := 0.0
	if total > 0 {
		percentage = float64(score) / float64(total) * 100
	}

	decision := DecideCertification(req.Step, percentage)

	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, err
	}

	result := &model.Result{
		UserID:        userID,
		Name:          req.Name,
		Email:         req.Email,
		Step:          req.Step,
		Level:         req.Level,
		Score:         score,
		Total:         total,
		Percentage:    percentage,
		Certification: decision.Certification,
		Answers:       answersJSON,
	}

	saved, err := s.Results.Upsert(result)
	if err != nil {
		return nil, err
	}

	var certificateURL *string
	url, err := s.Certs.Render(ctx, saved)
	if err != nil {
		return nil, err
	}
	if url != "" {
		certificateURL = &url
	}

	monitoring.ExamSubmissions.WithLabelValues(decision.Certification).Inc()

	return &SubmitResponse{
		SavedResult:       saved,
		Certification:     decision.Certification,
		Percentage:        percentage,
		ProceedToNextStep: decision.Proceed,
		CertificateURL:    certificateURL,
	}, nil
}

// LatestResult returns the stored result for (userID, step), or nil when the
// user has not attempted that step.
func (s *ExamService) LatestResult(userID string, step int) (*model.Result, error) {
	res, err := s.Results.FindLatest(userID, step)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return res, nil
}

// ExamSummary is the listing row for attempt history views. CertificateURL
// is set only when the document actually exists in storage; listing never
// triggers a render.
type ExamSummary struct {
	ID             string    `json:"id"`
	UserID         *string   `json:"userId,omitempty"`
	Name           string    `json:"name,omitempty"`
	Email          *string   `json:"email,omitempty"`
	Step           int       `json:"step"`
	Level          string    `json:"level"`
	Score          int       `json:"score"`
	Total          int       `json:"total"`
	Percentage     float64   `json:"percentage"`
	Certification  string    `json:"certification"`
	Date           time.Time `json:"date"`
	CertificateURL *string   `json:"certificateUrl"`
}

func (s *ExamService) summarize(ctx context.Context, rs []model.Result, includeIdentity bool) []ExamSummary {
	out := make([]ExamSummary, len(rs))
	for i, r := range rs {
		summary := ExamSummary{
			ID:            r.ID,
			Step:          r.Step,
			Level:         r.Level,
			Score:         r.Score,
			Total:         r.Total,
			Percentage:    r.Percentage,
			Certification: r.Certification,
			Date:          r.CreatedAt,
		}
		if includeIdentity {
			summary.UserID = r.UserID
			summary.Name = r.Name
			summary.Email = r.Email
		}
		if url := s.Certs.URLIfExists(ctx, r.ID); url != "" {
			summary.CertificateURL = &url
		}
		out[i] = summary
	}
	return out
}

func (s *ExamService) UserExams(ctx context.Context, userID string) ([]ExamSummary, error) {
	rs, err := s.Results.FindAllForUser(userID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, rs, false), nil
}

func (s *ExamService) AllResults(ctx context.Context) ([]ExamSummary, error) {
	rs, err := s.Results.FindAll()
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, rs, true), nil
}

func normalizeUserID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}
