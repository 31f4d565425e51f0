package service

import (
	"encoding/json"
	"errors"
	"linguacert_backend/internal/model"
	"linguacert_backend/internal/repository"
	"linguacert_backend/internal/util"
	"strings"

	"gorm.io/gorm"
)

type QuestionService struct {
	Repo *repository.QuestionRepository
}

func NewQuestionService(repo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{Repo: repo}
}

type QuestionRequest struct {
	Step               int      `json:"step" binding:"required"`
	Level              string   `json:"level" binding:"required"`
	QuestionText       string   `json:"questionText" binding:"required"`
	Options            []string `json:"options" binding:"required"`
	CorrectOptionIndex *int     `json:"correctOptionIndex" binding:"required"`
}

func validateQuestion(req QuestionRequest) error {
	levels, ok := StepLevels[req.Step]
	if !ok {
		return util.ErrInvalidStep
	}
	levelOK := false
	for _, l := range levels {
		if l == req.Level {
			levelOK = true
			break
		}
	}
	if !levelOK {
		return util.ErrInvalidStep
	}

	if len(req.Options) != 4 {
		return util.ErrInvalidOptions
	}
	for _, opt := range req.Options {
		if strings.TrimSpace(opt) == "" {
			return util.ErrInvalidOptions
		}
	}

	if req.CorrectOptionIndex == nil || *req.CorrectOptionIndex < 0 || *req.CorrectOptionIndex > 3 {
		return util.ErrInvalidCorrectIdx
	}
	return nil
}

func (s *QuestionService) Create(req QuestionRequest) (*model.Question, error) {
	if err := validateQuestion(req); err != nil {
		return nil, err
	}

	count, err := s.Repo.CountByStepLevel(req.Step, req.Level)
	if err != nil {
		return nil, err
	}
	if count >= MaxQuestionsPerStepLevel {
		return nil, util.ErrQuestionLimit
	}

	optionsJSON, err := json.Marshal(req.Options)
	if err != nil {
		return nil, err
	}

	q := &model.Question{
		Step:               req.Step,
		Level:              req.Level,
		QuestionText:       req.QuestionText,
		Options:            optionsJSON,
		CorrectOptionIndex: *req.CorrectOptionIndex,
	}
	if err := s.Repo.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Update(id uint, req QuestionRequest) (*model.Question, error) {
	if err := validateQuestion(req); err != nil {
		return nil, err
	}

	q, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	optionsJSON, err := json.Marshal(req.Options)
	if err != nil {
		return nil, err
	}

	q.Step = req.Step
	q.Level = req.Level
	q.QuestionText = req.QuestionText
	q.Options = optionsJSON
	q.CorrectOptionIndex = *req.CorrectOptionIndex
	if err := s.Repo.Update(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Delete(id uint) error {
	if _, err := s.Repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}
	return s.Repo.Delete(id)
}

func (s *QuestionService) List(step int, level string) ([]model.Question, error) {
	return s.Repo.ListByStepLevel(step, level)
}

func (s *QuestionService) Count(step int, level string) (int64, error) {
	return s.Repo.CountByStepLevel(step, level)
}

// SampleForStep draws the exam question set for a step and projects it for
// the client. The projection never includes the correct option index; that
// stripping happens here, not per route.
func (s *QuestionService) SampleForStep(step int) ([]model.ClientQuestion, error) {
	levels, ok := StepLevels[step]
	if !ok {
		return nil, util.ErrInvalidStep
	}

	qs, err := s.Repo.SampleByLevels(levels, SampleSize)
	if err != nil {
		return nil, err
	}

	return ProjectForClient(qs), nil
}

// ProjectForClient strips scoring data from a question set.
func ProjectForClient(qs []model.Question) []model.ClientQuestion {
	out := make([]model.ClientQuestion, len(qs))
	for i, q := range qs {
		out[i] = model.ClientQuestion{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			Options:      q.Options,
			Step:         q.Step,
			Level:        q.Level,
		}
	}
	return out
}
