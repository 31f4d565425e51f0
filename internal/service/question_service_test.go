package service

import (
	"encoding/json"
	"linguacert_backend/internal/model"
	"linguacert_backend/internal/util"
	"testing"
)

func intPtr(i int) *int { return &i }

func validQuestionRequest() QuestionRequest {
	return QuestionRequest{
		Step:               1,
		Level:              "A1",
		QuestionText:       "Choose the correct article: ___ apple",
		Options:            []string{"a", "an", "the", "no article"},
		CorrectOptionIndex: intPtr(1),
	}
}

func TestValidateQuestion(t *testing.T) {
	if err := validateQuestion(validQuestionRequest()); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*QuestionRequest)
		want   error
	}{
		{"unknown step", func(r *QuestionRequest) { r.Step = 4 }, util.ErrInvalidStep},
		{"level outside step", func(r *QuestionRequest) { r.Level = "B1" }, util.ErrInvalidStep},
		{"three options", func(r *QuestionRequest) { r.Options = r.Options[:3] }, util.ErrInvalidOptions},
		{"five options", func(r *QuestionRequest) { r.Options = append(r.Options, "extra") }, util.ErrInvalidOptions},
		{"blank option", func(r *QuestionRequest) { r.Options[2] = "   " }, util.ErrInvalidOptions},
		{"negative index", func(r *QuestionRequest) { r.CorrectOptionIndex = intPtr(-1) }, util.ErrInvalidCorrectIdx},
		{"index out of range", func(r *QuestionRequest) { r.CorrectOptionIndex = intPtr(4) }, util.ErrInvalidCorrectIdx},
		{"missing index", func(r *QuestionRequest) { r.CorrectOptionIndex = nil }, util.ErrInvalidCorrectIdx},
	}
	for _, tc := range cases {
		req := validQuestionRequest()
		tc.mutate(&req)
		if err := validateQuestion(req); err != tc.want {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestValidateQuestionAcceptsEveryLevelOfItsStep(t *testing.T) {
	for step, levels := range StepLevels {
		for _, level := range levels {
			req := validQuestionRequest()
			req.Step = step
			req.Level = level
			if err := validateQuestion(req); err != nil {
				t.Errorf("step %d level %s rejected: %v", step, level, err)
			}
		}
	}
}

func TestSampleForStepUnknownStep(t *testing.T) {
	// the taxonomy check runs before any bank access
	svc := &QuestionService{}
	for _, step := range []int{0, 4, -1, 99} {
		if _, err := svc.SampleForStep(step); err != util.ErrInvalidStep {
			t.Errorf("SampleForStep(%d) err = %v, want ErrInvalidStep", step, err)
		}
	}
}

func TestProjectForClientStripsCorrectIndex(t *testing.T) {
	options, _ := json.Marshal([]string{"a", "b", "c", "d"})
	qs := []model.Question{
		{BaseModel: model.BaseModel{ID: 7}, Step: 1, Level: "A1", QuestionText: "q", Options: options, CorrectOptionIndex: 3},
	}

	projected := ProjectForClient(qs)
	if len(projected) != 1 {
		t.Fatalf("got %d projected questions, want 1", len(projected))
	}

	payload, err := json.Marshal(projected[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var asMap map[string]interface{}
	if err := json.Unmarshal(payload, &asMap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for key := range asMap {
		if key == "correctOptionIndex" {
			t.Fatal("projection leaks correctOptionIndex")
		}
	}
	if asMap["id"] != float64(7) {
		t.Errorf("id = %v, want 7", asMap["id"])
	}
}
