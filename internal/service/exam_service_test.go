package service

import (
	"context"
	"linguacert_backend/internal/model"
	"linguacert_backend/internal/util"
	"testing"

	"gorm.io/gorm"
)

type fakeQuestionResolver struct {
	questions map[uint]model.Question
}

func (f *fakeQuestionResolver) FindByIDs(ids []uint) (map[uint]model.Question, error) {
	out := make(map[uint]model.Question)
	for _, id := range ids {
		if q, ok := f.questions[id]; ok {
			out[id] = q
		}
	}
	return out, nil
}

type fakeResultStore struct {
	byUserStep map[string]*model.Result
	anonymous  []*model.Result
	upserts    int
}

func newFakeResultStore() *fakeResultStore {
	return &fakeResultStore{byUserStep: make(map[string]*model.Result)}
}

func userStepKey(userID string, step int) string {
	return userID + "#" + string(rune('0'+step))
}

func (f *fakeResultStore) Upsert(r *model.Result) (*model.Result, error) {
	f.upserts++
	if r.UserID == nil {
		r.ID = "anon"
		f.anonymous = append(f.anonymous, r)
		return r, nil
	}
	key := userStepKey(*r.UserID, r.Step)
	if existing, ok := f.byUserStep[key]; ok {
		r.ID = existing.ID
		r.CreatedAt = existing.CreatedAt
	} else {
		r.ID = "result-" + key
	}
	f.byUserStep[key] = r
	return r, nil
}

func (f *fakeResultStore) FindLatest(userID string, step int) (*model.Result, error) {
	if r, ok := f.byUserStep[userStepKey(userID, step)]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeResultStore) FindAllForUser(userID string) ([]model.Result, error) {
	var out []model.Result
	for _, r := range f.byUserStep {
		if r.UserID != nil && *r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeResultStore) FindAll() ([]model.Result, error) {
	var out []model.Result
	for _, r := range f.byUserStep {
		out = append(out, *r)
	}
	for _, r := range f.anonymous {
		out = append(out, *r)
	}
	return out, nil
}

type fakeCertRenderer struct {
	rendered []string
	existing map[string]bool
}

func (f *fakeCertRenderer) Render(ctx context.Context, r *model.Result) (string, error) {
	if !HasCertificate(r.Certification) {
		return "", nil
	}
	f.rendered = append(f.rendered, r.ID)
	return "/certs/" + CertificateFilename(r.ID), nil
}

func (f *fakeCertRenderer) URLIfExists(ctx context.Context, resultID string) string {
	if f.existing[resultID] {
		return "/certs/" + CertificateFilename(resultID)
	}
	return ""
}

func newExamService(questions map[uint]model.Question) (*ExamService, *fakeResultStore, *fakeCertRenderer) {
	store := newFakeResultStore()
	certs := &fakeCertRenderer{existing: make(map[string]bool)}
	svc := NewExamService(&fakeQuestionResolver{questions: questions}, store, certs)
	return svc, store, certs
}

func threeQuestions() map[uint]model.Question {
	return map[uint]model.Question{
		1: {BaseModel: model.BaseModel{ID: 1}, Step: 1, Level: "A1", CorrectOptionIndex: 2},
		2: {BaseModel: model.BaseModel{ID: 2}, Step: 1, Level: "A1", CorrectOptionIndex: 0},
		3: {BaseModel: model.BaseModel{ID: 3}, Step: 1, Level: "A2", CorrectOptionIndex: 1},
	}
}

func TestSubmitScoresAgainstStoredAnswers(t *testing.T) {
	svc, _, _ := newExamService(threeQuestions())

	// one correct, one wrong, one referencing a deleted question
	resp, err := svc.Submit(context.Background(), SubmitRequest{
		Name: "Ada",
		Step: 1,
		Answers: []model.Answer{
			{QuestionID: 1, SelectedIndex: 2},
			{QuestionID: 2, SelectedIndex: 3},
			{QuestionID: 99, SelectedIndex: 0},
		},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if resp.SavedResult.Score != 1 {
		t.Errorf("score = %d, want 1", resp.SavedResult.Score)
	}
	if resp.SavedResult.Total != 3 {
		t.Errorf("total = %d, want 3 (missing question still counts)", resp.SavedResult.Total)
	}
	if resp.Percentage < 33.3 || resp.Percentage > 33.4 {
		t.Errorf("percentage = %v, want ~33.33", resp.Percentage)
	}
	if resp.Certification != "A1 certified" {
		t.Errorf("certification = %q, want %q", resp.Certification, "A1 certified")
	}
}

func TestSubmitEmptyAnswers(t *testing.T) {
	svc, _, _ := newExamService(threeQuestions())

	resp, err := svc.Submit(context.Background(), SubmitRequest{
		Name:    "Ada",
		Step:    1,
		Answers: []model.Answer{},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if resp.Percentage != 0 {
		t.Errorf("percentage = %v, want 0 for an empty submission", resp.Percentage)
	}
	if resp.Certification != CertFail {
		t.Errorf("certification = %q, want %q", resp.Certification, CertFail)
	}
	if resp.CertificateURL != nil {
		t.Errorf("certificateUrl = %v, want nil on Fail", *resp.CertificateURL)
	}
}

func TestSubmitRetakeGate(t *testing.T) {
	svc, _, _ := newExamService(threeQuestions())
	uid := "user-1"

	// fail step 1
	_, err := svc.Submit(context.Background(), SubmitRequest{
		UserID: &uid,
		Name:   "Ada",
		Step:   1,
		Answers: []model.Answer{
			{QuestionID: 1, SelectedIndex: 0},
		},
	})
	if err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	// retrying step 1 is blocked
	_, err = svc.Submit(context.Background(), SubmitRequest{
		UserID: &uid,
		Name:   "Ada",
		Step:   1,
		Answers: []model.Answer{
			{QuestionID: 1, SelectedIndex: 2},
		},
	})
	if err != util.ErrRetakeNotAllowed {
		t.Fatalf("second Submit err = %v, want ErrRetakeNotAllowed", err)
	}

	// other steps stay open
	if _, err := svc.Submit(context.Background(), SubmitRequest{
		UserID:  &uid,
		Name:    "Ada",
		Step:    2,
		Answers: []model.Answer{{QuestionID: 1, SelectedIndex: 2}},
	}); err != nil {
		t.Fatalf("step 2 Submit err = %v, want nil", err)
	}
}

func TestSubmitRetakeGateIgnoresAnonymous(t *testing.T) {
	svc, store, _ := newExamService(threeQuestions())

	for i := 0; i < 2; i++ {
		if _, err := svc.Submit(context.Background(), SubmitRequest{
			Name:    "Guest",
			Step:    1,
			Answers: []model.Answer{{QuestionID: 1, SelectedIndex: 0}},
		}); err != nil {
			t.Fatalf("anonymous Submit %d: %v", i, err)
		}
	}

	if len(store.anonymous) != 2 {
		t.Errorf("anonymous rows = %d, want 2 (every anonymous submit inserts)", len(store.anonymous))
	}
}

func TestSubmitUpsertsPerUserAndStep(t *testing.T) {
	svc, store, _ := newExamService(threeQuestions())
	uid := "user-2"

	submit := func(selected int) *SubmitResponse {
		t.Helper()
		resp, err := svc.Submit(context.Background(), SubmitRequest{
			UserID: &uid,
			Name:   "Ada",
			Step:   1,
			Answers: []model.Answer{
				{QuestionID: 1, SelectedIndex: selected},
				{QuestionID: 2, SelectedIndex: 0},
				{QuestionID: 3, SelectedIndex: 1},
			},
		})
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		return resp
	}

	first := submit(1)  // 2/3 -> A2 certified
	second := submit(2) // 3/3 -> A2 certified + proceed

	if first.SavedResult.ID != second.SavedResult.ID {
		t.Errorf("ids differ (%q vs %q), want the same row updated", first.SavedResult.ID, second.SavedResult.ID)
	}
	if len(store.byUserStep) != 1 {
		t.Errorf("stored rows = %d, want 1", len(store.byUserStep))
	}
	if !second.ProceedToNextStep {
		t.Error("ProceedToNextStep = false, want true at 100%")
	}
}

func TestSubmitRendersCertificateForPassingResult(t *testing.T) {
	svc, _, certs := newExamService(threeQuestions())
	uid := "user-3"

	resp, err := svc.Submit(context.Background(), SubmitRequest{
		UserID: &uid,
		Name:   "Ada",
		Step:   1,
		Answers: []model.Answer{
			{QuestionID: 1, SelectedIndex: 2},
			{QuestionID: 2, SelectedIndex: 0},
		},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if len(certs.rendered) != 1 {
		t.Fatalf("rendered %d certificates, want 1", len(certs.rendered))
	}
	if resp.CertificateURL == nil {
		t.Fatal("certificateUrl is nil, want a path")
	}
	want := "/certs/" + CertificateFilename(resp.SavedResult.ID)
	if *resp.CertificateURL != want {
		t.Errorf("certificateUrl = %q, want %q", *resp.CertificateURL, want)
	}
}

func TestUserExamsCertificateURLOnlyWhenStored(t *testing.T) {
	svc, store, certs := newExamService(threeQuestions())
	uid := "user-4"

	r1 := &model.Result{UserID: &uid, Name: "Ada", Step: 1, Certification: "A2 certified"}
	r2 := &model.Result{UserID: &uid, Name: "Ada", Step: 2, Certification: "Remain at A2"}
	store.Upsert(r1)
	store.Upsert(r2)
	certs.existing[r1.ID] = true

	exams, err := svc.UserExams(context.Background(), uid)
	if err != nil {
		t.Fatalf("UserExams: %v", err)
	}
	if len(exams) != 2 {
		t.Fatalf("got %d exams, want 2", len(exams))
	}
	for _, e := range exams {
		switch e.ID {
		case r1.ID:
			if e.CertificateURL == nil {
				t.Error("stored certificate missing from summary")
			}
		case r2.ID:
			if e.CertificateURL != nil {
				t.Error("summary has a certificate URL for a result with none stored")
			}
		}
		if e.UserID != nil || e.Name != "" {
			t.Error("user-facing summary must not carry identity fields")
		}
	}
}
