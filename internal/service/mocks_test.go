package service

import (
	"context"
	"os"
	"skillsphere_backend/internal/model"
	"skillsphere_backend/pkg/logger"
	"testing"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo(users ...*model.User) *mockUserRepo {
	r := &mockUserRepo{users: make(map[string]*model.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *mockUserRepo) Create(user *model.User) error {
	if user.ID == "" {
		user.ID = "user-" + user.Username
	}
	r.users[user.ID] = user
	return nil
}

func (r *mockUserRepo) FindByID(id string) (*model.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockUserRepo) FindByUsername(username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockUserRepo) Update(user *model.User) error {
	r.users[user.ID] = user
	return nil
}

type mockQuizRepo struct {
	saved []*model.QuizAttempt
}

func (r *mockQuizRepo) SaveAttempt(attempt *model.QuizAttempt) error {
	attempt.ID = "attempt-1"
	r.saved = append(r.saved, attempt)
	return nil
}

func (r *mockQuizRepo) FindByUser(userID string) ([]model.QuizAttempt, error) {
	var out []model.QuizAttempt
	for _, a := range r.saved {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

type mockSkillRepo struct {
	skills map[string]map[string]model.SkillLevel
}

func newMockSkillRepo() *mockSkillRepo {
	return &mockSkillRepo{skills: make(map[string]map[string]model.SkillLevel)}
}

func (r *mockSkillRepo) Upsert(userID, domain string, level model.SkillLevel) error {
	if r.skills[userID] == nil {
		r.skills[userID] = make(map[string]model.SkillLevel)
	}
	r.skills[userID][domain] = level
	return nil
}

func (r *mockSkillRepo) FindByUser(userID string) ([]model.DomainSkill, error) {
	var out []model.DomainSkill
	for domain, level := range r.skills[userID] {
		out = append(out, model.DomainSkill{UserID: userID, Domain: domain, SkillLevel: level})
	}
	return out, nil
}

func (r *mockSkillRepo) FindByUserAndDomain(userID, domain string) (*model.DomainSkill, error) {
	if level, ok := r.skills[userID][domain]; ok {
		return &model.DomainSkill{UserID: userID, Domain: domain, SkillLevel: level}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type mockEnrollmentRepo struct {
	enrollments []*model.Enrollment
}

func (r *mockEnrollmentRepo) Create(enrollment *model.Enrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = "enrollment-" + enrollment.CourseTitle
	}
	r.enrollments = append(r.enrollments, enrollment)
	return nil
}

func (r *mockEnrollmentRepo) FindByID(id string) (*model.Enrollment, error) {
	for _, e := range r.enrollments {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockEnrollmentRepo) FindByUser(userID string) ([]model.Enrollment, error) {
	var out []model.Enrollment
	for _, e := range r.enrollments {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *mockEnrollmentRepo) Update(enrollment *model.Enrollment) error {
	for i, e := range r.enrollments {
		if e.ID == enrollment.ID {
			r.enrollments[i] = enrollment
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type mockScheduleRepo struct {
	items []*model.ScheduleItem
}

func (r *mockScheduleRepo) Create(item *model.ScheduleItem) error {
	if item.ID == "" {
		item.ID = "item-" + item.Title
	}
	r.items = append(r.items, item)
	return nil
}

func (r *mockScheduleRepo) CreateBatch(items []model.ScheduleItem) ([]model.ScheduleItem, error) {
	for i := range items {
		r.Create(&items[i])
	}
	return items, nil
}

func (r *mockScheduleRepo) FindByID(id string) (*model.ScheduleItem, error) {
	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockScheduleRepo) FindByUser(userID string) ([]model.ScheduleItem, error) {
	var out []model.ScheduleItem
	for _, it := range r.items {
		if it.UserID == userID {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (r *mockScheduleRepo) Update(item *model.ScheduleItem) error {
	for i, it := range r.items {
		if it.ID == item.ID {
			r.items[i] = item
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type mockChatStore struct {
	messages []*model.ChatMessage
	saveErr  error
}

func (r *mockChatStore) Save(message *model.ChatMessage) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.messages = append(r.messages, message)
	return nil
}

func (r *mockChatStore) History(userID string, limit int) ([]model.ChatMessage, error) {
	var out []model.ChatMessage
	for _, m := range r.messages {
		if m.UserID == userID {
			out = append(out, *m)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

// mockAI stubs the AI client with per-test function hooks and records
// whether it was called at all.
type mockAI struct {
	completeJSON func(ctx context.Context, system, prompt string) (string, error)
	chat         func(ctx context.Context, messages []AIChatMessage, maxTokens int) (string, error)
	calls        int
}

func (m *mockAI) CompleteJSON(ctx context.Context, system, prompt string) (string, error) {
	m.calls++
	if m.completeJSON == nil {
		return "", context.DeadlineExceeded
	}
	return m.completeJSON(ctx, system, prompt)
}

func (m *mockAI) Chat(ctx context.Context, messages []AIChatMessage, maxTokens int) (string, error) {
	m.calls++
	if m.chat == nil {
		return "", context.DeadlineExceeded
	}
	return m.chat(ctx, messages, maxTokens)
}

func testUser(id string, domains ...string) *model.User {
	u := &model.User{
		Username: "learner-" + id,
		Name:     "Learner",
		Email:    "learner@example.com",
	}
	u.ID = id
	if len(domains) > 0 {
		u.SelectedDomains = datatypes.NewJSONSlice(domains)
	}
	return u
}
