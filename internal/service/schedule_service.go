package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"skillsphere_backend/internal/model"
	"skillsphere_backend/internal/repository"
	"skillsphere_backend/internal/util"
	"skillsphere_backend/pkg/logger"
	"skillsphere_backend/pkg/monitoring"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ScheduleRepo interface {
	Create(item *model.ScheduleItem) error
	CreateBatch(items []model.ScheduleItem) ([]model.ScheduleItem, error)
	FindByID(id string) (*model.ScheduleItem, error)
	FindByUser(userID string) ([]model.ScheduleItem, error)
	Update(item *model.ScheduleItem) error
}

type EnrollmentLister interface {
	FindByUser(userID string) ([]model.Enrollment, error)
}

type ScheduleService struct {
	userRepo       UserFinder
	scheduleRepo   ScheduleRepo
	enrollmentRepo EnrollmentLister
	ai             AIClient
}

func NewScheduleService(userRepo *repository.UserRepository, scheduleRepo *repository.ScheduleRepository, enrollmentRepo *repository.EnrollmentRepository, ai AIClient) *ScheduleService {
	return &ScheduleService{
		userRepo:       userRepo,
		scheduleRepo:   scheduleRepo,
		enrollmentRepo: enrollmentRepo,
		ai:             ai,
	}
}

type ScheduleItemInput struct {
	CourseID    *string    `json:"courseId"`
	Title       string     `json:"title" binding:"required"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
}

func (s *ScheduleService) Create(userID string, in ScheduleItemInput) (*model.ScheduleItem, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	item := &model.ScheduleItem{
		UserID:      userID,
		CourseID:    in.CourseID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
	}
	if err := s.scheduleRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ScheduleService) List(userID string) ([]model.ScheduleItem, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return s.scheduleRepo.FindByUser(userID)
}

// SetCompletion toggles an item to the given completion state.
func (s *ScheduleService) SetCompletion(itemID string, completed bool) (*model.ScheduleItem, error) {
	item, err := s.scheduleRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrScheduleNotFound
		}
		return nil, err
	}

	item.Completed = completed
	if err := s.scheduleRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ScheduleService) Complete(itemID string) (*model.ScheduleItem, error) {
	return s.SetCompletion(itemID, true)
}

const scheduleSystemPrompt = "You are a study planner. Build realistic weekly study schedules that balance focus sessions with review."

type generatedScheduleItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DayOffset   int    `json:"dayOffset"`
}

// Generate builds a one-week study plan from the user's active
// enrollments, persisting each item with a due date offset from today.
// AI failure falls back to a fixed seven-day rotation.
func (s *ScheduleService) Generate(ctx context.Context, userID string) ([]model.ScheduleItem, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	enrollments, err := s.enrollmentRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	active := make([]model.Enrollment, 0, len(enrollments))
	for _, e := range enrollments {
		if !e.Completed {
			active = append(active, e)
		}
	}

	plan := s.generatePlan(ctx, user, active)

	now := time.Now()
	items := make([]model.ScheduleItem, 0, len(plan))
	for _, p := range plan {
		if p.DayOffset < 0 {
			p.DayOffset = 0
		}
		due := now.AddDate(0, 0, p.DayOffset)
		desc := p.Description
		items = append(items, model.ScheduleItem{
			UserID:      userID,
			Title:       p.Title,
			Description: &desc,
			DueDate:     &due,
		})
	}

	saved, err := s.scheduleRepo.CreateBatch(items)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *ScheduleService) generatePlan(ctx context.Context, user *model.User, active []model.Enrollment) []generatedScheduleItem {
	courseList := make([]string, 0, len(active))
	for _, e := range active {
		courseList = append(courseList, fmt.Sprintf("- %s (%d%% complete)", e.CourseTitle, e.Progress))
	}
	if len(courseList) == 0 {
		for _, d := range user.SelectedDomains {
			courseList = append(courseList, "- Self-study: "+d)
		}
	}

	prompt := fmt.Sprintf(`Create a 7-day study schedule for a learner working on:
%s

Spread sessions across the week, mixing new material with review. Keep each
session title short and actionable.

Return ONLY valid JSON:
{
  "items": [
    {"title": "Session title", "description": "What to do", "dayOffset": 0}
  ]
}
dayOffset is days from today, 0 through 6.`, strings.Join(courseList, "\n"))

	content, err := s.ai.CompleteJSON(ctx, scheduleSystemPrompt, prompt)
	if err != nil {
		logger.Log.Warn("AI schedule generation failed, using fallback plan",
			zap.String("userID", user.ID), zap.Error(err))
		monitoring.AIFallbackCounter.WithLabelValues("schedule").Inc()
		return fallbackPlan(active, user.SelectedDomains)
	}

	var payload struct {
		Items []generatedScheduleItem `json:"items"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil || len(payload.Items) == 0 {
		logger.Log.Warn("AI schedule generation unparseable, using fallback plan",
			zap.String("userID", user.ID), zap.Error(err))
		monitoring.AIFallbackCounter.WithLabelValues("schedule").Inc()
		return fallbackPlan(active, user.SelectedDomains)
	}
	return payload.Items
}

// fallbackPlan rotates through the learner's courses (or selected
// domains) over seven days, day 6 reserved for review.
func fallbackPlan(active []model.Enrollment, domains []string) []generatedScheduleItem {
	subjects := make([]string, 0, len(active))
	for _, e := range active {
		subjects = append(subjects, e.CourseTitle)
	}
	if len(subjects) == 0 {
		subjects = append(subjects, domains...)
	}
	if len(subjects) == 0 {
		subjects = []string{"Your learning goals"}
	}

	items := make([]generatedScheduleItem, 0, 7)
	for day := 0; day < 6; day++ {
		subject := subjects[day%len(subjects)]
		items = append(items, generatedScheduleItem{
			Title:       fmt.Sprintf("Study session: %s", subject),
			Description: fmt.Sprintf("Spend 45-60 minutes on %s, then note one thing you learned.", subject),
			DayOffset:   day,
		})
	}
	items = append(items, generatedScheduleItem{
		Title:       "Weekly review",
		Description: "Revisit this week's notes and retry anything that felt shaky.",
		DayOffset:   6,
	})
	return items
}
