package service

import (
	"context"
	"errors"
	"fmt"
	"skillsphere_backend/internal/model"
	"skillsphere_backend/internal/repository"
	"skillsphere_backend/internal/util"
	"skillsphere_backend/pkg/logger"
	"skillsphere_backend/pkg/monitoring"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// chatHistoryLimit caps how much prior conversation is replayed into the
// model context per request.
const chatHistoryLimit = 10

type ChatStore interface {
	Save(message *model.ChatMessage) error
	History(userID string, limit int) ([]model.ChatMessage, error)
}

type ChatService struct {
	userRepo       UserFinder
	skillRepo      SkillLister
	enrollmentRepo EnrollmentLister
	chatRepo       ChatStore
	ai             AIClient
	maxTokens      int
}

func NewChatService(userRepo *repository.UserRepository, skillRepo *repository.SkillRepository, enrollmentRepo *repository.EnrollmentRepository, chatRepo *repository.ChatRepository, ai AIClient, maxTokens int) *ChatService {
	return &ChatService{
		userRepo:       userRepo,
		skillRepo:      skillRepo,
		enrollmentRepo: enrollmentRepo,
		chatRepo:       chatRepo,
		ai:             ai,
		maxTokens:      maxTokens,
	}
}

// Send answers one mentor-chat turn. The reply comes from the AI when it
// cooperates and from keyword heuristics when it does not; either way
// both turns are persisted best-effort so a storage hiccup never eats a
// reply the user already saw.
func (s *ChatService) Send(ctx context.Context, userID, message string) (string, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrUserNotFound
		}
		return "", err
	}

	skills, err := s.skillRepo.FindByUser(userID)
	if err != nil {
		return "", err
	}
	enrollments, err := s.enrollmentRepo.FindByUser(userID)
	if err != nil {
		return "", err
	}

	reply := s.generateReply(ctx, user, skills, len(enrollments), message)

	if err := s.chatRepo.Save(&model.ChatMessage{UserID: userID, Role: model.RoleUser, Content: message}); err != nil {
		logger.Log.Warn("failed to persist user chat message", zap.String("userID", userID), zap.Error(err))
	}
	if err := s.chatRepo.Save(&model.ChatMessage{UserID: userID, Role: model.RoleAssistant, Content: reply}); err != nil {
		logger.Log.Warn("failed to persist assistant chat message", zap.String("userID", userID), zap.Error(err))
	}

	return reply, nil
}

func (s *ChatService) History(userID string, limit int) ([]model.ChatMessage, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	return s.chatRepo.History(userID, limit)
}

func (s *ChatService) generateReply(ctx context.Context, user *model.User, skills []model.DomainSkill, enrolledCount int, message string) string {
	skillParts := make([]string, 0, len(skills))
	for _, sk := range skills {
		skillParts = append(skillParts, fmt.Sprintf("%s (%s)", sk.Domain, sk.SkillLevel))
	}
	skillSummary := "not yet assessed"
	if len(skillParts) > 0 {
		skillSummary = strings.Join(skillParts, ", ")
	}

	system := fmt.Sprintf(`You are a friendly, encouraging AI learning mentor for %s.

Their profile:
- Learning domains: %s
- Skill levels: %s
- Enrolled courses: %d

Give practical, specific advice. Keep responses concise (under 150 words). Be supportive and motivating.`,
		user.Name, strings.Join(user.SelectedDomains, ", "), skillSummary, enrolledCount)

	messages := []AIChatMessage{{Role: "system", Content: system}}
	if history, err := s.chatRepo.History(user.ID, chatHistoryLimit); err == nil {
		for _, m := range history {
			messages = append(messages, AIChatMessage{Role: string(m.Role), Content: m.Content})
		}
	}
	messages = append(messages, AIChatMessage{Role: "user", Content: message})

	reply, err := s.ai.Chat(ctx, messages, s.maxTokens)
	if err != nil || strings.TrimSpace(reply) == "" {
		logger.Log.Warn("AI mentor chat failed, using keyword fallback",
			zap.String("userID", user.ID), zap.Error(err))
		monitoring.AIFallbackCounter.WithLabelValues("chat").Inc()
		return fallbackReply(message)
	}
	return reply
}

// fallbackReply picks a canned mentor response by keyword when the AI is
// unavailable. Ordering matters: earlier topics win on overlap.
func fallbackReply(message string) string {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "course") || strings.Contains(m, "recommend"):
		return "Check out the course recommendations on your dashboard. They are matched to your skill level, and the free options are a great place to start."
	case strings.Contains(m, "schedule") || strings.Contains(m, "plan") || strings.Contains(m, "time"):
		return "Consistency beats intensity. Try blocking out 45-60 minutes a day and let the schedule page generate a weekly plan for you."
	case strings.Contains(m, "quiz") || strings.Contains(m, "assess") || strings.Contains(m, "skill"):
		return "Taking a skill quiz is the fastest way to find your level. Head to the assessment page and pick a domain; it only takes a few minutes."
	case strings.Contains(m, "motivat") || strings.Contains(m, "stuck") || strings.Contains(m, "give up"):
		return "Everyone hits rough patches. Break the problem into the smallest piece you can finish today, and finish it. Momentum does the rest."
	default:
		return "I'm here to help with your learning journey. Ask me about courses, study schedules, or skill assessments, and we'll figure out your next step together."
	}
}
