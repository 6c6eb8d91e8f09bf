package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"skillsphere_backend/internal/model"
	"skillsphere_backend/internal/repository"
	"skillsphere_backend/internal/util"
	"skillsphere_backend/pkg/logger"
	"skillsphere_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const fallbackQuizSize = 5

// UserFinder is the piece of the user repository the domain services need.
type UserFinder interface {
	FindByID(id string) (*model.User, error)
}

type QuizAttemptRepo interface {
	SaveAttempt(attempt *model.QuizAttempt) error
	FindByUser(userID string) ([]model.QuizAttempt, error)
}

type SkillUpserter interface {
	Upsert(userID, domain string, level model.SkillLevel) error
}

type QuizService struct {
	userRepo  UserFinder
	quizRepo  QuizAttemptRepo
	skillRepo SkillUpserter
	ai        AIClient
}

func NewQuizService(userRepo *repository.UserRepository, quizRepo *repository.QuizRepository, skillRepo *repository.SkillRepository, ai AIClient) *QuizService {
	return &QuizService{
		userRepo:  userRepo,
		quizRepo:  quizRepo,
		skillRepo: skillRepo,
		ai:        ai,
	}
}

type Quiz struct {
	Domain    string               `json:"domain"`
	Questions []model.QuizQuestion `json:"questions"`
}

type QuestionResult struct {
	Question      string `json:"question"`
	Submitted     int    `json:"submitted"`
	CorrectAnswer int    `json:"correctAnswer"`
	Correct       bool   `json:"correct"`
}

type QuizResult struct {
	Score          int              `json:"score"`
	TotalQuestions int              `json:"totalQuestions"`
	Percentage     float64          `json:"percentage"`
	SkillLevel     model.SkillLevel `json:"skillLevel"`
	AttemptID      string           `json:"attemptId"`
	Results        []QuestionResult `json:"results"`
}

// Generate asks the AI for a quiz and falls back to the static bank on any
// failure, so an AI outage never blocks the user. The user must exist.
func (s *QuizService) Generate(ctx context.Context, userID, domain string) (*Quiz, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	quiz, err := s.generateWithAI(ctx, domain)
	if err != nil {
		logger.Log.Warn("AI quiz generation failed, serving fallback bank",
			zap.String("domain", domain), zap.Error(err))
		monitoring.AIFallbackCounter.WithLabelValues("quiz").Inc()
		return FallbackQuiz(domain), nil
	}

	return quiz, nil
}

const quizSystemPrompt = "You are a skill assessment expert. Generate accurate, well-structured quizzes in valid JSON format only."

func (s *QuizService) generateWithAI(ctx context.Context, domain string) (*Quiz, error) {
	prompt := fmt.Sprintf(`Generate a skill assessment quiz for %s.
Create 10 multiple choice questions that progressively test knowledge from beginner to advanced level.
Include questions covering:
- Fundamental concepts (questions 1-3)
- Intermediate topics (questions 4-7)
- Advanced techniques (questions 8-10)

Return ONLY valid JSON in this exact format:
{
  "questions": [
    {
      "question": "Question text here?",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correctAnswer": 0
    }
  ]
}`, domain)

	content, err := s.ai.CompleteJSON(ctx, quizSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	questions, err := parseQuizPayload(content)
	if err != nil {
		return nil, err
	}

	return &Quiz{Domain: domain, Questions: questions}, nil
}

// parseQuizPayload validates the AI response shape: at least one question,
// each with exactly four options and a correct-answer index in [0,3].
func parseQuizPayload(content string) ([]model.QuizQuestion, error) {
	var payload struct {
		Questions []model.QuizQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("parse quiz payload: %w", err)
	}

	if len(payload.Questions) == 0 {
		return nil, fmt.Errorf("quiz payload has no questions")
	}

	for i, q := range payload.Questions {
		if q.Question == "" {
			return nil, fmt.Errorf("question %d has empty text", i)
		}
		if len(q.Options) != 4 {
			return nil, fmt.Errorf("question %d has %d options, want 4", i, len(q.Options))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer > 3 {
			return nil, fmt.Errorf("question %d has correct answer %d out of range", i, q.CorrectAnswer)
		}
	}

	return payload.Questions, nil
}

// FallbackQuiz never touches the AI client. It concatenates the two
// domain-templated banks, shuffles them (convenience shuffle, not a uniform
// permutation) and returns the first five.
func FallbackQuiz(domain string) *Quiz {
	bank := append(fallbackBankGeneral(domain), fallbackBankPractice(domain)...)

	rand.Shuffle(len(bank), func(i, j int) {
		bank[i], bank[j] = bank[j], bank[i]
	})

	return &Quiz{Domain: domain, Questions: bank[:fallbackQuizSize]}
}

func fallbackBankGeneral(domain string) []model.QuizQuestion {
	return []model.QuizQuestion{
		{
			Question: fmt.Sprintf("What is the primary purpose of %s?", domain),
			Options: []string{
				"To build software applications",
				"To manage data and information",
				"To solve specific technical problems",
				"All of the above",
			},
			CorrectAnswer: 3,
		},
		{
			Question: fmt.Sprintf("Which skill is most important for %s?", domain),
			Options: []string{
				"Problem-solving abilities",
				"Communication skills",
				"Technical knowledge",
				"All are equally important",
			},
			CorrectAnswer: 3,
		},
		{
			Question: fmt.Sprintf("%s is best described as:", domain),
			Options: []string{
				"A theoretical field",
				"A practical discipline",
				"Both theoretical and practical",
				"Neither theoretical nor practical",
			},
			CorrectAnswer: 2,
		},
		{
			Question: fmt.Sprintf("What is a common tool used in %s?", domain),
			Options: []string{
				"Specialized software",
				"Programming languages",
				"Development frameworks",
				"Varies by specific application",
			},
			CorrectAnswer: 3,
		},
		{
			Question: fmt.Sprintf("How would you rate the learning curve for %s?", domain),
			Options: []string{
				"Very easy",
				"Moderate",
				"Challenging but manageable",
				"Very difficult",
			},
			CorrectAnswer: 2,
		},
	}
}

func fallbackBankPractice(domain string) []model.QuizQuestion {
	return []model.QuizQuestion{
		{
			Question: fmt.Sprintf("What is the best way to start learning %s?", domain),
			Options: []string{
				"Memorize terminology first",
				"Build small practical projects",
				"Read research papers",
				"Wait for formal training",
			},
			CorrectAnswer: 1,
		},
		{
			Question: fmt.Sprintf("How do practitioners in %s typically stay current?", domain),
			Options: []string{
				"They never need to update their knowledge",
				"Through continuous learning and practice",
				"Only through formal certifications",
				"By ignoring new developments",
			},
			CorrectAnswer: 1,
		},
		{
			Question: fmt.Sprintf("Which habit helps most when practicing %s?", domain),
			Options: []string{
				"Regular, spaced practice sessions",
				"Cramming before deadlines",
				"Avoiding feedback",
				"Working only on easy problems",
			},
			CorrectAnswer: 0,
		},
		{
			Question: fmt.Sprintf("When you get stuck on a %s problem, a good first step is to:", domain),
			Options: []string{
				"Give up and switch fields",
				"Break the problem into smaller parts",
				"Wait for someone else to solve it",
				"Start over from scratch every time",
			},
			CorrectAnswer: 1,
		},
		{
			Question: fmt.Sprintf("What indicates growing proficiency in %s?", domain),
			Options: []string{
				"Avoiding unfamiliar problems",
				"Explaining concepts to others clearly",
				"Memorizing documentation",
				"Working strictly alone",
			},
			CorrectAnswer: 1,
		},
	}
}

// DeriveSkillLevel maps a quiz percentage to a label. Inclusive lower
/// bounds: >=70 Advanced, >=40 Intermediate, else Beginner.
func DeriveSkillLevel(percentage float64) model.SkillLevel {
	switch {
	case percentage >= 70:
		return model.Advanced
	case percentage >= 40:
		return model.Intermediate
	default:
		return model.Beginner
	}
}

// Score grades a submission, persists the attempt and overwrites the
// user's skill label for the domain.
func (s *QuizService) Score(userID, domain string, questions []model.QuizQuestion, answers []int) (*QuizResult, error) {
	if len(answers) != len(questions) {
		return nil, util.ErrAnswerCountMismatch
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("quiz has no questions")
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	score := 0
	results := make([]QuestionResult, len(questions))
	for i, q := range questions {
		correct := answers[i] == q.CorrectAnswer
		if correct {
			score++
		}
		results[i] = QuestionResult{
			Question:      q.Question,
			Submitted:     answers[i],
			CorrectAnswer: q.CorrectAnswer,
			Correct:       correct,
		}
	}

	total := len(questions)
	percentage := float64(score) / float64(total) * 100
	skillLevel := DeriveSkillLevel(percentage)

	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		return nil, err
	}
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}

	attempt := &model.QuizAttempt{
		UserID:         userID,
		Domain:         domain,
		Questions:      questionsJSON,
		Answers:        answersJSON,
		Score:          score,
		TotalQuestions: total,
		SkillLevel:     string(skillLevel),
	}
	if err := s.quizRepo.SaveAttempt(attempt); err != nil {
		return nil, err
	}

	if err := s.skillRepo.Upsert(userID, domain, skillLevel); err != nil {
		return nil, err
	}

	return &QuizResult{
		Score:          score,
		TotalQuestions: total,
		Percentage:     percentage,
		SkillLevel:     skillLevel,
		AttemptID:      attempt.ID,
		Results:        results,
	}, nil
}

func (s *QuizService) History(userID string) ([]model.QuizAttempt, error) {
	return s.quizRepo.FindByUser(userID)
}
