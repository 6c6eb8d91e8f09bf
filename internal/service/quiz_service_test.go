package service

import (
	"context"
	"testing"

	"skillsphere_backend/internal/model"
	"skillsphere_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveSkillLevel(t *testing.T) {
	tests := []struct {
		percentage float64
		want       model.SkillLevel
	}{
		{100, model.Advanced},
		{70, model.Advanced},
		{69.9, model.Intermediate},
		{40, model.Intermediate},
		{39.9, model.Beginner},
		{0, model.Beginner},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveSkillLevel(tt.percentage), "percentage %v", tt.percentage)
	}
}

func TestFallbackQuizShape(t *testing.T) {
	quiz := FallbackQuiz("Web Development")

	assert.Equal(t, "Web Development", quiz.Domain)
	require.Len(t, quiz.Questions, fallbackQuizSize)
	for i, q := range quiz.Questions {
		assert.NotEmpty(t, q.Question, "question %d", i)
		assert.Len(t, q.Options, 4, "question %d", i)
		assert.GreaterOrEqual(t, q.CorrectAnswer, 0, "question %d", i)
		assert.LessOrEqual(t, q.CorrectAnswer, 3, "question %d", i)
	}
}

func TestFallbackQuizMentionsDomain(t *testing.T) {
	quiz := FallbackQuiz("Cybersecurity")
	for i, q := range quiz.Questions {
		assert.Contains(t, q.Question, "Cybersecurity", "question %d", i)
	}
}

func TestGenerateUsesAIQuiz(t *testing.T) {
	user := testUser("u1", "Data Science")
	ai := &mockAI{
		completeJSON: func(ctx context.Context, system, prompt string) (string, error) {
			return `{"questions":[{"question":"What is a DataFrame?","options":["A","B","C","D"],"correctAnswer":1}]}`, nil
		},
	}
	svc := &QuizService{userRepo: newMockUserRepo(user), quizRepo: &mockQuizRepo{}, skillRepo: newMockSkillRepo(), ai: ai}

	quiz, err := svc.Generate(context.Background(), "u1", "Data Science")
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, "What is a DataFrame?", quiz.Questions[0].Question)
	assert.Equal(t, 1, quiz.Questions[0].CorrectAnswer)
}

func TestGenerateFallsBackOnAIError(t *testing.T) {
	user := testUser("u1", "Data Science")
	svc := &QuizService{userRepo: newMockUserRepo(user), quizRepo: &mockQuizRepo{}, skillRepo: newMockSkillRepo(), ai: &mockAI{}}

	quiz, err := svc.Generate(context.Background(), "u1", "Data Science")
	require.NoError(t, err)
	assert.Len(t, quiz.Questions, fallbackQuizSize)
}

func TestGenerateFallsBackOnMalformedPayload(t *testing.T) {
	user := testUser("u1", "DevOps")
	ai := &mockAI{
		completeJSON: func(ctx context.Context, system, prompt string) (string, error) {
			return `{"questions":[{"question":"Too few options","options":["A","B"],"correctAnswer":0}]}`, nil
		},
	}
	svc := &QuizService{userRepo: newMockUserRepo(user), quizRepo: &mockQuizRepo{}, skillRepo: newMockSkillRepo(), ai: ai}

	quiz, err := svc.Generate(context.Background(), "u1", "DevOps")
	require.NoError(t, err)
	assert.Len(t, quiz.Questions, fallbackQuizSize)
}

func TestGenerateUnknownUser(t *testing.T) {
	svc := &QuizService{userRepo: newMockUserRepo(), quizRepo: &mockQuizRepo{}, skillRepo: newMockSkillRepo(), ai: &mockAI{}}

	_, err := svc.Generate(context.Background(), "missing", "DevOps")
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func tenQuestions() []model.QuizQuestion {
	qs := make([]model.QuizQuestion, 10)
	for i := range qs {
		qs[i] = model.QuizQuestion{
			Question:      "Question",
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: i % 4,
		}
	}
	return qs
}

func TestScoreAdvanced(t *testing.T) {
	user := testUser("u1")
	quizRepo := &mockQuizRepo{}
	skillRepo := newMockSkillRepo()
	svc := &QuizService{userRepo: newMockUserRepo(user), quizRepo: quizRepo, skillRepo: skillRepo, ai: &mockAI{}}

	questions := tenQuestions()
	answers := make([]int, 10)
	for i := range answers {
		if i < 7 {
			answers[i] = questions[i].CorrectAnswer
		} else {
			answers[i] = (questions[i].CorrectAnswer + 1) % 4
		}
	}

	result, err := svc.Score("u1", "Web Development", questions, answers)
	require.NoError(t, err)
	assert.Equal(t, 7, result.Score)
	assert.Equal(t, 10, result.TotalQuestions)
	assert.InDelta(t, 70.0, result.Percentage, 0.001)
	assert.Equal(t, model.Advanced, result.SkillLevel)
	assert.Equal(t, "attempt-1", result.AttemptID)
	require.Len(t, result.Results, 10)
	assert.True(t, result.Results[0].Correct)
	assert.False(t, result.Results[9].Correct)

	require.Len(t, quizRepo.saved, 1)
	assert.Equal(t, "u1", quizRepo.saved[0].UserID)
	assert.Equal(t, model.Advanced, skillRepo.skills["u1"]["Web Development"])
}

func TestScoreBeginner(t *testing.T) {
	user := testUser("u1")
	skillRepo := newMockSkillRepo()
	svc := &QuizService{userRepo: newMockUserRepo(user), quizRepo: &mockQuizRepo{}, skillRepo: skillRepo, ai: &mockAI{}}

	questions := tenQuestions()
	answers := make([]int, 10)
	for i := range answers {
		if i < 3 {
			answers[i] = questions[i].CorrectAnswer
		} else {
			answers[i] = (questions[i].CorrectAnswer + 1) % 4
		}
	}

	result, err := svc.Score("u1", "Web Development", questions, answers)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Score)
	assert.Equal(t, model.Beginner, result.SkillLevel)
	assert.Equal(t, model.Beginner, skillRepo.skills["u1"]["Web Development"])
}

func TestScoreOverwritesSkill(t *testing.T) {
	user := testUser("u1")
	skillRepo := newMockSkillRepo()
	skillRepo.Upsert("u1", "Web Development", model.Advanced)
	svc := &QuizService{userRepo: newMockUserRepo(user), quizRepo: &mockQuizRepo{}, skillRepo: skillRepo, ai: &mockAI{}}

	questions := tenQuestions()
	answers := make([]int, 10)
	for i := range answers {
		answers[i] = (questions[i].CorrectAnswer + 1) % 4
	}

	_, err := svc.Score("u1", "Web Development", questions, answers)
	require.NoError(t, err)
	assert.Equal(t, model.Beginner, skillRepo.skills["u1"]["Web Development"])
}

func TestScoreAnswerCountMismatch(t *testing.T) {
	user := testUser("u1")
	svc := &QuizService{userRepo: newMockUserRepo(user), quizRepo: &mockQuizRepo{}, skillRepo: newMockSkillRepo(), ai: &mockAI{}}

	_, err := svc.Score("u1", "Web Development", tenQuestions(), []int{0, 1})
	assert.ErrorIs(t, err, util.ErrAnswerCountMismatch)
}

func TestScoreUnknownUser(t *testing.T) {
	svc := &QuizService{userRepo: newMockUserRepo(), quizRepo: &mockQuizRepo{}, skillRepo: newMockSkillRepo(), ai: &mockAI{}}

	questions := tenQuestions()
	answers := make([]int, 10)
	_, err := svc.Score("missing", "Web Development", questions, answers)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
