package controller

import (
	"errors"
	"skillsphere_backend/internal/model"
	"skillsphere_backend/internal/service"
	"skillsphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// swagger:model GenerateQuizRequest
type GenerateQuizRequest struct {
	UserID  string   `json:"userId" binding:"required"`
	Domains []string `json:"domains" binding:"required,min=1"`
}

// Generate godoc
// @Summary Generate a skill quiz
// @Description AI-generated multiple choice quiz for a domain, static bank on AI failure
// @Tags quiz
// @Accept  json
// @Produce  json
// @Param   body body GenerateQuizRequest true "Quiz target"
// @Success 200 {object} util.Response{data=service.Quiz} "Success"
// @Failure 400 {object} util.Response "Invalid payload"
// @Failure 404 {object} util.Response "Unknown user"
// @Router /api/quiz/generate [post]
func (c *QuizController) Generate(ctx *gin.Context) {
	var req GenerateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Generate(ctx.Request.Context(), req.UserID, req.Domains[0])
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, quiz)
}

// swagger:model SubmitQuizRequest
type SubmitQuizRequest struct {
	UserID    string               `json:"userId" binding:"required"`
	Domain    string               `json:"domain" binding:"required"`
	Questions []model.QuizQuestion `json:"questions" binding:"required"`
	Answers   []int                `json:"answers" binding:"required"`
}

// Submit godoc
// @Summary Submit quiz answers
// @Description Grades the submission, stores the attempt and updates the domain skill level
// @Tags quiz
// @Accept  json
// @Produce  json
// @Param   body body SubmitQuizRequest true "Submission"
// @Success 200 {object} util.Response{data=service.QuizResult} "Success"
// @Failure 400 {object} util.Response "Invalid payload"
// @Failure 404 {object} util.Response "Unknown user"
// @Router /api/quiz/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.Score(req.UserID, req.Domain, req.Questions, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAnswerCountMismatch):
			util.BadRequest(ctx, "answers do not match questions")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// History godoc
// @Summary List past quiz attempts
// @Tags quiz
// @Produce  json
// @Param   userId query string true "User ID"
// @Success 200 {object} util.Response{data=[]model.QuizAttempt} "Success"
// @Failure 400 {object} util.Response "Missing userId"
// @Router /api/quiz/history [get]
func (c *QuizController) History(ctx *gin.Context) {
	userID := ctx.Query("userId")
	if userID == "" {
		util.BadRequest(ctx, "userId is required")
		return
	}

	attempts, err := c.QuizService.History(userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, attempts)
}
