package controller

import (
	"errors"
	"skillsphere_backend/internal/service"
	"skillsphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	RecommendationService *service.RecommendationService
	EnrollmentService     *service.EnrollmentService
}

func NewCourseController(recommendationService *service.RecommendationService, enrollmentService *service.EnrollmentService) *CourseController {
	return &CourseController{
		RecommendationService: recommendationService,
		EnrollmentService:     enrollmentService,
	}
}

// swagger:model RecommendRequest
type RecommendRequest struct {
	Domain     string `json:"domain" binding:"required"`
	SkillLevel string `json:"skillLevel" binding:"required,oneof=Beginner Intermediate Advanced"`
}

// Recommend godoc
// @Summary Recommend courses for a domain and level
// @Description AI-picked courses with validated URLs, curated fallback set otherwise
// @Tags courses
// @Accept  json
// @Produce  json
// @Param   body body RecommendRequest true "Recommendation target"
// @Success 200 {object} util.Response{data=[]service.Course} "Success"
// @Failure 400 {object} util.Response "Invalid payload"
// @Router /api/courses/recommend [post]
func (c *CourseController) Recommend(ctx *gin.Context) {
	var req RecommendRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	courses, err := c.RecommendationService.Recommend(ctx.Request.Context(), req.Domain, req.SkillLevel)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, courses)
}

// RecommendForUser godoc
// @Summary Recommend courses for a user
// @Description Resolves the domain (path param or first selected) and the stored skill level
// @Tags courses
// @Produce  json
// @Param   userId path string true "User ID"
// @Param   domain path string false "Domain override"
// @Success 200 {object} util.Response{data=[]service.Course} "Success"
// @Failure 404 {object} util.Response "Unknown user"
// @Router /api/courses/recommendations/{userId} [get]
func (c *CourseController) RecommendForUser(ctx *gin.Context) {
	courses, err := c.RecommendationService.RecommendForUser(ctx.Request.Context(), ctx.Param("userId"), ctx.Param("domain"))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, courses)
}

// swagger:model EnrollRequest
type EnrollRequest struct {
	UserID string `json:"userId" binding:"required"`
	service.EnrollInput
}

// Enroll godoc
// @Summary Enroll in a course
// @Tags courses
// @Accept  json
// @Produce  json
// @Param   body body EnrollRequest true "Course details"
// @Success 201 {object} util.Response{data=model.Enrollment} "Created"
// @Failure 400 {object} util.Response "Invalid payload"
// @Failure 404 {object} util.Response "Unknown user"
// @Router /api/courses/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	var req EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrollment, err := c.EnrollmentService.Enroll(req.UserID, req.EnrollInput)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, enrollment)
}

// Enrolled godoc
// @Summary List a user's enrollments
// @Tags courses
// @Produce  json
// @Param   userId path string true "User ID"
// @Success 200 {object} util.Response{data=[]model.Enrollment} "Success"
// @Failure 404 {object} util.Response "Unknown user"
// @Router /api/user/{userId}/enrolled [get]
func (c *CourseController) Enrolled(ctx *gin.Context) {
	enrollments, err := c.EnrollmentService.ListByUser(ctx.Param("userId"))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, enrollments)
}

// swagger:model ProgressRequest
type ProgressRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

// UpdateProgress godoc
// @Summary Update course progress
// @Description Sets progress in [0,100]; 100 marks the enrollment completed
// @Tags courses
// @Accept  json
// @Produce  json
// @Param   courseId path string true "Enrollment ID"
// @Param   body body ProgressRequest true "New progress"
// @Success 200 {object} util.Response{data=model.Enrollment} "Success"
// @Failure 400 {object} util.Response "Progress out of range"
// @Failure 404 {object} util.Response "Unknown enrollment"
// @Router /api/courses/{courseId}/progress [patch]
func (c *CourseController) UpdateProgress(ctx *gin.Context) {
	var req ProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrollment, err := c.EnrollmentService.UpdateProgress(ctx.Param("courseId"), *req.Progress)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidProgress):
			util.BadRequest(ctx, "progress must be between 0 and 100")
		case errors.Is(err, util.ErrEnrollmentNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, enrollment)
}
