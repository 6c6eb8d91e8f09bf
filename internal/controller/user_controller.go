package controller

import (
	"errors"
	"skillsphere_backend/internal/service"
	"skillsphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// swagger:model OnboardRequest
type OnboardRequest struct {
	UserID  string   `json:"userId"`
	Name    string   `json:"name" binding:"required"`
	Email   string   `json:"email" binding:"required,email"`
	Domains []string `json:"domains" binding:"required,min=1"`
}

// Onboard godoc
// @Summary Onboard a learner
// @Description Creates a user with their selected learning domains, or updates an existing one
// @Tags user
// @Accept  json
// @Produce  json
// @Param   body body OnboardRequest true "Onboarding payload"
// @Success 201 {object} util.Response{data=model.User} "Created"
// @Failure 400 {object} util.Response "Invalid payload"
// @Failure 404 {object} util.Response "Unknown user"
// @Router /api/user/onboard [post]
func (c *UserController) Onboard(ctx *gin.Context) {
	var req OnboardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.Onboard(req.UserID, req.Name, req.Email, req.Domains)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, user)
}

// Get godoc
// @Summary Fetch a user profile
// @Description Returns the user together with assessed skill levels per domain
// @Tags user
// @Produce  json
// @Param   userId path string true "User ID"
// @Success 200 {object} util.Response{data=service.UserProfile} "Success"
// @Failure 404 {object} util.Response "Unknown user"
// @Router /api/user/{userId} [get]
func (c *UserController) Get(ctx *gin.Context) {
	profile, err := c.UserService.Get(ctx.Param("userId"))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, profile)
}

// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Domains []string `json:"domains"`
}

// Update godoc
// @Summary Update a user profile
// @Tags user
// @Accept  json
// @Produce  json
// @Param   userId path string true "User ID"
// @Param   body body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} util.Response{data=model.User} "Success"
// @Failure 404 {object} util.Response "Unknown user"
// @Router /api/user/{userId} [patch]
func (c *UserController) Update(ctx *gin.Context) {
	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(ctx.Param("userId"), req.Name, req.Email, req.Domains)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, user)
}

// Skills godoc
// @Summary List assessed skills
// @Description Skill level per assessed domain for the user
// @Tags user
// @Produce  json
// @Param   userId path string true "User ID"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 404 {object} util.Response "Unknown user"
// @Router /api/user/{userId}/skills [get]
func (c *UserController) Skills(ctx *gin.Context) {
	profile, err := c.UserService.Get(ctx.Param("userId"))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"skills": profile.Skills})
}
