package controller

import (
	"errors"
	"skillsphere_backend/internal/service"
	"skillsphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ScheduleController struct {
	ScheduleService *service.ScheduleService
}

func NewScheduleController(scheduleService *service.ScheduleService) *ScheduleController {
	return &ScheduleController{ScheduleService: scheduleService}
}

// swagger:model CreateScheduleRequest
type CreateScheduleRequest struct {
	UserID string `json:"userId" binding:"required"`
	service.ScheduleItemInput
}

// Create godoc
// @Summary Add a schedule item
// @Tags schedule
// @Accept  json
// @Produce  json
// @Param   body body CreateScheduleRequest true "Schedule item"
// @Success 201 {object} util.Response{data=model.ScheduleItem} "Created"
// @Failure 400 {object} util.Response "Invalid payload"
// @Failure 404 {object} util.Response "Unknown user"
// @Router /api/schedule [post]
func (c *ScheduleController) Create(ctx *gin.Context) {
	var req CreateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	item, err := c.ScheduleService.Create(req.UserID, req.ScheduleItemInput)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, item)
}

// List godoc
// @Summary List a user's schedule
// @Description Items ordered by due date, undated items last
// @Tags schedule
// @Produce  json
// @Param   userId path string true "User ID"
// @Success 200 {object} util.Response{data=[]model.ScheduleItem} "Success"
// @Failure 404 {object} util.Response "Unknown user"
// @Router /api/user/{userId}/schedules [get]
func (c *ScheduleController) List(ctx *gin.Context) {
	items, err := c.ScheduleService.List(ctx.Param("userId"))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, items)
}

// swagger:model GenerateScheduleRequest
type GenerateScheduleRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// Generate godoc
// @Summary Generate a weekly study plan
// @Description AI-built 7-day plan from active enrollments, fixed rotation on AI failure
// @Tags schedule
// @Accept  json
// @Produce  json
// @Param   body body GenerateScheduleRequest true "Target user"
// @Success 201 {object} util.Response{data=[]model.ScheduleItem} "Created"
// @Failure 404 {object} util.Response "Unknown user"
// @Router /api/schedule/generate [post]
func (c *ScheduleController) Generate(ctx *gin.Context) {
	var req GenerateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	items, err := c.ScheduleService.Generate(ctx.Request.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, items)
}

// swagger:model UpdateScheduleRequest
type UpdateScheduleRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// Update godoc
// @Summary Toggle item completion
// @Tags schedule
// @Accept  json
// @Produce  json
// @Param   scheduleId path string true "Schedule item ID"
// @Param   body body UpdateScheduleRequest true "Completion state"
// @Success 200 {object} util.Response{data=model.ScheduleItem} "Success"
// @Failure 404 {object} util.Response "Unknown item"
// @Router /api/schedule/{scheduleId} [patch]
func (c *ScheduleController) Update(ctx *gin.Context) {
	var req UpdateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	item, err := c.ScheduleService.SetCompletion(ctx.Param("scheduleId"), *req.Completed)
	if err != nil {
		if errors.Is(err, util.ErrScheduleNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, item)
}

// Complete godoc
// @Summary Mark an item done
// @Tags schedule
// @Produce  json
// @Param   itemId path string true "Schedule item ID"
// @Success 200 {object} util.Response{data=model.ScheduleItem} "Success"
// @Failure 404 {object} util.Response "Unknown item"
// @Router /api/schedule/{itemId}/complete [post]
func (c *ScheduleController) Complete(ctx *gin.Context) {
	item, err := c.ScheduleService.Complete(ctx.Param("itemId"))
	if err != nil {
		if errors.Is(err, util.ErrScheduleNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, item)
}
