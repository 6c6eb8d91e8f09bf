package controller

import (
	"errors"
	"skillsphere_backend/internal/service"
	"skillsphere_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MentorController struct {
	MentorService *service.MentorService
}

func NewMentorController(mentorService *service.MentorService) *MentorController {
	return &MentorController{MentorService: mentorService}
}

// Recommendations godoc
// @Summary Mentor nudges for a user
// @Description Rule-based next-step suggestions from the user's current progress
// @Tags mentor
// @Produce  json
// @Param   userId path string true "User ID"
// @Success 200 {object} util.Response{data=[]service.Nudge} "Success"
// @Failure 404 {object} util.Response "Unknown user"
// @Router /api/mentor/recommendations/{userId} [get]
func (c *MentorController) Recommendations(ctx *gin.Context) {
	nudges, err := c.MentorService.Nudges(ctx.Param("userId"))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nudges)
}
