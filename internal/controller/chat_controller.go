package controller

import (
	"errors"
	"skillsphere_backend/internal/service"
	"skillsphere_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	ChatService *service.ChatService
}

func NewChatController(chatService *service.ChatService) *ChatController {
	return &ChatController{ChatService: chatService}
}

// swagger:model ChatRequest
type ChatRequest struct {
	UserID  string `json:"userId" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// Send godoc
// @Summary Talk to the AI mentor
// @Description One chat turn; the reply degrades to canned guidance when the AI is unavailable
// @Tags chat
// @Accept  json
// @Produce  json
// @Param   body body ChatRequest true "Chat turn"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 400 {object} util.Response "Invalid payload"
// @Failure 404 {object} util.Response "Unknown user"
// @Router /api/chat [post]
func (c *ChatController) Send(ctx *gin.Context) {
	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, err := c.ChatService.Send(ctx.Request.Context(), req.UserID, req.Message)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"reply": reply})
}

// History godoc
// @Summary Fetch chat history
// @Tags chat
// @Produce  json
// @Param   userId path string true "User ID"
// @Param   limit query int false "Max messages, default 50"
// @Success 200 {object} util.Response{data=[]model.ChatMessage} "Success"
// @Failure 404 {object} util.Response "Unknown user"
// @Router /api/user/{userId}/chat-history [get]
func (c *ChatController) History(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	messages, err := c.ChatService.History(ctx.Param("userId"), limit)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, messages)
}
