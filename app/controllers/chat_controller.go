package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/ecomai/backend-go/internal/logger"
	"github.com/ecomai/backend-go/internal/services"
	"go.uber.org/zap"
)

// ChatController 聊天控制器
type ChatController struct {
	BaseController
	chatService *services.ChatService
}

// NewChatController 创建聊天控制器
func NewChatController(chatService *services.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

func (c *ChatController) Prepare() {
	if c.chatService == nil {
		c.chatService = services.NewChatService()
	}
}

// Chat 处理POST /api/chat
// 提供方失败降级为固定文案，仍返回200；只有用户/对话缺失或存储错误
// 才返回错误状态
func (c *ChatController) Chat() {
	var req services.ChatRequest
	if err := json.Unmarshal(c.Ctx.Input.RequestBody, &req); err != nil {
		c.JSONError(http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp, err := c.chatService.Chat(c.Ctx.Request.Context(), &req)
	if err != nil {
		logger.Warn("Chat request failed",
			zap.Uint("user_id", req.UserID),
			zap.String("ip", c.getClientIP()),
			zap.Error(err))
		c.HandleError(err)
		return
	}

	// 响应体形状为前端直接消费的契约，不加信封
	c.JSON(http.StatusOK, resp)
}
