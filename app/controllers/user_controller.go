package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/ecomai/backend-go/internal/services"
)

// UserController 用户控制器
type UserController struct {
	BaseController
	userService         *services.UserService
	conversationService *services.ConversationService
}

// NewUserController 创建用户控制器
func NewUserController(userService *services.UserService, conversationService *services.ConversationService) *UserController {
	return &UserController{
		userService:         userService,
		conversationService: conversationService,
	}
}

func (c *UserController) Prepare() {
	if c.userService == nil {
		c.userService = services.NewUserService()
	}
	if c.conversationService == nil {
		c.conversationService = services.NewConversationService()
	}
}

// Create 处理POST /users
func (c *UserController) Create() {
	var req services.CreateUserRequest
	if err := json.Unmarshal(c.Ctx.Input.RequestBody, &req); err != nil {
		c.JSONError(http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := c.userService.CreateUser(c.Ctx.Request.Context(), &req)
	if err != nil {
		c.HandleError(err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// List 处理GET /users
func (c *UserController) List() {
	users, err := c.userService.ListUsers(c.Ctx.Request.Context())
	if err != nil {
		c.HandleError(err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Get 处理GET /users/:user_id
func (c *UserController) Get() {
	userID, ok := c.ParamUint(":user_id")
	if !ok {
		c.JSONError(http.StatusBadRequest, "Invalid user id")
		return
	}

	user, err := c.userService.GetUser(c.Ctx.Request.Context(), userID)
	if err != nil {
		c.HandleError(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetConversations 处理GET /users/:user_id/conversations
// 返回对话ID到有序消息列表的映射
func (c *UserController) GetConversations() {
	userID, ok := c.ParamUint(":user_id")
	if !ok {
		c.JSONError(http.StatusBadRequest, "Invalid user id")
		return
	}

	history, err := c.conversationService.ListUserConversations(c.Ctx.Request.Context(), userID)
	if err != nil {
		c.HandleError(err)
		return
	}
	c.JSON(http.StatusOK, history)
}
