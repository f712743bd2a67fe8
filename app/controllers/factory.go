package controllers

import (
	"fmt"

	"go.uber.org/dig"

	"github.com/ecomai/backend-go/internal/services"
)

// ControllerFactory 控制器工厂
type ControllerFactory struct {
	container *dig.Container
}

// NewControllerFactory 创建控制器工厂
func NewControllerFactory(container *dig.Container) *ControllerFactory {
	return &ControllerFactory{
		container: container,
	}
}

// CreateChatController 创建聊天控制器
func (f *ControllerFactory) CreateChatController() (*ChatController, error) {
	if f.container == nil {
		return nil, fmt.Errorf("di container not initialized")
	}

	var chatService *services.ChatService
	err := f.container.Invoke(func(cs *services.ChatService) {
		chatService = cs
	})
	if err != nil {
		return nil, err
	}

	return NewChatController(chatService), nil
}

// CreateUserController 创建用户控制器
func (f *ControllerFactory) CreateUserController() (*UserController, error) {
	if f.container == nil {
		return nil, fmt.Errorf("di container not initialized")
	}

	var userService *services.UserService
	var conversationService *services.ConversationService
	err := f.container.Invoke(func(us *services.UserService, cs *services.ConversationService) {
		userService = us
		conversationService = cs
	})
	if err != nil {
		return nil, err
	}

	return NewUserController(userService, conversationService), nil
}

// CreateOrderController 创建订单控制器
func (f *ControllerFactory) CreateOrderController() (*OrderController, error) {
	if f.container == nil {
		return nil, fmt.Errorf("di container not initialized")
	}

	var orderService *services.OrderService
	err := f.container.Invoke(func(os *services.OrderService) {
		orderService = os
	})
	if err != nil {
		return nil, err
	}

	return NewOrderController(orderService), nil
}
