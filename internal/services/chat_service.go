package services

import (
	"context"
	"time"

	"github.com/ecomai/backend-go/internal/database"
	apperrors "github.com/ecomai/backend-go/internal/errors"
	"github.com/ecomai/backend-go/internal/kafka"
	"github.com/ecomai/backend-go/internal/llm"
	"github.com/ecomai/backend-go/internal/logger"
	"github.com/ecomai/backend-go/internal/metrics"
	"github.com/ecomai/backend-go/internal/models"
	"github.com/ecomai/backend-go/internal/repository"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ChatService 聊天服务
// 单次请求的流水线：解析或创建对话 → 追加用户消息 → 构建转录 →
// 调用LLM网关 → 追加助手消息。对话创建与两次追加在同一个事务中提交，
// 任何存储失败整体回滚，后续读取不会看到部分状态
type ChatService struct {
	repo     repository.ChatRepository
	gateway  llm.Gateway
	validate *validator.Validate
	logger   *zap.Logger
}

// ChatRequest 聊天请求
type ChatRequest struct {
	UserID         uint   `json:"user_id" validate:"required"`
	Message        string `json:"message" validate:"required"`
	ConversationID uint   `json:"conversation_id,omitempty"`
}

// ChatResponse 聊天响应
type ChatResponse struct {
	ConversationID uint   `json:"conversation_id"`
	UserMessage    string `json:"user_message"`
	AIResponse     string `json:"ai_response"`
}

// NewChatService 创建聊天服务（使用全局数据库与LLM网关）
func NewChatService() *ChatService {
	return NewChatServiceWith(
		repository.NewChatRepository(database.DB),
		llm.GetGlobalClient(),
	)
}

// NewChatServiceWith 使用显式依赖创建聊天服务
func NewChatServiceWith(repo repository.ChatRepository, gateway llm.Gateway) *ChatService {
	return &ChatService{
		repo:     repo,
		gateway:  gateway,
		validate: validator.New(),
		logger:   logger.GetLogger(),
	}
}

// Chat 处理一次聊天请求
func (s *ChatService) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	start := time.Now()

	if err := s.validate.Struct(req); err != nil {
		metrics.ChatRequestsTotal.WithLabelValues("invalid").Inc()
		return nil, apperrors.NewValidationError("user_id and message are required").WithCause(err)
	}

	var (
		resp      *ChatResponse
		userMsg   *models.Message
		replyMsg  *models.Message
		createdAt time.Time
	)

	err := s.repo.Transaction(ctx, func(tx repository.ChatRepository) error {
		user, err := tx.GetUser(ctx, req.UserID)
		if err != nil {
			return err
		}

		// 解析或创建对话；调用方提供的对话ID必须存在且归属该用户
		var conversation *models.Conversation
		if req.ConversationID != 0 {
			conversation, err = tx.GetConversation(ctx, req.ConversationID)
			if err != nil {
				return err
			}
			if conversation.UserID != user.ID {
				return apperrors.NewNotFoundError("conversation")
			}
		} else {
			conversation, err = tx.CreateConversation(ctx, user.ID)
			if err != nil {
				return err
			}
			s.logger.Info("Created new conversation",
				zap.Uint("conversation_id", conversation.ID),
				zap.Uint("user_id", user.ID))
		}

		// 记录用户消息
		userMsg, err = tx.AppendMessage(ctx, conversation.ID, models.RoleUser, req.Message)
		if err != nil {
			return err
		}

		// 读取完整有序历史（含刚追加的消息）并投影为转录
		history, err := tx.ListMessages(ctx, conversation.ID)
		if err != nil {
			return err
		}
		transcript := make([]llm.Turn, len(history))
		for i, msg := range history {
			transcript[i] = llm.Turn{Role: msg.Role, Content: msg.Content}
		}

		// 网关永不返回错误，失败时降级为固定文案
		reply := s.gateway.Complete(ctx, transcript)

		// 记录助手回复（降级文案同样入库，成为转录的一部分）
		replyMsg, err = tx.AppendMessage(ctx, conversation.ID, models.RoleAssistant, reply)
		if err != nil {
			return err
		}

		createdAt = conversation.CreatedAt
		resp = &ChatResponse{
			ConversationID: conversation.ID,
			UserMessage:    req.Message,
			AIResponse:     reply,
		}
		return nil
	})

	if err != nil {
		status := "error"
		if apperrors.IsNotFound(err) {
			status = "not_found"
		}
		metrics.ChatRequestsTotal.WithLabelValues(status).Inc()
		return nil, err
	}

	// 异步发布对话事件（Kafka未启用时为空操作，失败只记录日志）
	go s.publishEvents(req.UserID, resp.ConversationID, userMsg, replyMsg)

	metrics.ChatRequestsTotal.WithLabelValues("ok").Inc()
	metrics.ChatRequestDuration.Observe(time.Since(start).Seconds())

	s.logger.Info("Chat exchange completed",
		zap.Uint("conversation_id", resp.ConversationID),
		zap.Uint("user_id", req.UserID),
		zap.Time("conversation_created_at", createdAt),
		zap.Duration("elapsed", time.Since(start)))

	return resp, nil
}

func (s *ChatService) publishEvents(userID, conversationID uint, msgs ...*models.Message) {
	for _, msg := range msgs {
		if msg == nil {
			continue
		}
		if err := kafka.SendConversationMessage(conversationID, userID, msg.Role, msg.Content, msg.CreatedAt); err != nil {
			s.logger.Error("Failed to publish conversation event",
				zap.Uint("conversation_id", conversationID),
				zap.Error(err))
		}
	}
}
