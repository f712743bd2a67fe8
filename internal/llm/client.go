package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ecomai/backend-go/internal/config"
	"github.com/ecomai/backend-go/internal/logger"
	"github.com/ecomai/backend-go/internal/metrics"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// FallbackReply 提供方调用失败时的固定回复
// 聊天端点永不因为提供方不可用而报错，始终降级为该文案
const FallbackReply = "Sorry, there was an issue contacting the AI service."

// Turn 对话转录中的一轮，发送给提供方前时间戳和ID已剥离
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Gateway LLM网关接口
type Gateway interface {
	Complete(ctx context.Context, transcript []Turn) string
	Ready() bool
}

// Client 基于OpenAI兼容接口的LLM网关实现
// BaseURL可指向Groq等兼容服务
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
	logger      *zap.Logger
}

// NewClient 创建LLM网关
func NewClient(cfg *config.LLMConfig) *Client {
	apiKey := strings.TrimSpace(cfg.APIKey)
	clientConfig := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		api:         openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		timeout:     cfg.RequestTimeout(),
		logger:      logger.GetLogger(),
	}
}

// Ready 检查网关是否就绪
func (c *Client) Ready() bool {
	return c != nil && c.api != nil
}

// Complete 将转录发送给提供方并返回回复文本
// 任何失败（非200、网络错误、响应不完整）都记录日志并返回固定降级文案，
// 不会作为错误上抛；连接级失败允许一次重试
func (c *Client) Complete(ctx context.Context, transcript []Turn) string {
	if !c.Ready() {
		logger.Error("LLM gateway not initialized, returning fallback reply")
		metrics.LLMFallbacksTotal.Inc()
		return FallbackReply
	}

	messages := make([]openai.ChatCompletionMessage, len(transcript))
	for i, turn := range transcript {
		messages[i] = openai.ChatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		}
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil && isConnectionError(err) && ctx.Err() == nil {
		// 仅连接级失败重试一次，HTTP错误状态不重试
		c.logger.Warn("LLM request failed at connection level, retrying once", zap.Error(err))
		resp, err = c.api.CreateChatCompletion(ctx, req)
	}

	if err != nil {
		c.logger.Error("LLM provider call failed",
			zap.String("model", c.model),
			zap.Error(err))
		metrics.LLMFailuresTotal.Inc()
		metrics.LLMFallbacksTotal.Inc()
		return FallbackReply
	}

	if len(resp.Choices) == 0 {
		c.logger.Error("LLM provider returned no choices", zap.String("model", c.model))
		metrics.LLMFailuresTotal.Inc()
		metrics.LLMFallbacksTotal.Inc()
		return FallbackReply
	}

	c.logger.Info("LLM completion success",
		zap.String("model", c.model),
		zap.Int("turns", len(transcript)),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens))

	return resp.Choices[0].Message.Content
}

// isConnectionError 判断是否为连接级失败
// 提供方返回了HTTP状态码的错误（APIError/RequestError）不属于连接级失败
func isConnectionError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return false
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	return true
}
