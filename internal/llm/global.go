package llm

import (
	"github.com/ecomai/backend-go/internal/config"
)

// 全局LLM网关实例
var globalClient *Client

// InitGlobalClient 初始化全局LLM网关
func InitGlobalClient(cfg *config.LLMConfig) {
	globalClient = NewClient(cfg)
}

// GetGlobalClient 获取全局LLM网关实例
func GetGlobalClient() *Client {
	return globalClient
}
