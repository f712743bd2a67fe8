package di

import (
	"fmt"
	"time"

	"github.com/ecomai/backend-go/internal/config"
	"github.com/ecomai/backend-go/internal/database"
	"github.com/ecomai/backend-go/internal/llm"
	"github.com/ecomai/backend-go/internal/repository"
	"github.com/ecomai/backend-go/internal/services"
	"go.uber.org/dig"
	"gorm.io/gorm"
)

// RegisterProviders 注册所有依赖提供者
func RegisterProviders(container *dig.Container) error {
	// 注册配置
	if err := container.Provide(func() (*config.Config, error) {
		cfg := config.GetAppConfig()
		if cfg == nil {
			return nil, fmt.Errorf("config not loaded")
		}
		return cfg, nil
	}); err != nil {
		return err
	}

	// 注册数据库
	if err := container.Provide(func() (*gorm.DB, error) {
		if database.DB == nil {
			return nil, fmt.Errorf("database not initialized")
		}
		return database.DB, nil
	}); err != nil {
		return err
	}

	// 注册仓库
	if err := container.Provide(repository.NewChatRepository); err != nil {
		return err
	}
	if err := container.Provide(repository.NewCatalogRepository); err != nil {
		return err
	}

	// 注册LLM网关
	if err := container.Provide(func(cfg *config.Config) llm.Gateway {
		if client := llm.GetGlobalClient(); client != nil {
			return client
		}
		return llm.NewClient(&cfg.LLM)
	}); err != nil {
		return err
	}

	// 注册服务
	if err := container.Provide(func(repo repository.ChatRepository, gateway llm.Gateway) *services.ChatService {
		return services.NewChatServiceWith(repo, gateway)
	}); err != nil {
		return err
	}
	if err := container.Provide(func(cfg *config.Config, repo repository.ChatRepository) *services.UserService {
		return services.NewUserServiceWith(repo, database.RedisClient, time.Duration(cfg.Redis.TTL)*time.Second)
	}); err != nil {
		return err
	}
	if err := container.Provide(func(repo repository.ChatRepository) *services.ConversationService {
		return services.NewConversationServiceWith(repo)
	}); err != nil {
		return err
	}
	if err := container.Provide(func(catalog repository.CatalogRepository, chat repository.ChatRepository) *services.OrderService {
		return services.NewOrderServiceWith(catalog, chat)
	}); err != nil {
		return err
	}

	return nil
}
