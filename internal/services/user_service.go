package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ecomai/backend-go/internal/config"
	"github.com/ecomai/backend-go/internal/database"
	apperrors "github.com/ecomai/backend-go/internal/errors"
	"github.com/ecomai/backend-go/internal/logger"
	"github.com/ecomai/backend-go/internal/models"
	"github.com/ecomai/backend-go/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// UserService 用户服务
// 用户创建后不可变，因此读取可以安全地走Redis旁路缓存；Redis未启用时
// 直接读库
type UserService struct {
	repo     repository.ChatRepository
	cache    *redis.Client
	cacheTTL time.Duration
	validate *validator.Validate
	logger   *zap.Logger
}

// CreateUserRequest 用户注册请求
type CreateUserRequest struct {
	FirstName     string  `json:"first_name" validate:"required"`
	LastName      string  `json:"last_name"`
	Email         string  `json:"email" validate:"omitempty,email"`
	Age           int     `json:"age" validate:"omitempty,gte=0,lte=150"`
	Gender        string  `json:"gender"`
	State         string  `json:"state"`
	Address       string  `json:"address"`
	PostalCode    string  `json:"postal_code"`
	City          string  `json:"city"`
	Country       string  `json:"country"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	TrafficSource string  `json:"traffic_source"`
}

// NewUserService 创建用户服务（使用全局数据库与Redis）
func NewUserService() *UserService {
	ttl := 300
	if cfg := config.GetAppConfig(); cfg != nil {
		ttl = cfg.Redis.TTL
	}
	return NewUserServiceWith(
		repository.NewChatRepository(database.DB),
		database.RedisClient,
		time.Duration(ttl)*time.Second,
	)
}

// NewUserServiceWith 使用显式依赖创建用户服务
func NewUserServiceWith(repo repository.ChatRepository, cache *redis.Client, cacheTTL time.Duration) *UserService {
	return &UserService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		validate: validator.New(),
		logger:   logger.GetLogger(),
	}
}

// CreateUser 注册新用户
func (s *UserService) CreateUser(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("invalid user fields").WithCause(err)
	}

	user := &models.User{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Age:           req.Age,
		Gender:        req.Gender,
		State:         req.State,
		Address:       req.Address,
		PostalCode:    req.PostalCode,
		City:          req.City,
		Country:       req.Country,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		TrafficSource: req.TrafficSource,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.Uint("user_id", user.ID))
	return user, nil
}

// GetUser 根据ID获取用户
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	if user, ok := s.cachedUser(ctx, id); ok {
		return user, nil
	}

	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cacheUser(ctx, user)
	return user, nil
}

// ListUsers 获取全部用户
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.ListUsers(ctx)
}

func userCacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *UserService) cachedUser(ctx context.Context, id uint) (*models.User, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, userCacheKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, false
	}
	return &user, true
}

func (s *UserService) cacheUser(ctx context.Context, user *models.User) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, userCacheKey(user.ID), data, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("Failed to cache user", zap.Uint("user_id", user.ID), zap.Error(err))
	}
}
