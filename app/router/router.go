package router

import (
	"github.com/ecomai/backend-go/app/controllers"
	"github.com/ecomai/backend-go/app/middleware"
	"github.com/ecomai/backend-go/internal/di"
	"github.com/ecomai/backend-go/internal/logger"
	"github.com/beego/beego/v2/server/web"
	"go.uber.org/zap"
)

// Init registers all routes. Must be called after bootstrap.
func Init() {
	web.Router("/", &controllers.RootController{}, "get:Index")
	web.Router("/health", &controllers.HealthController{}, "get:Health")
	web.Router("/metrics", &controllers.MetricsController{}, "get:Metrics")

	web.InsertFilter("/*", web.BeforeRouter, middleware.CORSMiddleware)

	factory := controllers.NewControllerFactory(di.GetContainer())

	// 通过工厂创建控制器，容器未就绪时回退到零值实例
	// （控制器Prepare中会惰性初始化服务）
	chatController, err := factory.CreateChatController()
	if err != nil {
		logger.Warn("Falling back to lazily initialized chat controller", zap.Error(err))
		chatController = &controllers.ChatController{}
	}
	userController, err := factory.CreateUserController()
	if err != nil {
		logger.Warn("Falling back to lazily initialized user controller", zap.Error(err))
		userController = &controllers.UserController{}
	}
	orderController, err := factory.CreateOrderController()
	if err != nil {
		logger.Warn("Falling back to lazily initialized order controller", zap.Error(err))
		orderController = &controllers.OrderController{}
	}

	// 聊天路由
	web.Router("/api/chat", chatController, "post:Chat")

	// 用户路由
	web.Router("/users", userController, "get:List;post:Create")
	web.Router("/users/:user_id", userController, "get:Get")
	web.Router("/users/:user_id/conversations", userController, "get:GetConversations")

	// 订单路由
	web.Router("/orders", orderController, "get:List")
	web.Router("/orders/:order_id", orderController, "get:Get")
	web.Router("/users/:user_id/orders", orderController, "get:GetUserOrders")
}
