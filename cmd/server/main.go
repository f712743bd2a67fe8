package main

import (
	"log"
	"strconv"

	"github.com/beego/beego/v2/server/web"
	"github.com/ecomai/backend-go/app/bootstrap"
	"github.com/ecomai/backend-go/app/router"
	"github.com/ecomai/backend-go/internal/config"
	"github.com/ecomai/backend-go/internal/logger"
	"go.uber.org/zap"
)

func main() {
	app, err := bootstrap.Init()
	if err != nil {
		log.Fatalf("failed to bootstrap application: %v", err)
	}
	defer app.Shutdown()

	// 初始化路由
	router.Init()

	// 配置Beego全局设置
	web.BConfig.AppName = "Chat API"
	web.BConfig.CopyRequestBody = true
	web.BConfig.RunMode = config.AppConfig.Server.Env

	// 端口取配置（PORT环境变量已在配置层覆盖）
	port := 8000
	if n, err := strconv.Atoi(config.AppConfig.Server.Port); err == nil {
		port = n
	}
	web.BConfig.Listen.HTTPPort = port

	logger.Info("🚀 Starting Chat API", zap.Int("port", port), zap.String("env", config.AppConfig.Server.Env))
	web.Run()
}
