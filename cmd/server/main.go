package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/civicfix/configs"
	"github.com/civicfix/internal/routes"
	"github.com/civicfix/pkg/db"
	"github.com/civicfix/pkg/email"
)

// @title CivicFix API
// @version 1.0
// @description 市政投诉受理与派单系统 API
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 加载 .env 文件（如果存在）
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量。")
	}

	configs.LoadConfig()

	// 初始化数据库连接
	db.InitDB()        // 从 pkg/db 调用 InitDB
	defer db.CloseDB() // 确保在 main 函数退出时关闭数据库连接

	// SMTP 未配置时派单通知邮件降级为不发送
	mailSender, err := email.NewSMTPSender()
	if err != nil {
		log.Printf("警告: SMTP 未配置，派单通知邮件已禁用: %v", err)
		mailSender = nil
	}

	router := gin.Default()

	// 设置API路由
	routes.SetupRoutes(router, db.GetDB(), mailSender)

	port := configs.AppConfig.ServerPort
	log.Printf("Server starting on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
