package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/civicfix/configs"
	_ "github.com/civicfix/docs" // swagger 文档
	"github.com/civicfix/internal/handlers"
	"github.com/civicfix/internal/repositories"
	"github.com/civicfix/internal/services"
	"github.com/civicfix/pkg/email"
)

// SetupRoutes 初始化所有路由。
// mailSender 可为 nil，此时不发送派单通知邮件。
func SetupRoutes(router *gin.Engine, database *gorm.DB, mailSender email.Sender) {
	// 前端跨域访问
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// 仓库层
	complaintRepo := repositories.NewGormComplaintRepository(database)
	ratingRepo := repositories.NewGormRatingRepository(database)
	userRepo := repositories.NewGormUserRepository(database)
	commentRepo := repositories.NewGormCommentRepository(database)
	departmentRepo := repositories.NewGormDepartmentRepository(database)
	photoRepo := repositories.NewGormPhotoRepository(database)
	badgeRepo := repositories.NewGormBadgeRepository(database)

	// 服务层
	badgeService := services.NewBadgeService(badgeRepo)
	complaintService := services.NewComplaintService(complaintRepo, badgeService, mailSender, configs.AppConfig.PointsPerReport)
	ratingService := services.NewRatingService(ratingRepo)
	commentService := services.NewCommentService(commentRepo, complaintRepo)
	photoService := services.NewPhotoService(photoRepo)

	// 处理器层
	authHandler := handlers.NewAuthHandler(userRepo)
	complaintHandler := handlers.NewComplaintHandler(complaintService, commentService, ratingService, photoService)
	technicianHandler := handlers.NewTechnicianHandler(complaintService, photoService)
	adminHandler := handlers.NewAdminHandler(complaintService, ratingService, userRepo)
	departmentHandler := handlers.NewDepartmentHandler(complaintService, departmentRepo, userRepo)
	badgeHandler := handlers.NewBadgeHandler(badgeService)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	SetupAuthRoutes(api, authHandler)
	SetupComplaintRoutes(api, complaintHandler, badgeHandler)
	SetupTechnicianRoutes(api, technicianHandler)
	SetupDepartmentRoutes(api, departmentHandler)
	SetupAdminRoutes(api, adminHandler, departmentHandler)
}
