package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/civicfix/internal/auth"
	"github.com/civicfix/internal/handlers"
	"github.com/civicfix/internal/models"
)

// SetupTechnicianRoutes 设置技术员工作台路由
func SetupTechnicianRoutes(router *gin.RouterGroup, technicianHandler *handlers.TechnicianHandler) {
	apiV1 := router.Group("/v1")
	technicianGroup := apiV1.Group("/technician")
	technicianGroup.Use(auth.JWTMiddleware(), auth.RequireRoles(models.RoleTechnician))
	{
		technicianGroup.GET("/complaints", technicianHandler.GetAssignedComplaints)
		technicianGroup.POST("/complaints/:id/photos", technicianHandler.UploadWorkPhotos)
		technicianGroup.POST("/complaints/:id/fix", technicianHandler.MarkFixed)
	}
}
