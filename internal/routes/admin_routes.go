package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/civicfix/internal/auth"
	"github.com/civicfix/internal/handlers"
	"github.com/civicfix/internal/models"
)

// SetupAdminRoutes 设置管理员后台路由
func SetupAdminRoutes(router *gin.RouterGroup, adminHandler *handlers.AdminHandler, departmentHandler *handlers.DepartmentHandler) {
	apiV1 := router.Group("/v1")
	adminGroup := apiV1.Group("/admin")
	adminGroup.Use(auth.JWTMiddleware(), auth.RequireRoles(models.RoleAdmin))
	{
		adminGroup.GET("/complaints", adminHandler.GetComplaints)
		adminGroup.GET("/complaints/export", adminHandler.ExportComplaints)
		adminGroup.GET("/complaints/stats", adminHandler.GetStatusCounts)
		adminGroup.GET("/complaints/map", adminHandler.GetComplaintMap)
		adminGroup.PUT("/complaints/:id/status", adminHandler.ChangeComplaintStatus)
		adminGroup.POST("/complaints/:id/assign", adminHandler.AssignComplaint)
		adminGroup.DELETE("/complaints/:id", adminHandler.PurgeComplaint)

		adminGroup.GET("/scoreboards/citizens", adminHandler.GetCitizenScoreboard)
		adminGroup.GET("/scoreboards/technicians", adminHandler.GetTechnicianScoreboard)
		adminGroup.GET("/scoreboards/departments", adminHandler.GetDepartmentRatings)

		adminGroup.POST("/staff", adminHandler.CreateStaff)

		adminGroup.POST("/departments", departmentHandler.CreateDepartment)
		adminGroup.PUT("/departments/:id", departmentHandler.UpdateDepartment)
		adminGroup.GET("/routes", departmentHandler.ListRoutes)
		adminGroup.POST("/routes", departmentHandler.CreateRoute)
		adminGroup.PUT("/routes/:id/active", departmentHandler.SetRouteActive)
	}
}
