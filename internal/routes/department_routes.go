package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/civicfix/internal/auth"
	"github.com/civicfix/internal/handlers"
	"github.com/civicfix/internal/models"
)

// SetupDepartmentRoutes 设置部门经理工作台路由
func SetupDepartmentRoutes(router *gin.RouterGroup, departmentHandler *handlers.DepartmentHandler) {
	apiV1 := router.Group("/v1")

	// 部门列表对所有登录用户可见
	apiV1.GET("/departments", auth.JWTMiddleware(), departmentHandler.ListDepartments)

	managerGroup := apiV1.Group("/department")
	managerGroup.Use(auth.JWTMiddleware(), auth.RequireRoles(models.RoleDepartmentManager))
	{
		managerGroup.GET("/complaints/available", departmentHandler.GetAvailableComplaints)
		managerGroup.GET("/technicians", departmentHandler.GetDepartmentTechnicians)
		managerGroup.POST("/complaints/:id/assign", departmentHandler.AssignToTechnician)
	}
}
