package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/civicfix/internal/auth"
	"github.com/civicfix/internal/handlers"
)

// SetupComplaintRoutes 设置市民投诉相关路由
func SetupComplaintRoutes(router *gin.RouterGroup, complaintHandler *handlers.ComplaintHandler, badgeHandler *handlers.BadgeHandler) {
	apiV1 := router.Group("/v1")
	apiV1.Use(auth.JWTMiddleware())
	{
		complaintGroup := apiV1.Group("/complaints")
		{
			complaintGroup.POST("", complaintHandler.SubmitComplaint)
			complaintGroup.GET("/mine", complaintHandler.GetMyComplaints)
			complaintGroup.GET("/:id", complaintHandler.GetComplaintDetail)
			complaintGroup.GET("/:id/comments", complaintHandler.GetComments)
			complaintGroup.POST("/:id/comments", complaintHandler.AddComment)
			complaintGroup.GET("/:id/rating", complaintHandler.GetComplaintRating)
			complaintGroup.PUT("/:id/rating", complaintHandler.RateComplaint)
			complaintGroup.GET("/:id/photos", complaintHandler.GetComplaintPhotos)
		}

		apiV1.GET("/badges", badgeHandler.ListBadges)
	}
}
