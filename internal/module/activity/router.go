package activity

import (
	"club-activity-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (*ModuleActivity) InitRouter(r *gin.RouterGroup) {
	memberGroup := r.Group("").Use(middleware.Auth(0))
	{
		memberGroup.GET("/clubs/:club_id/members/me/activity", GetMyScore)
	}

	leaderGroup := r.Group("").Use(middleware.Auth(1))
	{
		leaderGroup.GET("/clubs/:club_id/members/activity", ListClubScores)
		leaderGroup.PUT("/clubs/:club_id/members/activity/base-score", SetBaseScore)
		leaderGroup.POST("/clubs/:club_id/members/activity/calculate", Calculate)
	}

	adminGroup := r.Group("").Use(middleware.Auth(2))
	{
		adminGroup.GET("/admin/member-activities", ListAllScores)
	}
}
