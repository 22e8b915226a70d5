package report

import (
	"club-activity-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (*ModuleReport) InitRouter(r *gin.RouterGroup) {
	commonGroup := r.Group("").Use(middleware.Auth(0))
	{
		commonGroup.GET("/clubs/:club_id/activity/summary", GetSummary)
		commonGroup.GET("/club-activity/:club_id", GetReport)
	}

	leaderGroup := r.Group("").Use(middleware.Auth(1))
	{
		leaderGroup.GET("/club-activity/:club_id/export", Export)
	}

	adminGroup := r.Group("").Use(middleware.Auth(2))
	{
		// 审批即锁定，锁定后该周期不可再重算
		adminGroup.POST("/club-activity/:club_id/approve", HandleApprove)
	}
}
