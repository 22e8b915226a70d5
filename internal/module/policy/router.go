package policy

import (
	"club-activity-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (*ModulePolicy) InitRouter(r *gin.RouterGroup) {
	readGroup := r.Group("/university/multiplier-policies").Use(middleware.Auth(0))
	{
		readGroup.GET("", List)
		readGroup.GET("/:id", Get)
		readGroup.GET("/target/:type", ListByTarget)
	}

	writeGroup := r.Group("/university/multiplier-policies").Use(middleware.Auth(2))
	{
		writeGroup.POST("", Create)
		writeGroup.PUT("/:id", Update)
		writeGroup.DELETE("/:id", Delete)
	}
}
