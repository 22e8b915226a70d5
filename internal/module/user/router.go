package user

import (
	"club-activity-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (u *ModuleUser) InitRouter(r *gin.RouterGroup) {
	userGroup := r.Group("/user")
	{
		userGroup.POST("/login", Login)
		userGroup.POST("/register", Register)
	}

	authGroup := r.Group("/user").Use(middleware.Auth(0))
	{
		authGroup.GET("/me", GetMe)
		authGroup.POST("/change-password", ChangePassword)
	}
}
