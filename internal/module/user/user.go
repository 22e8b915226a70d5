package user

import (
	"strings"

	"club-activity-system/internal/global/context"
	"club-activity-system/internal/global/database"
	"club-activity-system/internal/global/jwt"
	"club-activity-system/internal/global/response"
	"club-activity-system/internal/model"
	"club-activity-system/tools"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// LoginReq 登录请求
type LoginReq struct {
	StudentCode string `json:"student_code" binding:"required"` // 学号，唯一标识用户
	Password    string `json:"password" binding:"required"`
}

// Login 处理用户登录请求
func Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定登录请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	var user model.User
	err := database.DB.Where("student_code = ?", req.StudentCode).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		log.Warn("用户不存在", "student_code", req.StudentCode)
		response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
		return
	case err != nil:
		log.Error("数据库查询失败", "error", err, "student_code", req.StudentCode)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if !tools.PasswordCompare(req.Password, user.Password) {
		log.Warn("密码错误", "student_code", req.StudentCode)
		response.Fail(c, response.ErrInvalidPassword)
		return
	}

	log.Info("用户登录成功",
		"student_code", user.StudentCode,
		"role_id", user.RoleID)

	response.Success(c, map[string]interface{}{
		"token": jwt.CreateToken(jwt.Payload{
			UserID:      user.ID,
			StudentCode: user.StudentCode,
			RoleID:      user.RoleID,
		}),
		"student_code": user.StudentCode,
		"role_id":      user.RoleID,
	})
}

type registerReq struct {
	LoginReq
	FullName string `json:"full_name" binding:"required"`
}

// Register 处理用户注册请求
func Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定注册请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if err := validatePasswordStrength(req.Password); err != nil {
		log.Warn("密码强度验证失败", "error", err, "student_code", req.StudentCode)
		response.Fail(c, response.ErrInvalidRequest.WithTips(err.Error()))
		return
	}

	var existingUser model.User
	err := database.DB.Where("student_code = ?", req.StudentCode).First(&existingUser).Error
	if err == nil {
		log.Warn("用户已存在", "student_code", req.StudentCode)
		response.Fail(c, response.ErrAlreadyExists)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("数据库查询失败", "error", err, "student_code", req.StudentCode)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	user := model.User{
		StudentCode: req.StudentCode,
		Password:    tools.PasswordEncrypt(req.Password),
		FullName:    req.FullName,
		RoleID:      0,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		log.Error("创建用户失败", "error", err, "student_code", req.StudentCode)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("用户注册成功",
		"student_code", user.StudentCode,
		"full_name", user.FullName)

	response.Success(c)
}

// ChangePasswordReq 修改密码请求
type ChangePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword 验证旧密码后更新新密码
func ChangePassword(c *gin.Context) {
	userPayload, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定修改密码请求失败", "error", err, "student_code", userPayload.StudentCode)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if err := validatePasswordStrength(req.NewPassword); err != nil {
		log.Warn("新密码强度验证失败", "error", err, "student_code", userPayload.StudentCode)
		response.Fail(c, response.ErrInvalidRequest.WithTips(err.Error()))
		return
	}

	var user model.User
	if err := database.DB.Where("student_code = ?", userPayload.StudentCode).First(&user).Error; err != nil {
		log.Error("查询用户失败", "error", err, "student_code", userPayload.StudentCode)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if !tools.PasswordCompare(req.OldPassword, user.Password) {
		log.Warn("旧密码错误", "student_code", userPayload.StudentCode)
		response.Fail(c, response.ErrInvalidPassword)
		return
	}

	if err := database.DB.Model(&user).Update("password", tools.PasswordEncrypt(req.NewPassword)).Error; err != nil {
		log.Error("更新密码失败", "error", err, "student_code", userPayload.StudentCode)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("用户修改密码成功", "student_code", user.StudentCode)

	response.Success(c)
}

// GetMe 返回当前登录用户
func GetMe(c *gin.Context) {
	userPayload, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	var user model.User
	if err := database.DB.Where("student_code = ?", userPayload.StudentCode).First(&user).Error; err != nil {
		log.Error("查询用户失败", "error", err, "student_code", userPayload.StudentCode)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, user)
}

// validatePasswordStrength 验证密码强度
func validatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("密码长度必须至少8字符")
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		switch {
		case strings.ContainsRune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ", char):
			hasLetter = true
		case strings.ContainsRune("0123456789", char):
			hasDigit = true
		}
	}

	if !hasLetter {
		return errors.New("密码必须包含至少一个字母")
	}
	if !hasDigit {
		return errors.New("密码必须包含至少一个数字")
	}
	return nil
}
