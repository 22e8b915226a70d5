package policy

import (
	"context"
	"strconv"
	"strings"

	"club-activity-system/internal/global/database"
	"club-activity-system/internal/global/response"
	"club-activity-system/internal/model"
	"club-activity-system/internal/scoring"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PolicyReq 创建/更新倍率策略请求
type PolicyReq struct {
	TargetType      string   `json:"target_type" binding:"required,oneof=MEMBER CLUB"`
	LevelEvaluation string   `json:"level_evaluation" binding:"required"`
	ActivityType    string   `json:"activity_type" binding:"required"`
	ConditionType   string   `json:"condition_type" binding:"required,oneof=PERCENTAGE ABSOLUTE"`
	MinThreshold    *float64 `json:"min_threshold" binding:"required"`
	MaxThreshold    *float64 `json:"max_threshold" binding:"required"`
	Multiplier      *float64 `json:"multiplier" binding:"required"`
	Active          *bool    `json:"active"`
}

func (req *PolicyReq) toModel() model.MultiplierPolicy {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return model.MultiplierPolicy{
		TargetType:      req.TargetType,
		LevelEvaluation: req.LevelEvaluation,
		ActivityType:    req.ActivityType,
		ConditionType:   req.ConditionType,
		MinThreshold:    *req.MinThreshold,
		MaxThreshold:    *req.MaxThreshold,
		Multiplier:      *req.Multiplier,
		Active:          active,
	}
}

func (req *PolicyReq) validate() error {
	if *req.MinThreshold < 0 || *req.MaxThreshold <= *req.MinThreshold {
		return response.ErrInvalidRequest.WithTips("阈值区间无效，要求 0 <= min < max")
	}
	if *req.Multiplier <= 0 {
		return response.ErrInvalidRequest.WithTips("倍率必须为正数")
	}
	return nil
}

func parsePolicyID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("策略 ID 无效"))
		return 0, false
	}
	return uint(id), true
}

// checkConflict 与同组激活策略比对区间，excludeID 用于更新时排除自身
func checkConflict(ctx context.Context, p *model.MultiplierPolicy, excludeID uint) error {
	var existing []model.MultiplierPolicy
	db := database.DB.WithContext(ctx).
		Where("target_type = ? AND activity_type = ? AND condition_type = ? AND active = ?",
			p.TargetType, p.ActivityType, p.ConditionType, true)
	if excludeID > 0 {
		db = db.Where("id <> ?", excludeID)
	}
	if err := db.Find(&existing).Error; err != nil {
		return response.ErrDatabase.WithOrigin(err)
	}
	for i := range existing {
		if scoring.Overlaps(p, &existing[i]) {
			return response.ErrPolicyConflict.WithTips(
				"区间与策略 " + strconv.FormatUint(uint64(existing[i].ID), 10) + " 重叠")
		}
	}
	return nil
}

// List 全部倍率策略
func List(c *gin.Context) {
	var policies []model.MultiplierPolicy
	if err := database.DB.WithContext(c.Request.Context()).
		Order("target_type, condition_type, min_threshold").
		Find(&policies).Error; err != nil {
		log.Error("查询策略列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, policies)
}

// Get 按 ID 查询策略
func Get(c *gin.Context) {
	id, ok := parsePolicyID(c)
	if !ok {
		return
	}

	var policy model.MultiplierPolicy
	err := database.DB.WithContext(c.Request.Context()).First(&policy, "id = ?", id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("策略不存在"))
		return
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, policy)
}

// ListByTarget 按目标类型查询策略
func ListByTarget(c *gin.Context) {
	target := strings.ToUpper(c.Param("type"))
	if target != model.PolicyTargetMember && target != model.PolicyTargetClub {
		response.Fail(c, response.ErrInvalidRequest.WithTips("目标类型只支持 MEMBER 或 CLUB"))
		return
	}

	var policies []model.MultiplierPolicy
	if err := database.DB.WithContext(c.Request.Context()).
		Where("target_type = ?", target).
		Order("condition_type, min_threshold").
		Find(&policies).Error; err != nil {
		log.Error("查询策略失败", "error", err, "target_type", target)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, policies)
}

// Create 新建倍率策略，与同组激活策略区间重叠则拒绝
func Create(c *gin.Context) {
	var req PolicyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if err := req.validate(); err != nil {
		response.Fail(c, err)
		return
	}

	policy := req.toModel()
	ctx := c.Request.Context()
	if err := checkConflict(ctx, &policy, 0); err != nil {
		response.Fail(c, err)
		return
	}

	if err := database.DB.WithContext(ctx).Create(&policy).Error; err != nil {
		log.Error("创建策略失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("倍率策略已创建",
		"id", policy.ID,
		"target_type", policy.TargetType,
		"range", []float64{policy.MinThreshold, policy.MaxThreshold},
		"multiplier", policy.Multiplier,
	)
	response.Success(c, policy)
}

// Update 更新倍率策略，重叠校验排除自身
func Update(c *gin.Context) {
	id, ok := parsePolicyID(c)
	if !ok {
		return
	}

	var req PolicyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if err := req.validate(); err != nil {
		response.Fail(c, err)
		return
	}

	ctx := c.Request.Context()
	var policy model.MultiplierPolicy
	err := database.DB.WithContext(ctx).First(&policy, "id = ?", id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("策略不存在"))
		return
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	updated := req.toModel()
	updated.Model = policy.Model
	if err := checkConflict(ctx, &updated, id); err != nil {
		response.Fail(c, err)
		return
	}

	if err := database.DB.WithContext(ctx).Save(&updated).Error; err != nil {
		log.Error("更新策略失败", "error", err, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, updated)
}

// Delete 删除倍率策略
func Delete(c *gin.Context) {
	id, ok := parsePolicyID(c)
	if !ok {
		return
	}

	result := database.DB.WithContext(c.Request.Context()).Delete(&model.MultiplierPolicy{}, "id = ?", id)
	if result.Error != nil {
		log.Error("删除策略失败", "error", result.Error, "id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(result.Error))
		return
	}
	if result.RowsAffected == 0 {
		response.Fail(c, response.ErrNotFound.WithTips("策略不存在"))
		return
	}

	log.Info("倍率策略已删除", "id", id)
	response.Success(c)
}
