package report

import (
	"fmt"
	"net/http"
	"strconv"

	gctx "club-activity-system/internal/global/context"
	"club-activity-system/internal/global/database"
	"club-activity-system/internal/global/response"
	"club-activity-system/internal/model"
	"club-activity-system/tools"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func parseClubID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("club_id"), 10, 32)
	if err != nil || id == 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("社团 ID 无效"))
		return 0, false
	}
	return uint(id), true
}

func parsePeriod(c *gin.Context) (tools.Period, bool) {
	p, err := tools.ParsePeriod(c.Query("year"), c.Query("month"))
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return p, false
	}
	return p, true
}

// GetSummary 查询社团某月的活跃度汇总
func GetSummary(c *gin.Context) {
	clubID, ok := parseClubID(c)
	if !ok {
		return
	}
	p, ok := parsePeriod(c)
	if !ok {
		return
	}

	var summary model.ClubActivitySummary
	err := database.DB.WithContext(c.Request.Context()).
		Preload("MemberOfMonth").
		Where("club_id = ? AND year = ? AND month = ?", clubID, p.Year, p.Month).
		First(&summary).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("该周期尚未计算"))
		return
	case err != nil:
		log.Error("查询汇总失败", "error", err, "club_id", clubID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var scores []model.MemberActivityScore
	if err := database.DB.WithContext(c.Request.Context()).
		Where("club_id = ? AND year = ? AND month = ?", clubID, p.Year, p.Month).
		Order("membership_id ASC").
		Find(&scores).Error; err != nil {
		log.Error("查询成员成绩失败", "error", err, "club_id", clubID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, map[string]interface{}{
		"summary": summary,
		"members": scores,
	})
}

// GetReport 查询社团某月的报告
func GetReport(c *gin.Context) {
	clubID, ok := parseClubID(c)
	if !ok {
		return
	}
	p, ok := parsePeriod(c)
	if !ok {
		return
	}

	var report model.ClubActivityReport
	err := database.DB.WithContext(c.Request.Context()).
		Preload("Summary.MemberOfMonth").
		Where("club_id = ? AND year = ? AND month = ?", clubID, p.Year, p.Month).
		First(&report).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("该周期尚未计算"))
		return
	case err != nil:
		log.Error("查询报告失败", "error", err, "club_id", clubID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, report)
}

// HandleApprove 校级管理员审批并锁定报告
func HandleApprove(c *gin.Context) {
	clubID, ok := parseClubID(c)
	if !ok {
		return
	}
	p, ok := parsePeriod(c)
	if !ok {
		return
	}
	payload, ok := gctx.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	report, err := Approve(c.Request.Context(), clubID, p, payload.StudentCode)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, report)
}

// Export 导出社团某月成员成绩为 Excel
//
// 负责人只能导出自己担任负责人的社团，校级管理员不受限
func Export(c *gin.Context) {
	clubID, ok := parseClubID(c)
	if !ok {
		return
	}
	p, ok := parsePeriod(c)
	if !ok {
		return
	}
	payload, ok := gctx.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	if payload.RoleID < 2 {
		leads, err := isClubLeader(c, payload.UserID, clubID)
		if err != nil {
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
		if !leads {
			response.Fail(c, response.ErrForbidden.WithTips("只能导出本人负责的社团"))
			return
		}
	}

	var scores []model.MemberActivityScore
	if err := database.DB.WithContext(c.Request.Context()).
		Where("club_id = ? AND year = ? AND month = ?", clubID, p.Year, p.Month).
		Order("membership_id ASC").
		Find(&scores).Error; err != nil {
		log.Error("查询成员成绩失败", "error", err, "club_id", clubID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if len(scores) == 0 {
		response.Fail(c, response.ErrNotFound.WithTips("该周期尚未计算"))
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := tools.ExportToExcel(f, p.String(), scores); err != nil {
		log.Error("生成 Excel 失败", "error", err, "club_id", clubID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	filename := fmt.Sprintf("club_%d_activity_%s.xlsx", clubID, p.String())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		log.Error("写出 Excel 失败", "error", err, "club_id", clubID)
	}
}

func isClubLeader(c *gin.Context, userID, clubID uint) (bool, error) {
	var count int64
	err := database.DB.WithContext(c.Request.Context()).
		Model(&model.Membership{}).
		Where("user_id = ? AND club_id = ? AND role = ? AND left_at IS NULL", userID, clubID, model.MembershipRoleLeader).
		Count(&count).Error
	return count > 0, err
}
