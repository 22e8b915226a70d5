package policy

import (
	"net/http"
	"strconv"
	"testing"

	"club-activity-system/internal/global/logger"
	"club-activity-system/internal/global/response"
	"club-activity-system/internal/model"
	"club-activity-system/internal/scoring"
	"club-activity-system/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	log = logger.New("Policy")
}

func float(v float64) *float64 { return &v }

func memberPolicyReq(min, max, multiplier float64) PolicyReq {
	return PolicyReq{
		TargetType:      model.PolicyTargetMember,
		LevelEvaluation: model.ActivityLevelMedium,
		ActivityType:    model.PolicyActivityMonthly,
		ConditionType:   model.PolicyConditionAbsolute,
		MinThreshold:    float(min),
		MaxThreshold:    float(max),
		Multiplier:      float(multiplier),
	}
}

func seedDefaults(t *testing.T, db *gorm.DB) {
	for _, p := range scoring.DefaultMemberPolicies() {
		policy := p
		test.MustCreate(t, db, &policy)
	}
}

func TestCreatePolicy(t *testing.T) {
	db := test.SetupDB(t)

	resp := test.DoRequest(t, Create, memberPolicyReq(0, 50, 0.8))
	test.NoError(t, resp)

	var count int64
	require.NoError(t, db.Model(&model.MultiplierPolicy{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestCreatePolicyOverlapRejected(t *testing.T) {
	db := test.SetupDB(t)
	seedDefaults(t, db)

	// [40, 60) 横跨默认的 LOW/MEDIUM 边界
	resp := test.DoRequest(t, Create, memberPolicyReq(40, 60, 1.0))
	test.ErrorEqual(t, response.ErrPolicyConflict, resp)
}

func TestCreatePolicyAdjacentAllowed(t *testing.T) {
	db := test.SetupDB(t)
	seedDefaults(t, db)

	// 默认策略覆盖 [0, 200)，[200, 300) 与之相邻不算重叠
	resp := test.DoRequest(t, Create, memberPolicyReq(200, 300, 1.5))
	test.NoError(t, resp)
}

func TestCreatePolicyDifferentConditionTypeAllowed(t *testing.T) {
	db := test.SetupDB(t)
	seedDefaults(t, db)

	// 同区间但条件类型不同，互不冲突
	req := memberPolicyReq(0, 50, 0.9)
	req.ConditionType = model.PolicyConditionPercentage
	resp := test.DoRequest(t, Create, req)
	test.NoError(t, resp)
}

func TestCreatePolicyInvalidRange(t *testing.T) {
	test.SetupDB(t)

	resp := test.DoRequest(t, Create, memberPolicyReq(50, 50, 1.0))
	test.ErrorEqual(t, response.ErrInvalidRequest, resp)

	resp = test.DoRequest(t, Create, memberPolicyReq(0, 50, 0))
	test.ErrorEqual(t, response.ErrInvalidRequest, resp)
}

func TestUpdatePolicyExcludesSelf(t *testing.T) {
	db := test.SetupDB(t)
	seedDefaults(t, db)

	var policy model.MultiplierPolicy
	require.NoError(t, db.First(&policy, "level_evaluation = ?", model.ActivityLevelMedium).Error)

	// 收窄自身区间不应被自己挡住
	req := memberPolicyReq(50, 90, 1.0)
	resp := test.Request{
		Method: http.MethodPut,
		Params: gin.Params{{Key: "id", Value: strconv.FormatUint(uint64(policy.ID), 10)}},
		Body:   req,
	}.Do(t, Update)
	test.NoError(t, resp)

	require.NoError(t, db.First(&policy, "id = ?", policy.ID).Error)
	require.Equal(t, 90.0, policy.MaxThreshold)
}

func TestUpdatePolicyOverlapRejected(t *testing.T) {
	db := test.SetupDB(t)
	seedDefaults(t, db)

	var policy model.MultiplierPolicy
	require.NoError(t, db.First(&policy, "level_evaluation = ?", model.ActivityLevelMedium).Error)

	// 把 MEDIUM 区间拉到与 HIGH 重叠
	resp := test.Request{
		Method: http.MethodPut,
		Params: gin.Params{{Key: "id", Value: strconv.FormatUint(uint64(policy.ID), 10)}},
		Body:   memberPolicyReq(50, 150, 1.0),
	}.Do(t, Update)
	test.ErrorEqual(t, response.ErrPolicyConflict, resp)
}

func TestDeletePolicy(t *testing.T) {
	db := test.SetupDB(t)
	seedDefaults(t, db)

	var policy model.MultiplierPolicy
	require.NoError(t, db.First(&policy).Error)

	resp := test.Request{
		Method: http.MethodDelete,
		Params: gin.Params{{Key: "id", Value: strconv.FormatUint(uint64(policy.ID), 10)}},
	}.Do(t, Delete)
	test.NoError(t, resp)

	resp = test.Request{
		Method: http.MethodDelete,
		Params: gin.Params{{Key: "id", Value: strconv.FormatUint(uint64(policy.ID), 10)}},
	}.Do(t, Delete)
	test.ErrorEqual(t, response.ErrNotFound, resp)
}
