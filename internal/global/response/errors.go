package response

import "net/http"

// 业务错误一览，HTTP 状态码与前端约定保持一致：
// 404 资源不存在，400 参数错误，409 状态冲突，401/403 认证与权限，503 上游不可用
var (
	ErrInvalidRequest  = newError(http.StatusBadRequest, "请求参数错误")
	ErrUnauthorized    = newError(http.StatusUnauthorized, "未登录或登录已过期")
	ErrTokenInvalid    = newError(http.StatusUnauthorized, "令牌无效")
	ErrForbidden       = newError(http.StatusForbidden, "没有操作权限")
	ErrNotFound        = newError(http.StatusNotFound, "资源不存在")
	ErrAlreadyExists   = newError(http.StatusConflict, "资源已存在")
	ErrInvalidPassword = newError(http.StatusUnauthorized, "密码错误")

	// 报告生命周期相关
	ErrReportLocked  = newError(http.StatusConflict, "报告已锁定，禁止重新计算")
	ErrAlreadyLocked = newError(http.StatusConflict, "报告已锁定，不能重复审批")
	ErrNotCalculated = newError(http.StatusConflict, "报告尚未计算，不能审批")
	ErrRecalcBusy    = newError(http.StatusConflict, "该周期正在重新计算中，请稍后重试")

	// 倍率策略相关
	ErrPolicyConflict = newError(http.StatusConflict, "策略阈值区间与现有策略重叠")

	ErrDatabase = newError(http.StatusServiceUnavailable, "数据服务暂不可用")
)
