package response

import (
	"errors"
	"fmt"
	"net/http"

	"club-activity-system/config"

	sentrylib "github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
)

// ResponseBody 统一响应体，所有端点只使用这一种包装
type ResponseBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Origin  string `json:"origin,omitempty"`
}

// Success 返回成功响应，data 可省略
func Success(c *gin.Context, data ...any) {
	body := ResponseBody{
		Success: true,
		Message: "ok",
	}
	if len(data) > 0 {
		body.Data = data[0]
	}
	c.JSON(http.StatusOK, body)
}

// Fail 返回失败响应，非 *Error 的错误统一按数据服务异常处理
func Fail(c *gin.Context, err error) {
	var respErr *Error
	if !errors.As(err, &respErr) {
		respErr = ErrDatabase.WithOrigin(err)
	}

	body := ResponseBody{
		Success: false,
		Message: respErr.Message,
	}
	// origin 只在 debug 模式下暴露给前端
	if config.Get().Mode == config.ModeDebug {
		body.Origin = respErr.Origin
	}

	c.Set(ErrorContextKey, respErr)
	reportToSentry(c, respErr)

	c.JSON(respErr.Status, body)
}

// Recovery 捕获 handler panic，转为 503 响应
func Recovery(c *gin.Context) {
	if r := recover(); r != nil {
		err, ok := r.(error)
		if !ok {
			err = fmt.Errorf("%v", r)
		}
		Fail(c, ErrDatabase.WithOrigin(pkgerrors.WithStack(err)))
		c.Abort()
	}
}

// reportToSentry 将 5xx 错误上报 Sentry（若启用）
func reportToSentry(c *gin.Context, respErr *Error) {
	if respErr.Status < http.StatusInternalServerError {
		return
	}
	hub := sentrygin.GetHubFromContext(c)
	if hub == nil {
		return
	}
	hub.WithScope(func(scope *sentrylib.Scope) {
		scope.SetTag("http_status", fmt.Sprintf("%d", respErr.Status))
		if cause := respErr.Unwrap(); cause != nil {
			hub.CaptureException(cause)
		} else {
			hub.CaptureException(respErr)
		}
	})
}
