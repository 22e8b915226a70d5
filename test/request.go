package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"club-activity-system/internal/global/jwt"
	"club-activity-system/internal/global/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// Request 构造一次 handler 调用所需的全部上下文
type Request struct {
	Method  string
	Params  gin.Params        // 路径参数，如 club_id
	Query   url.Values        // year / month 等
	Body    any               // 非空时按 JSON 编码
	Payload *jwt.Payload      // 模拟 Auth 中间件写入的登录态
}

// Do 执行 handler 并解析统一响应体
func (req Request) Do(t *testing.T, handlerFunc gin.HandlerFunc) (resp response.ResponseBody) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	method := req.Method
	if method == "" {
		method = http.MethodPost
	}
	target := "/test"
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body *bytes.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, target, body)
	c.Params = req.Params

	if req.Payload != nil {
		c.Set("payload", &jwt.Claims{Payload: *req.Payload})
	}

	handlerFunc(c)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return
}

// DoRequest 最简调用：POST JSON，无路径参数无登录态
func DoRequest(t *testing.T, handlerFunc gin.HandlerFunc, request any) response.ResponseBody {
	t.Helper()
	return Request{Body: request}.Do(t, handlerFunc)
}
