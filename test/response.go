package test

import (
	"strings"
	"testing"

	"club-activity-system/internal/global/response"

	"github.com/stretchr/testify/require"
)

// ErrorEqual 断言响应携带指定的注册表错误。
// 处理器常用 WithTips 追加提示，因此与 Error.Is 一样按前缀匹配消息
func ErrorEqual(t *testing.T, expected *response.Error, resp response.ResponseBody) {
	t.Helper()
	require.False(t, resp.Success)
	require.True(t, strings.HasPrefix(resp.Message, expected.Message),
		"消息 %q 不属于错误 %q", resp.Message, expected.Message)
}

func NoError(t *testing.T, resp response.ResponseBody) {
	t.Helper()
	require.True(t, resp.Success, "响应失败: %s", resp.Message)
}
