package test

import (
	"testing"

	"club-activity-system/internal/global/response"
)

func TestErrorEqualAcceptsTippedMessage(t *testing.T) {
	tipped := response.ErrInvalidRequest.WithTips("基础分超出允许范围")
	ErrorEqual(t, response.ErrInvalidRequest, response.ResponseBody{
		Success: false,
		Message: tipped.Message,
	})
}

func TestErrorEqualAcceptsBareMessage(t *testing.T) {
	ErrorEqual(t, response.ErrNotFound, response.ResponseBody{
		Success: false,
		Message: response.ErrNotFound.Message,
	})
}
