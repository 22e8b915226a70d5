package sentry

import (
	"club-activity-system/config"

	sentrylib "github.com/getsentry/sentry-go"
)

var enabled bool

// Init 按配置初始化 Sentry，未配置 DSN 时什么都不做
func Init() {
	cfg := config.Get()
	if cfg.Sentry.Dsn == "" {
		return
	}
	err := sentrylib.Init(sentrylib.ClientOptions{
		Dsn:              cfg.Sentry.Dsn,
		Environment:      string(cfg.Mode),
		EnableTracing:    cfg.Sentry.TracesSampleRate > 0,
		TracesSampleRate: cfg.Sentry.TracesSampleRate,
	})
	if err != nil {
		panic(err)
	}
	enabled = true
}

func IsEnabled() bool {
	return enabled
}
