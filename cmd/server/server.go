package server

import (
	"fmt"
	"log/slog"

	"club-activity-system/config"
	"club-activity-system/internal/global/cache"
	"club-activity-system/internal/global/database"
	"club-activity-system/internal/global/httpclient"
	"club-activity-system/internal/global/logger"
	"club-activity-system/internal/global/middleware"
	"club-activity-system/internal/global/sentry"
	"club-activity-system/internal/module"
	"club-activity-system/tools"

	"github.com/gin-gonic/gin"
)

var log *slog.Logger

func Init() {
	config.Init()
	log = logger.New("Server")

	sentry.Init()
	database.Init()
	cache.Init()
	httpclient.Init()

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init()
	}
}

func Run() {
	gin.SetMode(string(config.Get().Mode))
	r := gin.New()

	switch config.Get().Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	case config.ModeDebug:
		r.Use(gin.Logger())
	}
	r.Use(middleware.Cors())
	r.Use(middleware.Recovery())

	if sentry.IsEnabled() {
		r.Use(middleware.Sentry())
		r.Use(middleware.SentryEnrichIP())
	}

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		m.InitRouter(r.Group("/" + config.Get().Prefix))
	}
	err := r.Run(config.Get().Host + ":" + config.Get().Port)
	tools.PanicOnErr(err)
}
