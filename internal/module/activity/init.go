package activity

import (
	"log/slog"

	"club-activity-system/internal/global/logger"
)

var log *slog.Logger

type ModuleActivity struct{}

func (*ModuleActivity) GetName() string {
	return "Activity"
}

func (*ModuleActivity) Init() {
	log = logger.New("Activity")
}
