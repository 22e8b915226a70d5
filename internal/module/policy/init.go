package policy

import (
	"log/slog"

	"club-activity-system/internal/global/logger"
)

var log *slog.Logger

type ModulePolicy struct{}

func (*ModulePolicy) GetName() string {
	return "Policy"
}

func (*ModulePolicy) Init() {
	log = logger.New("Policy")
}
