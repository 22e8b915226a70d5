package database

import (
	"fmt"

	"club-activity-system/config"
	"club-activity-system/internal/model"
	"club-activity-system/tools"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var DB *gorm.DB

// autoMigrateModels 定义需要自动迁移的模型列表
var autoMigrateModels = []any{
	&model.User{},
	&model.Club{},
	&model.Membership{},
	&model.Event{},
	&model.EventRegistration{},
	&model.ClubSession{},
	&model.SessionAttendance{},
	&model.StaffDuty{},
	&model.Penalty{},
	&model.EventFeedback{},
	&model.BaseScore{},
	&model.MemberActivityScore{},
	&model.ClubActivitySummary{},
	&model.ClubActivityReport{},
	&model.MultiplierPolicy{},
	// 在这里添加其他模型
}

func Init() {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.Get().Mysql.Username,
		config.Get().Mysql.Password,
		config.Get().Mysql.Host,
		config.Get().Mysql.Port,
		config.Get().Mysql.DBName,
	)
	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true}, // 单数表名
	}

	switch config.Get().Mode {
	case config.ModeDebug:
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	case config.ModeRelease:
		gormConfig.Logger = logger.Discard
	}

	db, err := gorm.Open(mysql.Open(dsn), gormConfig)
	tools.PanicOnErr(err)
	DB = db

	tools.PanicOnErr(DB.AutoMigrate(autoMigrateModels...))
}

// InitWith 测试环境注入已打开的连接（如内存 sqlite），同样执行迁移
func InitWith(db *gorm.DB) {
	DB = db
	tools.PanicOnErr(DB.AutoMigrate(autoMigrateModels...))
}
