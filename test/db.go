package test

import (
	"testing"

	"club-activity-system/config"
	"club-activity-system/internal/global/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// SetupDB 为每个测试开一个独立的内存 sqlite 并完成迁移，
// 表名策略与生产一致（单数表名），SQL 层行为可直接对照
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()
	config.SetForTest(config.DefaultForTest())

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
		Logger:         logger.Discard,
	})
	require.NoError(t, err)
	database.InitWith(db)
	return db
}

// MustCreate 批量插入测试数据
func MustCreate(t *testing.T, db *gorm.DB, rows ...any) {
	t.Helper()
	for _, row := range rows {
		require.NoError(t, db.Create(row).Error)
	}
}
