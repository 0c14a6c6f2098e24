package setup

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tracks-graphql/internal/domain"
)

// MigrateDB 用 AutoMigrate 创建或补齐 users、tracks、likes 表。
// 顺序与外键依赖一致。
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.Track{}, &domain.Like{}); err != nil {
		logrus.Errorf("Failed to auto-migrate tables: %v", err)
		return fmt.Errorf("failed to auto-migrate tables: %w", err)
	}

	logrus.Info("Database migration completed successfully")
	return nil
}
