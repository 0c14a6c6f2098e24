// Package domain 定义了应用程序中使用的数据结构 (数据库模型)。
package domain

import "time"

// User 表示应用程序中的用户账号。
type User struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"type:varchar(150);uniqueIndex:idx_username;not null"`
	Password  string    `gorm:"type:varchar(255);not null"` // 存储的是哈希后的密码
	Email     string    `gorm:"type:varchar(191)"`
	CreatedAt time.Time `gorm:"autoCreateTime"` // 即 date_joined
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
