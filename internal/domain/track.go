package domain

import "time"

// Track 表示一条由用户分享的媒体曲目。
type Track struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"type:varchar(191)"`
	Description string    `gorm:"type:text"`
	URL         string    `gorm:"type:varchar(500)"`
	PostedByID  uint      `gorm:"index;not null"` // 创建后不可修改
	PostedBy    *User     `gorm:"foreignKey:PostedByID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// IsPostedBy 判断曲目是否属于指定用户。nil 用户 (匿名) 永远不是所有者。
func (t *Track) IsPostedBy(user *User) bool {
	return user != nil && user.ID != 0 && t.PostedByID == user.ID
}
