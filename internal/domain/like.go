package domain

import "time"

// Like 表示用户对曲目的一次点赞。
// (UserID, TrackID) 上没有唯一约束，同一用户可以重复点赞。
type Like struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE"`
	TrackID   uint      `gorm:"index;not null"`
	Track     *Track    `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
