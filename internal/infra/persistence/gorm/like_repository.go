package gormpersistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"tracks-graphql/internal/domain"
)

// GormLikeRepository 是 LikeRepository 接口的 GORM 实现
type GormLikeRepository struct {
	db *gorm.DB
}

// NewGormLikeRepository 创建 GormLikeRepository 实例
func NewGormLikeRepository(db *gorm.DB) *GormLikeRepository {
	if db == nil {
		panic("database connection cannot be nil for GormLikeRepository")
	}
	return &GormLikeRepository{db: db}
}

// withRelations 预加载点赞用户和曲目 (含曲目发布者)
func (r *GormLikeRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User").
		Preload("Track").
		Preload("Track.PostedBy").
		Order("id")
}

// Create 插入一条点赞记录。不检查重复。
func (r *GormLikeRepository) Create(ctx context.Context, like *domain.Like) error {
	if err := r.db.WithContext(ctx).Omit("User", "Track").Create(like).Error; err != nil {
		return fmt.Errorf("gorm: create like (user: %d, track: %d): %w", like.UserID, like.TrackID, err)
	}
	return nil
}

// FindAll 返回全部点赞
func (r *GormLikeRepository) FindAll(ctx context.Context) ([]domain.Like, error) {
	likes := make([]domain.Like, 0)
	if err := r.withRelations(ctx).Find(&likes).Error; err != nil {
		return nil, fmt.Errorf("gorm: find all likes: %w", err)
	}
	return likes, nil
}

// FindByTrack 返回某个曲目的点赞
func (r *GormLikeRepository) FindByTrack(ctx context.Context, trackID uint) ([]domain.Like, error) {
	likes := make([]domain.Like, 0)
	if err := r.withRelations(ctx).Where("track_id = ?", trackID).Find(&likes).Error; err != nil {
		return nil, fmt.Errorf("gorm: find likes by track %d: %w", trackID, err)
	}
	return likes, nil
}

// FindByUser 返回某个用户的点赞
func (r *GormLikeRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Like, error) {
	likes := make([]domain.Like, 0)
	if err := r.withRelations(ctx).Where("user_id = ?", userID).Find(&likes).Error; err != nil {
		return nil, fmt.Errorf("gorm: find likes by user %d: %w", userID, err)
	}
	return likes, nil
}
