package gormpersistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"tracks-graphql/internal/domain"
	"tracks-graphql/internal/repository"
)

// GormTrackRepository 是 TrackRepository 接口的 GORM 实现
type GormTrackRepository struct {
	db *gorm.DB
}

// NewGormTrackRepository 创建 GormTrackRepository 实例
func NewGormTrackRepository(db *gorm.DB) *GormTrackRepository {
	if db == nil {
		panic("database connection cannot be nil for GormTrackRepository")
	}
	return &GormTrackRepository{db: db}
}

// FindByID 根据 ID 查找曲目，同时加载发布者
func (r *GormTrackRepository) FindByID(ctx context.Context, id uint) (*domain.Track, error) {
	var track domain.Track
	err := r.db.WithContext(ctx).Preload("PostedBy").First(&track, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTrackNotFound
		}
		return nil, fmt.Errorf("gorm: find track by id %d: %w", id, err)
	}
	return &track, nil
}

// Search 按子串过滤曲目。发布者用户名的匹配需要 JOIN users 表。
func (r *GormTrackRepository) Search(ctx context.Context, search string) ([]domain.Track, error) {
	db := r.db.WithContext(ctx)
	query := db.Model(&domain.Track{}).
		Joins("JOIN users ON users.id = tracks.posted_by_id").
		Preload("PostedBy").
		Order("tracks.id")

	if search != "" {
		cond := fmt.Sprintf("(%s OR %s OR %s OR %s)",
			containsExpr(db, "tracks.title"),
			containsExpr(db, "tracks.description"),
			containsExpr(db, "tracks.url"),
			containsExpr(db, "users.username"),
		)
		query = query.Where(cond, search, search, search, search)
	}

	tracks := make([]domain.Track, 0)
	if err := query.Find(&tracks).Error; err != nil {
		return nil, fmt.Errorf("gorm: search tracks (search: '%s'): %w", search, err)
	}
	return tracks, nil
}

// Save 创建 (ID 为 0) 或更新曲目。
// 更新只写 title 和 description，记录已被删除时返回 ErrTrackNotFound，不会重新插入。
func (r *GormTrackRepository) Save(ctx context.Context, track *domain.Track) error {
	db := r.db.WithContext(ctx)
	if track.ID == 0 {
		// Omit 关联，避免 GORM 顺带 upsert 发布者
		if err := db.Omit("PostedBy").Create(track).Error; err != nil {
			return fmt.Errorf("gorm: create track (title: %s): %w", track.Title, err)
		}
		return nil
	}

	now := time.Now()
	result := db.Model(&domain.Track{}).
		Where("id = ?", track.ID).
		Select("title", "description", "updated_at").
		Updates(map[string]interface{}{
			"title":       track.Title,
			"description": track.Description,
			"updated_at":  now,
		})
	if result.Error != nil {
		return fmt.Errorf("gorm: update track (id: %d, title: %s): %w", track.ID, track.Title, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrTrackNotFound
	}
	track.UpdatedAt = now
	return nil
}

// Delete 在一个事务中删除曲目和它的点赞。
// 并非所有驱动都会执行外键级联 (SQLite 默认关闭)，所以这里显式删除点赞。
func (r *GormTrackRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("track_id = ?", id).Delete(&domain.Like{}).Error; err != nil {
			return fmt.Errorf("gorm: delete likes of track %d: %w", id, err)
		}
		result := tx.Delete(&domain.Track{}, id)
		if result.Error != nil {
			return fmt.Errorf("gorm: delete track %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return repository.ErrTrackNotFound
		}
		return nil
	})
}
