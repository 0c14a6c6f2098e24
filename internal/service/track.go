package service

import (
	"context"
	"errors"

	"tracks-graphql/internal/auth"
	"tracks-graphql/internal/domain"
	"tracks-graphql/internal/repository"

	"github.com/sirupsen/logrus"
)

// TrackService 负责曲目和点赞相关的业务逻辑。
type TrackService struct {
	trackRepo repository.TrackRepository
	likeRepo  repository.LikeRepository
	policies  TrackPolicies
}

// NewTrackService 创建 TrackService 实例，policies 中为 nil 的策略使用 OwnerOnly。
func NewTrackService(trackRepo repository.TrackRepository, likeRepo repository.LikeRepository, policies TrackPolicies) *TrackService {
	if trackRepo == nil || likeRepo == nil {
		panic("TrackRepository and LikeRepository cannot be nil for TrackService")
	}
	if policies.Update == nil {
		policies.Update = OwnerOnly
	}
	if policies.Delete == nil {
		policies.Delete = OwnerOnly
	}
	return &TrackService{trackRepo: trackRepo, likeRepo: likeRepo, policies: policies}
}

// ListTracks 返回全部曲目；search 非空时只返回 title、description、url
// 或发布者用户名包含该子串的曲目 (区分大小写)。
func (s *TrackService) ListTracks(ctx context.Context, search *string) ([]domain.Track, error) {
	term := ""
	if search != nil {
		term = *search
	}
	tracks, err := s.trackRepo.Search(ctx, term)
	if err != nil {
		logrus.WithError(err).WithField("search", term).Error("ListTracks: Repository error")
		return nil, ErrInternalServer
	}
	return tracks, nil
}

// ListLikes 返回全部点赞
func (s *TrackService) ListLikes(ctx context.Context) ([]domain.Like, error) {
	likes, err := s.likeRepo.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("ListLikes: Repository error")
		return nil, ErrInternalServer
	}
	return likes, nil
}

// LikesOfTrack 返回某曲目的点赞
func (s *TrackService) LikesOfTrack(ctx context.Context, trackID uint) ([]domain.Like, error) {
	likes, err := s.likeRepo.FindByTrack(ctx, trackID)
	if err != nil {
		logrus.WithError(err).WithField("track_id", trackID).Error("LikesOfTrack: Repository error")
		return nil, ErrInternalServer
	}
	return likes, nil
}

// LikesByUser 返回某用户的点赞
func (s *TrackService) LikesByUser(ctx context.Context, userID uint) ([]domain.Like, error) {
	likes, err := s.likeRepo.FindByUser(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("LikesByUser: Repository error")
		return nil, ErrInternalServer
	}
	return likes, nil
}

// CreateTrack 以当前调用者为发布者创建曲目。
func (s *TrackService) CreateTrack(ctx context.Context, title, description, url string) (*domain.Track, error) {
	caller, ok := auth.CallerFrom(ctx)
	if !ok {
		return nil, ErrLoginToAddTrack
	}
	logCtx := logrus.WithFields(logrus.Fields{"user_id": caller.ID, "title": title})

	track := &domain.Track{
		Title:       title,
		Description: description,
		URL:         url,
		PostedByID:  caller.ID,
		PostedBy:    caller,
	}
	if err := s.trackRepo.Save(ctx, track); err != nil {
		logCtx.WithError(err).Error("CreateTrack: Failed to save track")
		return nil, ErrInternalServer
	}

	logCtx.WithField("track_id", track.ID).Info("Track created")
	return track, nil
}

// UpdateTrack 覆盖曲目的 title 和 description。
// 没有部分更新语义：未提供的字段以空字符串写入。
func (s *TrackService) UpdateTrack(ctx context.Context, trackID uint, title, description string) (*domain.Track, error) {
	caller, _ := auth.CallerFrom(ctx)
	track, err := s.findTrack(ctx, trackID)
	if err != nil {
		return nil, err
	}
	if !s.policies.Update(caller, track) {
		logrus.WithFields(logrus.Fields{"track_id": trackID, "posted_by": track.PostedByID}).Warn("UpdateTrack: Permission denied")
		return nil, ErrNotPermittedUpdate
	}

	track.Title = title
	track.Description = description
	if err := s.trackRepo.Save(ctx, track); err != nil {
		// 并发删除时记录可能已经不存在
		if errors.Is(err, repository.ErrTrackNotFound) {
			return nil, ErrTrackNotFound
		}
		logrus.WithError(err).WithField("track_id", trackID).Error("UpdateTrack: Failed to save track")
		return nil, ErrInternalServer
	}

	logrus.WithField("track_id", trackID).Info("Track updated")
	return track, nil
}

// DeleteTrack 删除曲目并返回其 ID。
func (s *TrackService) DeleteTrack(ctx context.Context, trackID uint) (uint, error) {
	caller, _ := auth.CallerFrom(ctx)
	track, err := s.findTrack(ctx, trackID)
	if err != nil {
		return 0, err
	}
	if !s.policies.Delete(caller, track) {
		logrus.WithFields(logrus.Fields{"track_id": trackID, "posted_by": track.PostedByID}).Warn("DeleteTrack: Permission denied")
		return 0, ErrNotPermittedDelete
	}

	if err := s.trackRepo.Delete(ctx, trackID); err != nil {
		// 并发删除时记录可能已经不存在
		if errors.Is(err, repository.ErrTrackNotFound) {
			return 0, ErrTrackNotFound
		}
		logrus.WithError(err).WithField("track_id", trackID).Error("DeleteTrack: Failed to delete track")
		return 0, ErrInternalServer
	}

	logrus.WithField("track_id", trackID).Info("Track deleted")
	return trackID, nil
}

// CreateLike 记录当前调用者对曲目的点赞，返回点赞用户和曲目。
func (s *TrackService) CreateLike(ctx context.Context, trackID uint) (*domain.User, *domain.Track, error) {
	caller, ok := auth.CallerFrom(ctx)
	if !ok {
		return nil, nil, ErrLoginToLike
	}
	track, err := s.findTrack(ctx, trackID)
	if err != nil {
		return nil, nil, err
	}

	like := &domain.Like{UserID: caller.ID, TrackID: track.ID}
	if err := s.likeRepo.Create(ctx, like); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"user_id": caller.ID, "track_id": trackID}).Error("CreateLike: Failed to create like")
		return nil, nil, ErrInternalServer
	}

	logrus.WithFields(logrus.Fields{"user_id": caller.ID, "track_id": trackID, "like_id": like.ID}).Info("Like created")
	return caller, track, nil
}

func (s *TrackService) findTrack(ctx context.Context, trackID uint) (*domain.Track, error) {
	track, err := s.trackRepo.FindByID(ctx, trackID)
	if err != nil {
		if errors.Is(err, repository.ErrTrackNotFound) {
			return nil, ErrTrackNotFound
		}
		logrus.WithError(err).WithField("track_id", trackID).Error("findTrack: Repository error")
		return nil, ErrInternalServer
	}
	if track == nil {
		return nil, ErrTrackNotFound
	}
	return track, nil
}
