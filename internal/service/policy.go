package service

import "tracks-graphql/internal/domain"

// TrackPolicy 判断 caller 是否可以修改 track。caller 为 nil 表示匿名。
type TrackPolicy func(caller *domain.User, track *domain.Track) bool

// OwnerOnly 只允许曲目的发布者修改或删除曲目。
func OwnerOnly(caller *domain.User, track *domain.Track) bool {
	return track != nil && track.IsPostedBy(caller)
}

// TrackPolicies 为每个变更操作单独注入授权策略
type TrackPolicies struct {
	Update TrackPolicy
	Delete TrackPolicy
}

// DefaultTrackPolicies 更新和删除都要求是发布者
func DefaultTrackPolicies() TrackPolicies {
	return TrackPolicies{Update: OwnerOnly, Delete: OwnerOnly}
}
