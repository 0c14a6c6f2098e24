package graph

import (
	"context"
	"strconv"

	graphql "github.com/graph-gophers/graphql-go"

	"tracks-graphql/internal/domain"
)

func toID(id uint) graphql.ID { return graphql.ID(strconv.FormatUint(uint64(id), 10)) }

// UserResolver 解析 User 对象
type UserResolver struct {
	root *Resolver
	user *domain.User
}

func (r *Resolver) newUser(u *domain.User) *UserResolver {
	if u == nil {
		return nil
	}
	return &UserResolver{root: r, user: u}
}

func (u *UserResolver) ID() graphql.ID           { return toID(u.user.ID) }
func (u *UserResolver) Username() string         { return u.user.Username }
func (u *UserResolver) Email() string            { return u.user.Email }
func (u *UserResolver) Password() string         { return u.user.Password }
func (u *UserResolver) DateJoined() graphql.Time { return graphql.Time{Time: u.user.CreatedAt} }

// LikeSet 返回该用户的全部点赞
func (u *UserResolver) LikeSet(ctx context.Context) ([]*LikeResolver, error) {
	likes, err := u.root.tracks.LikesByUser(ctx, u.user.ID)
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return u.root.newLikes(likes), nil
}

// TrackResolver 解析 Track 对象
type TrackResolver struct {
	root  *Resolver
	track *domain.Track
}

func (r *Resolver) newTrack(t *domain.Track) *TrackResolver {
	if t == nil {
		return nil
	}
	return &TrackResolver{root: r, track: t}
}

func (r *Resolver) newTracks(tracks []domain.Track) []*TrackResolver {
	out := make([]*TrackResolver, 0, len(tracks))
	for i := range tracks {
		out = append(out, r.newTrack(&tracks[i]))
	}
	return out
}

func (t *TrackResolver) ID() graphql.ID          { return toID(t.track.ID) }
func (t *TrackResolver) Title() string           { return t.track.Title }
func (t *TrackResolver) Description() string     { return t.track.Description }
func (t *TrackResolver) URL() string             { return t.track.URL }
func (t *TrackResolver) CreatedAt() graphql.Time { return graphql.Time{Time: t.track.CreatedAt} }

// PostedBy 返回发布者，仓储层已预加载
func (t *TrackResolver) PostedBy() *UserResolver { return t.root.newUser(t.track.PostedBy) }

// Likes 返回该曲目的全部点赞
func (t *TrackResolver) Likes(ctx context.Context) ([]*LikeResolver, error) {
	likes, err := t.root.tracks.LikesOfTrack(ctx, t.track.ID)
	if err != nil {
		return nil, toGraphQLError(err)
	}
	return t.root.newLikes(likes), nil
}

// LikeResolver 解析 Like 对象，User 和 Track 由仓储层预加载
type LikeResolver struct {
	root *Resolver
	like *domain.Like
}

func (r *Resolver) newLikes(likes []domain.Like) []*LikeResolver {
	out := make([]*LikeResolver, 0, len(likes))
	for i := range likes {
		out = append(out, &LikeResolver{root: r, like: &likes[i]})
	}
	return out
}

func (l *LikeResolver) ID() graphql.ID        { return toID(l.like.ID) }
func (l *LikeResolver) User() *UserResolver   { return l.root.newUser(l.like.User) }
func (l *LikeResolver) Track() *TrackResolver { return l.root.newTrack(l.like.Track) }

// 变更操作的返回载荷

type CreateTrackPayload struct{ Track *TrackResolver }

type UpdateTrackPayload struct{ Track *TrackResolver }

type DeleteTrackPayload struct{ TrackID *int32 }

type CreateLikePayload struct {
	User  *UserResolver
	Track *TrackResolver
}

type CreateUserPayload struct{ User *UserResolver }
