package graph

import "context"

// toKey 把 GraphQL Int 转为主键。负数映射为 0，而 0 不对应任何记录。
func toKey(id int32) uint {
	if id < 0 {
		return 0
	}
	return uint(id)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type createTrackArgs struct {
	Title       *string
	Description *string
	URL         *string
}

// CreateTrack 解析 Mutation.createTrack
func (r *Resolver) CreateTrack(ctx context.Context, args createTrackArgs) (_ *CreateTrackPayload, err error) {
	defer func() { err = observe("createTrack", err) }()

	track, err := r.tracks.CreateTrack(ctx, deref(args.Title), deref(args.Description), deref(args.URL))
	if err != nil {
		return nil, err
	}
	return &CreateTrackPayload{Track: r.newTrack(track)}, nil
}

type updateTrackArgs struct {
	TrackID     int32
	Title       *string
	Description *string
}

// UpdateTrack 解析 Mutation.updateTrack。省略的 title/description 按空字符串覆盖。
func (r *Resolver) UpdateTrack(ctx context.Context, args updateTrackArgs) (_ *UpdateTrackPayload, err error) {
	defer func() { err = observe("updateTrack", err) }()

	track, err := r.tracks.UpdateTrack(ctx, toKey(args.TrackID), deref(args.Title), deref(args.Description))
	if err != nil {
		return nil, err
	}
	return &UpdateTrackPayload{Track: r.newTrack(track)}, nil
}

// DeleteTrack 解析 Mutation.deleteTrack
func (r *Resolver) DeleteTrack(ctx context.Context, args struct{ TrackID int32 }) (_ *DeleteTrackPayload, err error) {
	defer func() { err = observe("deleteTrack", err) }()

	if _, err := r.tracks.DeleteTrack(ctx, toKey(args.TrackID)); err != nil {
		return nil, err
	}
	id := args.TrackID
	return &DeleteTrackPayload{TrackID: &id}, nil
}

// CreateLike 解析 Mutation.createLike
func (r *Resolver) CreateLike(ctx context.Context, args struct{ TrackID int32 }) (_ *CreateLikePayload, err error) {
	defer func() { err = observe("createLike", err) }()

	user, track, err := r.tracks.CreateLike(ctx, toKey(args.TrackID))
	if err != nil {
		return nil, err
	}
	return &CreateLikePayload{User: r.newUser(user), Track: r.newTrack(track)}, nil
}

type createUserArgs struct {
	Username string
	Password string
	Email    string
}

// CreateUser 解析 Mutation.createUser
func (r *Resolver) CreateUser(ctx context.Context, args createUserArgs) (_ *CreateUserPayload, err error) {
	defer func() { err = observe("createUser", err) }()

	user, err := r.users.CreateUser(ctx, args.Username, args.Password, args.Email)
	if err != nil {
		return nil, err
	}
	return &CreateUserPayload{User: r.newUser(user)}, nil
}
