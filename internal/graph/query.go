package graph

import "context"

// AllTracks 解析 Query.allTracks
func (r *Resolver) AllTracks(ctx context.Context, args struct{ Search *string }) (_ []*TrackResolver, err error) {
	defer func() { err = observe("allTracks", err) }()

	tracks, err := r.tracks.ListTracks(ctx, args.Search)
	if err != nil {
		return nil, err
	}
	return r.newTracks(tracks), nil
}

// Likes 解析 Query.likes
func (r *Resolver) Likes(ctx context.Context) (_ []*LikeResolver, err error) {
	defer func() { err = observe("likes", err) }()

	likes, err := r.tracks.ListLikes(ctx)
	if err != nil {
		return nil, err
	}
	return r.newLikes(likes), nil
}

// User 解析 Query.user
func (r *Resolver) User(ctx context.Context, args struct{ ID int32 }) (_ *UserResolver, err error) {
	defer func() { err = observe("user", err) }()

	user, err := r.users.GetUser(ctx, toKey(args.ID))
	if err != nil {
		return nil, err
	}
	return r.newUser(user), nil
}

// UserByName 解析 Query.userByName
func (r *Resolver) UserByName(ctx context.Context, args struct{ Username string }) (_ *UserResolver, err error) {
	defer func() { err = observe("userByName", err) }()

	user, err := r.users.GetUserByName(ctx, args.Username)
	if err != nil {
		return nil, err
	}
	return r.newUser(user), nil
}

// Me 解析 Query.me
func (r *Resolver) Me(ctx context.Context) (_ *UserResolver, err error) {
	defer func() { err = observe("me", err) }()

	user, err := r.users.Me(ctx)
	if err != nil {
		return nil, err
	}
	return r.newUser(user), nil
}
