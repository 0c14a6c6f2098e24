package mocks

import (
	context "context"

	domain "tracks-graphql/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// LikeRepository is a mock type for the LikeRepository type
type LikeRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, like
func (_m *LikeRepository) Create(ctx context.Context, like *domain.Like) error {
	ret := _m.Called(ctx, like)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *domain.Like) error); ok {
		r0 = rf(ctx, like)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// FindAll provides a mock function with given fields: ctx
func (_m *LikeRepository) FindAll(ctx context.Context) ([]domain.Like, error) {
	ret := _m.Called(ctx)

	var r0 []domain.Like
	if rf, ok := ret.Get(0).(func(context.Context) []domain.Like); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Like)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// FindByTrack provides a mock function with given fields: ctx, trackID
func (_m *LikeRepository) FindByTrack(ctx context.Context, trackID uint) ([]domain.Like, error) {
	ret := _m.Called(ctx, trackID)

	var r0 []domain.Like
	if rf, ok := ret.Get(0).(func(context.Context, uint) []domain.Like); ok {
		r0 = rf(ctx, trackID)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Like)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uint) error); ok {
		r1 = rf(ctx, trackID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// FindByUser provides a mock function with given fields: ctx, userID
func (_m *LikeRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Like, error) {
	ret := _m.Called(ctx, userID)

	var r0 []domain.Like
	if rf, ok := ret.Get(0).(func(context.Context, uint) []domain.Like); ok {
		r0 = rf(ctx, userID)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Like)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uint) error); ok {
		r1 = rf(ctx, userID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}
