package mocks

import (
	context "context"

	domain "tracks-graphql/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// TrackRepository is a mock type for the TrackRepository type
type TrackRepository struct {
	mock.Mock
}

// Delete provides a mock function with given fields: ctx, id
func (_m *TrackRepository) Delete(ctx context.Context, id uint) error {
	ret := _m.Called(ctx, id)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, uint) error); ok {
		r0 = rf(ctx, id)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// FindByID provides a mock function with given fields: ctx, id
func (_m *TrackRepository) FindByID(ctx context.Context, id uint) (*domain.Track, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.Track
	if rf, ok := ret.Get(0).(func(context.Context, uint) *domain.Track); ok {
		r0 = rf(ctx, id)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Track)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, uint) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Save provides a mock function with given fields: ctx, track
func (_m *TrackRepository) Save(ctx context.Context, track *domain.Track) error {
	ret := _m.Called(ctx, track)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *domain.Track) error); ok {
		r0 = rf(ctx, track)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Search provides a mock function with given fields: ctx, search
func (_m *TrackRepository) Search(ctx context.Context, search string) ([]domain.Track, error) {
	ret := _m.Called(ctx, search)

	var r0 []domain.Track
	if rf, ok := ret.Get(0).(func(context.Context, string) []domain.Track); ok {
		r0 = rf(ctx, search)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Track)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, search)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}
