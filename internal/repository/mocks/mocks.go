package mocks

import (
	"context"

	"github.com/rpggio/feedwire/internal/domain/activity"
	"github.com/rpggio/feedwire/internal/domain/verb"
	"github.com/stretchr/testify/mock"
)

// FeedRepository is a mock for activity.Repository.
type FeedRepository struct {
	mock.Mock
}

func (m *FeedRepository) Add(ctx context.Context, entry *activity.StoredActivity) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *FeedRepository) List(ctx context.Context, feedKey string, opts activity.ListOptions) ([]activity.StoredActivity, error) {
	args := m.Called(ctx, feedKey, opts)
	if list, ok := args.Get(0).([]activity.StoredActivity); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FeedRepository) Remove(ctx context.Context, feedKey, serializationID string) error {
	args := m.Called(ctx, feedKey, serializationID)
	return args.Error(0)
}

// Serializer is a mock for activity.Serializer.
type Serializer struct {
	mock.Mock
}

func (m *Serializer) Dumps(v any) (string, error) {
	args := m.Called(v)
	return args.String(0), args.Error(1)
}

func (m *Serializer) Loads(serialized string) (*activity.Activity, error) {
	args := m.Called(serialized)
	if act, ok := args.Get(0).(*activity.Activity); ok {
		return act, args.Error(1)
	}
	return nil, args.Error(1)
}

// VerbLookup is a mock for verb.Lookup.
type VerbLookup struct {
	mock.Mock
}

func (m *VerbLookup) Lookup(id int) (verb.Verb, error) {
	args := m.Called(id)
	return args.Get(0).(verb.Verb), args.Error(1)
}
