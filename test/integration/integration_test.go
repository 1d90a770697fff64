package integration_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/feedwire/internal/domain/activity"
	"github.com/rpggio/feedwire/internal/domain/verb"
	"github.com/rpggio/feedwire/internal/serializer"
	"github.com/rpggio/feedwire/internal/sqlite"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db       *sqlite.DB
	feedRepo *sqlite.FeedRepository
	codec    *serializer.ActivitySerializer
	feedSvc  *activity.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	registry, err := verb.NewRegistry(verb.DefaultVerbs()...)
	require.NoError(t, err)

	feedRepo := sqlite.NewFeedRepository(db)
	codec := serializer.NewActivitySerializer(registry, nil)

	return &testEnv{
		db:       db,
		feedRepo: feedRepo,
		codec:    codec,
		feedSvc:  activity.NewService(feedRepo, codec, nil),
	}
}

func mustVerb(t *testing.T, id int) verb.Verb {
	t.Helper()
	for _, v := range verb.DefaultVerbs() {
		if v.ID == id {
			return v
		}
	}
	t.Fatalf("no default verb %d", id)
	return verb.Verb{}
}

func TestIntegration_FeedRoundTrip(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	base := time.Date(2023, 3, 14, 15, 9, 26, 535897000, time.UTC)

	target := uint64(77)
	ref := &activity.Ref{Kind: "photo", ID: 501}
	inputs := []*activity.Activity{
		{ActorID: 1, Verb: mustVerb(t, 1), ObjectID: 10, Time: base, ExtraContext: map[string]any{}},
		{ActorID: 2, Verb: mustVerb(t, 2), ObjectID: 11, TargetID: &target, Time: base.Add(time.Second), ExtraContext: map[string]any{"text": "a,b,c", "n": int64(-3)}},
		{ActorID: 3, Verb: mustVerb(t, 4), ObjectID: 12, Time: base.Add(2 * time.Second), ExtraContext: map[string]any{"ref": ref, "nested": map[string]any{"ok": true}}},
	}
	for _, act := range inputs {
		_, err := env.feedSvc.Add(ctx, "user:1", act)
		require.NoError(t, err)
	}

	got, err := env.feedSvc.List(ctx, "user:1", activity.ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Newest first
	for i, act := range got {
		want := inputs[len(inputs)-1-i]
		require.Equal(t, want.ActorID, act.ActorID)
		require.Equal(t, want.Verb, act.Verb)
		require.Equal(t, want.ObjectID, act.ObjectID)
		require.True(t, want.Time.Equal(act.Time))
		require.Equal(t, want.ExtraContext, act.ExtraContext)
	}
	require.Equal(t, uint64(77), *got[1].TargetID)
	require.Nil(t, got[0].TargetID)
}

func TestIntegration_LegacyRowsReadBack(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	// A legacy row: {"k": "v"} as raw MessagePack bytes in Latin-1 text.
	legacy := "5,3,6,0,1500000000.250000,\u0081¡k¡v"
	require.NoError(t, env.feedRepo.Add(ctx, &activity.StoredActivity{
		ID:              "legacy-1",
		FeedKey:         "user:2",
		SerializationID: "15000000002500000000006003",
		Serialized:      legacy,
		CreatedAt:       time.Now(),
	}))

	got, err := env.feedSvc.List(ctx, "user:2", activity.ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, map[string]any{"k": "v"}, got[0].ExtraContext)
	require.Equal(t, time.Unix(1500000000, 250000000).UTC(), got[0].Time)

	// Re-encoding always uses the current format.
	reencoded, err := env.codec.Dumps(got[0])
	require.NoError(t, err)
	require.NotEqual(t, legacy, reencoded)
	require.True(t, strings.HasPrefix(reencoded, "5,3,6,0,1500000000.250000,"))

	again, err := env.codec.Loads(reencoded)
	require.NoError(t, err)
	require.Equal(t, got[0].ExtraContext, again.ExtraContext)
}

func TestIntegration_CorruptRowSurfacesError(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	require.NoError(t, env.feedRepo.Add(ctx, &activity.StoredActivity{
		ID:              "bad-1",
		FeedKey:         "user:3",
		SerializationID: "1",
		Serialized:      "1,1,1,0,1.000000,AAAA",
		CreatedAt:       time.Now(),
	}))

	_, err := env.feedSvc.List(ctx, "user:3", activity.ListOptions{})
	require.ErrorIs(t, err, serializer.ErrPayloadDecode)
}

func TestIntegration_FeedsAreIsolated(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := env.feedSvc.Add(ctx, "user:a", &activity.Activity{ActorID: 1, Verb: mustVerb(t, 1), ObjectID: 1, Time: now, ExtraContext: map[string]any{}})
	require.NoError(t, err)
	stored, err := env.feedSvc.Add(ctx, "user:b", &activity.Activity{ActorID: 1, Verb: mustVerb(t, 1), ObjectID: 1, Time: now, ExtraContext: map[string]any{}})
	require.NoError(t, err)

	require.NoError(t, env.feedSvc.Remove(ctx, "user:b", stored.SerializationID))

	a, err := env.feedSvc.List(ctx, "user:a", activity.ListOptions{})
	require.NoError(t, err)
	require.Len(t, a, 1)

	b, err := env.feedSvc.List(ctx, "user:b", activity.ListOptions{})
	require.NoError(t, err)
	require.Empty(t, b)
}
