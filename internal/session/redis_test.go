package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mara2525/clearpath-health-backend/internal/assistant"
	"github.com/mara2525/clearpath-health-backend/internal/scoring"
	"github.com/mara2525/clearpath-health-backend/internal/session"
)

func newTestStore(t *testing.T) (session.Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return session.NewRedisStoreFromClient(client, 24*time.Hour), mr
}

// ─── CHAT HISTORY ────────────────────────────────────────────────────────────

func TestRedisStore_ChatHistory(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first := session.Message{
		ID:        "msg-1",
		Role:      session.RoleUser,
		Content:   "which plan is best for me",
		Timestamp: 1756700000000,
	}
	second := session.Message{
		ID:        "msg-2",
		Role:      session.RoleAssistant,
		Content:   "Here are your options.",
		Timestamp: 1756700001000,
	}

	require.NoError(t, store.AppendMessage(ctx, "sess-1", first))
	require.NoError(t, store.AppendMessage(ctx, "sess-1", second))

	history, err := store.History(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, first, history[0])
	assert.Equal(t, second, history[1])
}

func TestRedisStore_HistoryEmptySession(t *testing.T) {
	store, _ := newTestStore(t)

	history, err := store.History(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestRedisStore_HistoryIsolatedPerSession(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendMessage(ctx, "sess-a", session.Message{ID: "a", Role: session.RoleUser, Content: "hi"}))

	history, err := store.History(ctx, "sess-b")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestRedisStore_ClearHistory(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendMessage(ctx, "sess-1", session.Message{ID: "a", Role: session.RoleUser, Content: "hi"}))
	require.NoError(t, store.ClearHistory(ctx, "sess-1"))

	history, err := store.History(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestRedisStore_ChatHistoryExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := session.NewRedisStoreFromClient(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.AppendMessage(ctx, "sess-1", session.Message{ID: "a", Role: session.RoleUser, Content: "hi"}))

	mr.FastForward(2 * time.Minute)

	history, err := store.History(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

// ─── RECOMMENDATIONS ─────────────────────────────────────────────────────────

func TestRedisStore_Recommendations(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	rec := session.Recommendations{
		Profile: scoring.Profile{
			AgeRange:          "35-44",
			UtilizationLevel:  scoring.UtilizationMedium,
			PrescriptionNeeds: scoring.PrescriptionRegular,
		},
		Results: []scoring.Result{
			{PlanID: "CP-HIGH-05", Score: 152.5, Rank: scoring.RankBest, MetalTier: "Gold"},
			{PlanID: "CP-ADVANCE-PLUS-04", Score: 140, Rank: scoring.RankBetter, MetalTier: "Silver"},
		},
		CreatedAt: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, store.SaveRecommendations(ctx, "sess-1", rec))

	got, ok, err := store.Recommendations(ctx, "sess-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec.Profile, got.Profile)
	assert.Equal(t, rec.Results, got.Results)
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))
}

func TestRedisStore_RecommendationsMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, ok, err := store.Recommendations(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_SaveRecommendationsOverwrites(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRecommendations(ctx, "sess-1", session.Recommendations{
		Results: []scoring.Result{{PlanID: "CP-HIGH-05", Rank: scoring.RankBest}},
	}))
	require.NoError(t, store.SaveRecommendations(ctx, "sess-1", session.Recommendations{
		Results: []scoring.Result{{PlanID: "CP-HDHP-02", Rank: scoring.RankBest}},
	}))

	got, ok, err := store.Recommendations(ctx, "sess-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got.Results, 1)
	assert.Equal(t, "CP-HDHP-02", got.Results[0].PlanID)
}

// ─── MODE OVERRIDE ───────────────────────────────────────────────────────────

func TestRedisStore_Mode(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	// Default: no override stored.
	mode, err := store.Mode(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, assistant.ModeAuto, mode)

	require.NoError(t, store.SetMode(ctx, "sess-1", assistant.ModeDemo))
	mode, err = store.Mode(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, assistant.ModeDemo, mode)

	require.NoError(t, store.SetMode(ctx, "sess-1", assistant.ModeLive))
	mode, err = store.Mode(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, assistant.ModeLive, mode)

	// Setting auto removes the override.
	require.NoError(t, store.SetMode(ctx, "sess-1", assistant.ModeAuto))
	mode, err = store.Mode(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, assistant.ModeAuto, mode)
}

func TestRedisStore_CorruptModeValueBehavesAsAuto(t *testing.T) {
	store, mr := newTestStore(t)

	require.NoError(t, mr.Set("clearpath:mode:sess-1", "garbage"))

	mode, err := store.Mode(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, assistant.ModeAuto, mode)
}

// ─── RESET ───────────────────────────────────────────────────────────────────

func TestRedisStore_Reset(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendMessage(ctx, "sess-1", session.Message{ID: "a", Role: session.RoleUser, Content: "hi"}))
	require.NoError(t, store.SaveRecommendations(ctx, "sess-1", session.Recommendations{}))
	require.NoError(t, store.SetMode(ctx, "sess-1", assistant.ModeDemo))

	require.NoError(t, store.Reset(ctx, "sess-1"))

	history, err := store.History(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, history)

	_, ok, err := store.Recommendations(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, ok)

	mode, err := store.Mode(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, assistant.ModeAuto, mode)
}

func TestRedisStore_ResetLeavesOtherSessionsAlone(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendMessage(ctx, "sess-keep", session.Message{ID: "a", Role: session.RoleUser, Content: "hi"}))
	require.NoError(t, store.Reset(ctx, "sess-drop"))

	history, err := store.History(ctx, "sess-keep")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
