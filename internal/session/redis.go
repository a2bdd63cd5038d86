package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mara2525/clearpath-health-backend/internal/assistant"
)

// Key prefixes. One key per concern per session so Reset can drop them in a
// single DEL and TTLs apply uniformly.
const (
	chatKeyPrefix = "clearpath:chat:"
	recsKeyPrefix = "clearpath:recs:"
	modeKeyPrefix = "clearpath:mode:"
)

// redisStore is the Redis-backed Store implementation.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection. ttl bounds how
// long abandoned session state lingers; every write refreshes it.
func NewRedisStore(ctx context.Context, addr, password string, db int, ttl time.Duration) (Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("session: redis ping: %w", err)
	}

	return &redisStore{client: client, ttl: ttl}, nil
}

// NewRedisStoreFromClient wraps an existing client. Used by tests with
// miniredis.
func NewRedisStoreFromClient(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

// ─── CHAT HISTORY ────────────────────────────────────────────────────────────

func (s *redisStore) AppendMessage(ctx context.Context, sessionID string, m Message) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("session: marshal message: %w", err)
	}

	key := chatKeyPrefix + sessionID
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session: append message: %w", err)
	}
	return nil
}

func (s *redisStore) History(ctx context.Context, sessionID string) ([]Message, error) {
	raw, err := s.client.LRange(ctx, chatKeyPrefix+sessionID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("session: read history: %w", err)
	}

	messages := make([]Message, 0, len(raw))
	for _, item := range raw {
		var m Message
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			return nil, fmt.Errorf("session: unmarshal message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, nil
}

func (s *redisStore) ClearHistory(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, chatKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("session: clear history: %w", err)
	}
	return nil
}

// ─── RECOMMENDATIONS CACHE ───────────────────────────────────────────────────

func (s *redisStore) SaveRecommendations(ctx context.Context, sessionID string, rec Recommendations) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("session: marshal recommendations: %w", err)
	}
	if err := s.client.Set(ctx, recsKeyPrefix+sessionID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("session: save recommendations: %w", err)
	}
	return nil
}

func (s *redisStore) Recommendations(ctx context.Context, sessionID string) (Recommendations, bool, error) {
	raw, err := s.client.Get(ctx, recsKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return Recommendations{}, false, nil
	}
	if err != nil {
		return Recommendations{}, false, fmt.Errorf("session: read recommendations: %w", err)
	}

	var rec Recommendations
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Recommendations{}, false, fmt.Errorf("session: unmarshal recommendations: %w", err)
	}
	return rec, true, nil
}

// ─── ASSISTANT MODE OVERRIDE ─────────────────────────────────────────────────

func (s *redisStore) SetMode(ctx context.Context, sessionID string, mode assistant.Mode) error {
	key := modeKeyPrefix + sessionID
	if mode == assistant.ModeAuto {
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("session: clear mode: %w", err)
		}
		return nil
	}
	if err := s.client.Set(ctx, key, string(mode), s.ttl).Err(); err != nil {
		return fmt.Errorf("session: set mode: %w", err)
	}
	return nil
}

func (s *redisStore) Mode(ctx context.Context, sessionID string) (assistant.Mode, error) {
	raw, err := s.client.Get(ctx, modeKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return assistant.ModeAuto, nil
	}
	if err != nil {
		return assistant.ModeAuto, fmt.Errorf("session: read mode: %w", err)
	}

	mode, err := assistant.ParseMode(raw)
	if err != nil {
		// A corrupt value behaves like no override rather than failing chat.
		return assistant.ModeAuto, nil
	}
	return mode, nil
}

// ─── RESET ───────────────────────────────────────────────────────────────────

func (s *redisStore) Reset(ctx context.Context, sessionID string) error {
	keys := []string{
		chatKeyPrefix + sessionID,
		recsKeyPrefix + sessionID,
		modeKeyPrefix + sessionID,
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("session: reset: %w", err)
	}
	return nil
}
