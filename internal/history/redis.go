package history

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/campus-assistant-engine/internal/jsonx"
)

const (
	redisKeyPrefix = "assistant:history:"
	redisTTL       = 24 * time.Hour
)

// RedisStore keeps session logs in Redis so multiple engine instances
// can share them. Same contract and cap as MemoryStore: each session
// key is trimmed to the MaxMessagesPerSession most recent entries.
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStore creates a Redis-backed store around an existing client.
func NewRedisStore(client *redis.Client, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		logger: logger,
	}
}

// Append pushes msg onto the session list and trims it to the cap.
func (s *RedisStore) Append(ctx context.Context, sessionID string, msg Message) error {
	data, err := jsonx.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	key := redisKeyPrefix + sessionID
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, MaxMessagesPerSession-1)
	pipe.Expire(ctx, key, redisTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// History returns the session's log in insertion order. Unknown
// sessions yield an empty slice.
func (s *RedisStore) History(ctx context.Context, sessionID string) ([]Message, error) {
	key := redisKeyPrefix + sessionID
	raw, err := s.client.LRange(ctx, key, 0, MaxMessagesPerSession-1).Result()
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	// LPUSH stores newest first; reverse into insertion order.
	messages := make([]Message, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var msg Message
		if err := jsonx.UnmarshalFromString(raw[i], &msg); err != nil {
			s.logger.Warn("Skipping unreadable history entry",
				zap.String("session_id", sessionID), zap.Error(err))
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
