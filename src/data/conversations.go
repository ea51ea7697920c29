package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/TendTo/MemeBot/src/submission"
	"github.com/redis/go-redis/v9"
)

const conversationPrefix = "memebot:conv:"

var _ submission.ConversationStore = (*RedisConversations)(nil)

// RedisConversations keeps submission conversations in Redis so they survive
// restarts. Keys expire after ttl of inactivity.
type RedisConversations struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisConversations(rdb *redis.Client, ttl time.Duration) *RedisConversations {
	return &RedisConversations{rdb: rdb, ttl: ttl}
}

func conversationKey(userID int64) string {
	return conversationPrefix + strconv.FormatInt(userID, 10)
}

func (r *RedisConversations) Load(ctx context.Context, userID int64) (submission.Conversation, error) {
	raw, err := r.rdb.Get(ctx, conversationKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return submission.Conversation{UserID: userID, State: submission.StateIdle}, nil
	}
	if err != nil {
		return submission.Conversation{}, fmt.Errorf("redis: load conversation: %w", err)
	}
	var c submission.Conversation
	if err := json.Unmarshal(raw, &c); err != nil {
		return submission.Conversation{}, fmt.Errorf("redis: decode conversation: %w", err)
	}
	return c, nil
}

func (r *RedisConversations) Save(ctx context.Context, c submission.Conversation) error {
	c.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("redis: encode conversation: %w", err)
	}
	if err := r.rdb.Set(ctx, conversationKey(c.UserID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis: save conversation: %w", err)
	}
	return nil
}

func (r *RedisConversations) Clear(ctx context.Context, userID int64) error {
	if err := r.rdb.Del(ctx, conversationKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis: clear conversation: %w", err)
	}
	return nil
}
