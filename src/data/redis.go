package data

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/TendTo/MemeBot/src/shared/meme"
	"github.com/redis/go-redis/v9"
)

const streamEvents = "memebot.moderation"

// ConnectRedis parses url and pings the server.
func ConnectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	rdb := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return rdb, nil
}

var _ meme.EventSink = (*StreamSink)(nil)

// StreamSink appends moderation events to a Redis stream.
type StreamSink struct {
	rdb    *redis.Client
	stream string
	maxLen int64
}

func NewStreamSink(rdb *redis.Client) *StreamSink {
	return &StreamSink{rdb: rdb, stream: streamEvents, maxLen: 10000}
}

func (s *StreamSink) Publish(ctx context.Context, ev meme.Event) error {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"type":         string(ev.Type),
			"submitter_id": strconv.FormatInt(ev.SubmitterID, 10),
			"review_card":  strconv.FormatInt(ev.Review.CardID, 10),
			"review_chat":  strconv.FormatInt(ev.Review.ChatID, 10),
			"public_card":  strconv.FormatInt(ev.Public.CardID, 10),
			"public_chat":  strconv.FormatInt(ev.Public.ChatID, 10),
			"at":           at.UTC().Format(time.RFC3339),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("redis: publish %s: %w", ev.Type, err)
	}
	return nil
}
