package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// StreamName is the Redis stream downstream exporters (the website JSON
// builder, notification bots) consume scoring events from.
const StreamName = "opfl.scores"

// TeamScoredEvent is published once per fantasy team scored in a run.
type TeamScoredEvent struct {
	Season int     `json:"season"`
	Week   int     `json:"week"`
	Team   string  `json:"team"`
	Total  float64 `json:"total"`
}

// RedisPublisher publishes scoring events to a Redis stream.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a publisher with its own connection.
func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisPublisher{client: client}, nil
}

// Close closes the Redis connection.
func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}

// PublishTeamScored appends a team-scored event to the stream.
func (rp *RedisPublisher) PublishTeamScored(ctx context.Context, event TeamScoredEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamName,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
