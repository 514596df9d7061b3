package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/jonathangjertsen/benchscpi/internal/config"
)

// Reading is one buffered multimeter reading as published on the queue.
type Reading struct {
	Resource   string    `json:"resource"`
	Buffer     string    `json:"buffer"`
	Function   string    `json:"function"`
	Index      int       `json:"index"`
	Value      float64   `json:"value"`
	Relative   float64   `json:"relative_s"`
	CapturedAt time.Time `json:"captured_at"`
}

// PairReadings zips the READ and REL element series of one buffer read-out.
// meta supplies the shared fields; Index counts from 1 like the buffer.
func PairReadings(meta Reading, values, relative []float64) ([]Reading, error) {
	if len(values) != len(relative) {
		return nil, errors.Errorf("got %d values and %d timestamps", len(values), len(relative))
	}

	readings := make([]Reading, len(values))
	for i := range values {
		r := meta
		r.Index = i + 1
		r.Value = values[i]
		r.Relative = relative[i]
		readings[i] = r
	}
	return readings, nil
}

type MessageQueue struct {
	client  *redis.Client
	channel string
	maxLen  int64
	log     *logrus.Logger
}

func NewMessageQueue(cfg config.RedisConfig, log *logrus.Logger) (*MessageQueue, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "connecting to redis at %s", cfg.Addr)
	}

	log.WithField("addr", cfg.Addr).Info("redis connected")

	return &MessageQueue{
		client:  client,
		channel: cfg.Channel,
		maxLen:  cfg.MaxLen,
		log:     log,
	}, nil
}

// PublishBatch publishes every reading on the channel and appends it to the
// per-resource list, trimmed to the newest maxLen entries.
func (mq *MessageQueue) PublishBatch(ctx context.Context, readings []Reading) (int, error) {
	pipe := mq.client.Pipeline()

	queued := 0
	keys := make(map[string]struct{})
	for _, r := range readings {
		data, err := json.Marshal(r)
		if err != nil {
			mq.log.Errorf("encoding reading %d: %v", r.Index, err)
			continue
		}

		key := listKey(r.Resource)
		pipe.Publish(ctx, mq.channel, data)
		pipe.RPush(ctx, key, data)
		keys[key] = struct{}{}
		queued++
	}

	if mq.maxLen > 0 {
		for key := range keys {
			pipe.LTrim(ctx, key, -mq.maxLen, -1)
		}
	}

	if queued == 0 {
		return 0, nil
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, errors.Wrap(err, "publishing readings")
	}
	return queued, nil
}

func (mq *MessageQueue) Close() error {
	return mq.client.Close()
}

func listKey(resource string) string {
	return fmt.Sprintf("instrument:%s:readings", resource)
}
