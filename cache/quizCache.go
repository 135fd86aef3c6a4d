package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wikiquiz/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "wikiquiz:quiz:"

// QuizCache stores generated quizzes by the source URL they were generated from.
type QuizCache interface {
	Get(ctx context.Context, sourceURL string) (*models.Quiz, bool, error)
	Set(ctx context.Context, sourceURL string, quiz *models.Quiz) error
}

type NoopQuizCache struct{}

func (NoopQuizCache) Get(context.Context, string) (*models.Quiz, bool, error) {
	return nil, false, nil
}

func (NoopQuizCache) Set(context.Context, string, *models.Quiz) error {
	return nil
}

type RedisQuizCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.SugaredLogger
}

func NewRedisClient(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return client, nil
}

func NewRedisQuizCache(client *redis.Client, ttl time.Duration, logger *zap.SugaredLogger) *RedisQuizCache {
	return &RedisQuizCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisQuizCache) Get(ctx context.Context, sourceURL string) (*models.Quiz, bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+sourceURL).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached quiz: %w", err)
	}

	var quiz models.Quiz
	if err := json.Unmarshal(data, &quiz); err != nil {
		c.logger.Warnf("Discarding undecodable cache entry for %s: %v", sourceURL, err)
		return nil, false, nil
	}

	return &quiz, true, nil
}

func (c *RedisQuizCache) Set(ctx context.Context, sourceURL string, quiz *models.Quiz) error {
	data, err := json.Marshal(quiz)
	if err != nil {
		return fmt.Errorf("failed to marshal quiz: %w", err)
	}

	if err := c.client.Set(ctx, keyPrefix+sourceURL, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache quiz: %w", err)
	}

	return nil
}

func (c *RedisQuizCache) Close() error {
	return c.client.Close()
}
