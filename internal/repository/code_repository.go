package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCodeNotFound means no confirmation code is pending for the user,
// either because none was issued or because it expired or was consumed.
var ErrCodeNotFound = errors.New("confirmation code not found")

// CodeRepository stores pending confirmation codes. One code per user:
// saving overwrites whatever was there, so a resend always invalidates
// the previously issued code.
type CodeRepository interface {
	Save(ctx context.Context, userID, codeHash string) error
	Get(ctx context.Context, userID string) (string, error)
	Invalidate(ctx context.Context, userID string) error
}

type codeRedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCodeRepository creates a Redis-backed CodeRepository. Codes expire
// naturally after ttl.
func NewCodeRepository(client *redis.Client, ttl time.Duration) CodeRepository {
	return &codeRedisRepository{client: client, ttl: ttl}
}

// ConnectRedis opens and verifies a Redis connection from a redis:// URL.
func ConnectRedis(url, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func codeKey(userID string) string {
	return fmt.Sprintf("confirmation_code:user:%s", userID)
}

func (r *codeRedisRepository) Save(ctx context.Context, userID, codeHash string) error {
	return r.client.Set(ctx, codeKey(userID), codeHash, r.ttl).Err()
}

func (r *codeRedisRepository) Get(ctx context.Context, userID string) (string, error) {
	value, err := r.client.Get(ctx, codeKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *codeRedisRepository) Invalidate(ctx context.Context, userID string) error {
	return r.client.Del(ctx, codeKey(userID)).Err()
}
