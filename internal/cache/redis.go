package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// How long the last confirmed claim stays queryable after the fact.
const lastClaimTTL = 7 * 24 * time.Hour

// ClaimRecord is the last confirmed claim for an address.
type ClaimRecord struct {
	Amount    int64     `json:"amount"`
	TxHash    string    `json:"tx_hash"`
	ClaimedAt time.Time `json:"claimed_at"`
}

// RedisClient wraps the Redis client with claim-window operations.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient creates a new Redis client and verifies connectivity.
func NewRedisClient(redisURL string) (*RedisClient, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// Close closes the Redis connection.
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// SaveWindow stores the claim window for an address. The key expires exactly
// when the window does, so an absent key means the address is eligible.
func (r *RedisClient) SaveWindow(ctx context.Context, address string, endsAt time.Time) error {
	ttl := time.Until(endsAt)
	if ttl <= 0 {
		return r.ClearWindow(ctx, address)
	}

	key := fmt.Sprintf("claim:window:%s", address)
	return r.client.Set(ctx, key, endsAt.Format(time.RFC3339), ttl).Err()
}

// Window returns the stored window end for an address, or the zero time when
// no window is active. A stale entry past its end time is treated as expired
// and cleaned up.
func (r *RedisClient) Window(ctx context.Context, address string) (time.Time, error) {
	key := fmt.Sprintf("claim:window:%s", address)

	value, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}

	endsAt, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt window entry for %s: %w", address, err)
	}
	if !time.Now().Before(endsAt) {
		r.client.Del(ctx, key)
		return time.Time{}, nil
	}
	return endsAt, nil
}

// ClearWindow removes any stored window for an address.
func (r *RedisClient) ClearWindow(ctx context.Context, address string) error {
	key := fmt.Sprintf("claim:window:%s", address)
	return r.client.Del(ctx, key).Err()
}

// RecordClaim stores the last confirmed claim for an address.
func (r *RedisClient) RecordClaim(ctx context.Context, address string, amount int64, txHash string, claimedAt time.Time) error {
	payload, err := json.Marshal(ClaimRecord{
		Amount:    amount,
		TxHash:    txHash,
		ClaimedAt: claimedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to encode claim record: %w", err)
	}

	key := fmt.Sprintf("claim:last:%s", address)
	return r.client.Set(ctx, key, payload, lastClaimTTL).Err()
}

// LastClaim returns the last confirmed claim for an address, or nil when
// none is recorded.
func (r *RedisClient) LastClaim(ctx context.Context, address string) (*ClaimRecord, error) {
	key := fmt.Sprintf("claim:last:%s", address)

	payload, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var record ClaimRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return nil, fmt.Errorf("corrupt claim record for %s: %w", address, err)
	}
	return &record, nil
}

// Ping checks if Redis is responsive.
func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
