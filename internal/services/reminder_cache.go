package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReminderCache stores generated reminders in Redis so repeated requests
// don't re-call the model while the underlying logs are unlikely to have
// changed much. Cache failures are swallowed; the cache is best-effort.
type ReminderCache struct {
	client *redis.Client
}

// NewReminderCache connects to Redis and verifies the connection.
func NewReminderCache(host, port string) (*ReminderCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &ReminderCache{client: client}, nil
}

func reminderKey(userID string) string {
	return fmt.Sprintf("user:%s:reminders", userID)
}

// Get returns the cached reminders for userID, if any.
func (c *ReminderCache) Get(ctx context.Context, userID string) ([]Reminder, bool) {
	result := c.client.Get(ctx, reminderKey(userID))
	if result.Err() != nil {
		return nil, false
	}

	var reminders []Reminder
	if err := json.Unmarshal([]byte(result.Val()), &reminders); err != nil {
		return nil, false
	}
	return reminders, true
}

// Set stores reminders for userID with a TTL.
func (c *ReminderCache) Set(ctx context.Context, userID string, reminders []Reminder) {
	data, err := json.Marshal(reminders)
	if err != nil {
		return
	}
	c.client.Set(ctx, reminderKey(userID), data, reminderCacheTTL)
}

// Invalidate drops the cached reminders for userID. Called after glucose log
// mutations so stale suggestions don't outlive the data they were based on.
func (c *ReminderCache) Invalidate(ctx context.Context, userID string) {
	c.client.Del(ctx, reminderKey(userID))
}

// Close closes the Redis connection.
func (c *ReminderCache) Close() error {
	return c.client.Close()
}
