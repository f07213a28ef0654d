package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

var (
	// ErrQueueFull is returned by a bounded queue that cannot accept more work
	ErrQueueFull = errors.New("notification queue is full")
	// ErrClosed is returned once a queue is closed and has nothing left to hand out
	ErrClosed = errors.New("notification queue is closed")
)

// Queue decouples producers (request handlers) from delivery workers.
// Enqueue must never block on delivery.
type Queue interface {
	Enqueue(ctx context.Context, n Notification) error
	Dequeue(ctx context.Context) (Notification, error)
	Len() int
	Close() error
}

// MemoryQueue is a bounded in-process queue. Items still buffered when the
// process exits are lost.
type MemoryQueue struct {
	mu     sync.RWMutex
	ch     chan Notification
	closed bool
}

func NewMemoryQueue(size int) *MemoryQueue {
	if size < 1 {
		size = 1
	}
	return &MemoryQueue{ch: make(chan Notification, size)}
}

func (q *MemoryQueue) Enqueue(_ context.Context, n Notification) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrClosed
	}
	select {
	case q.ch <- n:
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context) (Notification, error) {
	select {
	case n, ok := <-q.ch:
		if !ok {
			return Notification{}, ErrClosed
		}
		return n, nil
	case <-ctx.Done():
		return Notification{}, ctx.Err()
	}
}

func (q *MemoryQueue) Len() int {
	return len(q.ch)
}

// Close stops accepting work. Buffered items are still handed out.
func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.ch)
	}
	return nil
}

// RedisQueue stores notifications in a Redis list, so pending items survive
// restarts and can be drained by any replica.
type RedisQueue struct {
	rdb         *redis.Client
	key         string
	pollTimeout time.Duration

	mu     sync.RWMutex
	closed bool
}

// NewRedisClient parses redisURL and checks the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

func NewRedisQueue(rdb *redis.Client, key string) *RedisQueue {
	if key == "" {
		key = "xylem:notifications"
	}
	return &RedisQueue{rdb: rdb, key: key, pollTimeout: 2 * time.Second}
}

func (q *RedisQueue) Enqueue(ctx context.Context, n Notification) error {
	if q.isClosed() {
		return ErrClosed
	}
	data, err := encode(n)
	if err != nil {
		return err
	}
	return q.rdb.LPush(ctx, q.key, data).Err()
}

func (q *RedisQueue) Dequeue(ctx context.Context) (Notification, error) {
	for {
		if q.isClosed() {
			return Notification{}, ErrClosed
		}
		res, err := q.rdb.BRPop(ctx, q.pollTimeout, q.key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return Notification{}, ctx.Err()
			}
			return Notification{}, fmt.Errorf("brpop %s: %w", q.key, err)
		}
		// BRPOP replies with [key, value]
		if len(res) != 2 {
			continue
		}
		return decode(res[1])
	}
}

func (q *RedisQueue) Len() int {
	n, err := q.rdb.LLen(context.Background(), q.key).Result()
	if err != nil {
		return 0
	}
	return int(n)
}

// Close stops consumption. Items left in the list stay there for the next process.
func (q *RedisQueue) Close() error {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	return nil
}

func (q *RedisQueue) isClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

func encode(n Notification) (string, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return "", fmt.Errorf("failed to marshal notification: %w", err)
	}
	return string(data), nil
}

func decode(s string) (Notification, error) {
	var n Notification
	if err := json.Unmarshal([]byte(s), &n); err != nil {
		return Notification{}, fmt.Errorf("failed to unmarshal notification: %w", err)
	}
	return n, nil
}
