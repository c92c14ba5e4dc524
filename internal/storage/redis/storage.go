package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/puppybowl/internal/model"
	"github.com/mcoot/puppybowl/internal/storage"
)

// toggleScript flips set membership and refreshes the TTL in one step,
// so overlapping toggles from rapid clicks never lose an update.
var toggleScript = redis.NewScript(`
local key = KEYS[1]
local member = ARGV[1]
local ttl = tonumber(ARGV[2])
local revealed = 1
if redis.call('SISMEMBER', key, member) == 1 then
  redis.call('SREM', key, member)
  revealed = 0
else
  redis.call('SADD', key, member)
end
if ttl > 0 then
  redis.call('EXPIRE', key, ttl)
end
return revealed
`)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) ToggleRevealed(ctx context.Context, viewer model.ViewerID, id model.PlayerID) (bool, error) {
	ttlSeconds := int64(s.cfg.ViewerTTL / time.Second)
	res, err := toggleScript.Run(ctx, s.client, []string{revealedKey(viewer)}, string(id), ttlSeconds).Int()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

func (s *Storage) GetRevealed(ctx context.Context, viewer model.ViewerID) (map[model.PlayerID]bool, error) {
	members, err := s.client.SMembers(ctx, revealedKey(viewer)).Result()
	if err != nil {
		return nil, err
	}

	out := make(map[model.PlayerID]bool, len(members))
	for _, m := range members {
		out[model.PlayerID(m)] = true
	}
	return out, nil
}

// scanCount is the SCAN batch hint used when clearing a player for every viewer
const scanCount = 100

func (s *Storage) ClearRevealed(ctx context.Context, id model.PlayerID) error {
	iter := s.client.Scan(ctx, 0, revealedPattern(), scanCount).Iterator()
	pipe := s.client.Pipeline()
	for iter.Next(ctx) {
		pipe.SRem(ctx, iter.Val(), string(id))
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if pipe.Len() == 0 {
		return nil
	}
	_, err := pipe.Exec(ctx)
	return err
}
