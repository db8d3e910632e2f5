package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionPrefix = "session:"
	dailyPrefix   = "daily:"

	// envelopeVersion tags the serialized daily envelope so a future shape
	// change invalidates old entries instead of misparsing them.
	envelopeVersion = 1

	dayFormat = "2006-01-02"
)

// Cache is the two-policy cache layer in front of the quota-limited external
// APIs. Session entries live until ClearSession; daily entries are valid only
// for the local calendar day they were written on.
//
// A nil store disables caching: every read is a miss and writes are no-ops,
// so the service degrades to fetch-always instead of failing.
type Cache struct {
	store Store
	now   func() time.Time
}

// New creates a Cache over the given backing store.
func New(store Store) *Cache {
	return &Cache{store: store, now: time.Now}
}

// NewWithClock creates a Cache with an injected clock for day-boundary
// testing.
func NewWithClock(store Store, now func() time.Time) *Cache {
	return &Cache{store: store, now: now}
}

// NewFromRedisURL connects to Redis and returns a Cache over it plus the
// underlying client for health checks. An empty URL or a failed connection
// yields a disabled cache and a nil client, never an error.
func NewFromRedisURL(redisURL string) (*Cache, *redis.Client) {
	if redisURL == "" {
		log.Println("cache: no redis URL configured, caching disabled")
		return New(nil), nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("cache: invalid redis URL %q, caching disabled: %v", redisURL, err)
		return New(nil), nil
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("cache: redis connection failed, caching disabled: %v", err)
		return New(nil), nil
	}

	log.Println("cache: redis connected")
	return New(NewRedisStore(rdb)), rdb
}

// Enabled reports whether a backing store is configured.
func (c *Cache) Enabled() bool {
	return c != nil && c.store != nil
}

// dailyEnvelope wraps every daily value with its write day so expiry is
// checked against the calendar date, not just the store TTL.
type dailyEnvelope struct {
	Version int             `json:"v"`
	Day     string          `json:"day"`
	Payload json.RawMessage `json:"payload"`
}

// GetDaily reads a daily entry into dst. It returns false on any miss:
// absent key, stale day, version mismatch, or corrupt payload. Stale and
// corrupt entries are deleted on the way out.
func (c *Cache) GetDaily(ctx context.Context, key string, dst any) bool {
	if !c.Enabled() {
		return false
	}
	fullKey := dailyPrefix + key

	raw, err := c.store.Get(ctx, fullKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("cache: daily get error for %s: %v", key, err)
		}
		return false
	}

	var env dailyEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Version != envelopeVersion {
		// Corrupt or outdated shape: treat as a miss, never an error.
		c.deleteQuiet(ctx, fullKey)
		return false
	}

	if env.Day != c.today() {
		c.deleteQuiet(ctx, fullKey)
		return false
	}

	if err := json.Unmarshal(env.Payload, dst); err != nil {
		c.deleteQuiet(ctx, fullKey)
		return false
	}
	return true
}

// SetDaily writes a daily entry stamped with today's local date. The store
// TTL is set to the next local midnight as a storage bound; the day stamp in
// the envelope is authoritative for reads.
func (c *Cache) SetDaily(ctx context.Context, key string, value any) error {
	if !c.Enabled() {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	env := dailyEnvelope{
		Version: envelopeVersion,
		Day:     c.today(),
		Payload: payload,
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return err
	}

	return c.store.Set(ctx, dailyPrefix+key, raw, c.untilMidnight())
}

// GetSession reads a session entry into dst. Corrupt payloads are a miss.
func (c *Cache) GetSession(ctx context.Context, key string, dst any) bool {
	if !c.Enabled() {
		return false
	}
	raw, err := c.store.Get(ctx, sessionPrefix+key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("cache: session get error for %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.deleteQuiet(ctx, sessionPrefix+key)
		return false
	}
	return true
}

// SetSession writes a session entry with no expiry.
func (c *Cache) SetSession(ctx context.Context, key string, value any) error {
	if !c.Enabled() {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, sessionPrefix+key, raw, 0)
}

// DeleteSession removes a single session entry.
func (c *Cache) DeleteSession(ctx context.Context, key string) error {
	if !c.Enabled() {
		return nil
	}
	return c.store.Delete(ctx, sessionPrefix+key)
}

// ClearSession removes all session entries. Called once at process start so
// a redeploy always begins with a clean slate.
func (c *Cache) ClearSession(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	keys, err := c.store.KeysWithPrefix(ctx, sessionPrefix)
	if err != nil {
		return err
	}
	return c.store.Delete(ctx, keys...)
}

// SweepDaily removes every daily entry whose stored day is not today.
// Run at startup and periodically to bound storage growth across days.
// It returns the number of entries removed.
func (c *Cache) SweepDaily(ctx context.Context) (int, error) {
	if !c.Enabled() {
		return 0, nil
	}
	keys, err := c.store.KeysWithPrefix(ctx, dailyPrefix)
	if err != nil {
		return 0, err
	}

	today := c.today()
	var stale []string
	for _, k := range keys {
		raw, err := c.store.Get(ctx, k)
		if err != nil {
			continue
		}
		var env dailyEnvelope
		if err := json.Unmarshal(raw, &env); err != nil || env.Version != envelopeVersion || env.Day != today {
			stale = append(stale, k)
		}
	}

	if len(stale) == 0 {
		return 0, nil
	}
	if err := c.store.Delete(ctx, stale...); err != nil {
		return 0, err
	}
	return len(stale), nil
}

func (c *Cache) today() string {
	return c.now().Local().Format(dayFormat)
}

// untilMidnight returns the duration from now to the next local midnight,
// with a minute of slack so the day-stamp check expires the entry first.
func (c *Cache) untilMidnight() time.Duration {
	now := c.now().Local()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return midnight.Sub(now) + time.Minute
}

func (c *Cache) deleteQuiet(ctx context.Context, keys ...string) {
	if err := c.store.Delete(ctx, keys...); err != nil {
		log.Printf("cache: delete error: %v", err)
	}
}
