package cache

import (
	"context"
	"encoding/json"
	"time"

	"vehicle-care-booking/internal/domain/payment"
	"vehicle-care-booking/internal/pkg/config"
	"vehicle-care-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "checkout:session:"
	rateKeyPrefix    = "checkout:rate:"
)

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// SessionStore keeps the advisory checkout session index and the per-user
// session budget in Redis.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Save(ctx context.Context, sess payment.Session, ttl time.Duration) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return errs.Wrap(err, "marshal checkout session")
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+sess.ID, data, ttl).Err(); err != nil {
		return errs.Wrap(err, "store checkout session")
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (*payment.Session, error) {
	val, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if errs.Is(err, redis.Nil) {
		return nil, payment.ErrSessionNotFound
	}
	if err != nil {
		return nil, errs.Wrap(err, "load checkout session")
	}

	var sess payment.Session
	if err := json.Unmarshal(val, &sess); err != nil {
		return nil, errs.Wrap(err, "unmarshal checkout session")
	}
	return &sess, nil
}

// Allow counts one attempt in a fixed window and reports whether the user is still under limit.
func (s *SessionStore) Allow(ctx context.Context, userID uuid.UUID, limit int, window time.Duration) (bool, error) {
	key := rateKeyPrefix + userID.String()

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return false, errs.Wrap(err, "increment checkout rate counter")
	}
	if count == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return false, errs.Wrap(err, "set checkout rate window")
		}
	}
	return count <= int64(limit), nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return errs.Wrap(err, "failed to ping redis")
	}
	return nil
}
