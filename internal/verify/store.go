package verify

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
)

// CodeTTL bounds how long a verification code stays valid
const CodeTTL = 10 * time.Minute

// Store keeps pending email verification codes in Redis with a TTL,
// so codes survive process restarts and expire on their own.
type Store struct {
	client *redis.Client
	prefix string
}

// NewStore connects to Redis and pings it before returning a store
func NewStore(address string) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr: address,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &Store{client: client, prefix: "verify:"}, nil
}

// NewStoreWithClient creates a store from an existing Redis client
func NewStoreWithClient(client *redis.Client) *Store {
	return &Store{client: client, prefix: "verify:"}
}

func (s *Store) key(email string) string {
	return s.prefix + email
}

// GenerateCode produces a 6-digit one-time code
func GenerateCode() string {
	return fmt.Sprintf("%06d", rand.Intn(900000)+100000)
}

// Save stores the code for an email, replacing any pending one
func (s *Store) Save(ctx context.Context, email, code string) error {
	if err := s.client.Set(ctx, s.key(email), code, CodeTTL).Err(); err != nil {
		return fmt.Errorf("save verification code: %w", err)
	}
	return nil
}

// Check reports whether the supplied code matches the pending one
func (s *Store) Check(ctx context.Context, email, code string) (bool, error) {
	stored, err := s.client.Get(ctx, s.key(email)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup verification code: %w", err)
	}
	return code != "" && stored == code, nil
}

// Consume deletes the code after successful use. Codes are one-time.
func (s *Store) Consume(ctx context.Context, email string) error {
	return s.client.Del(ctx, s.key(email)).Err()
}
