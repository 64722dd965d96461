package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SessionRepository is the refresh-token allow-list. A refresh token is only
// accepted while its jti is stored; logout and rotation delete it.
type SessionRepository interface {
	Store(ctx context.Context, tokenID string, userID uuid.UUID, ttl time.Duration) error
	// Consume removes the refresh token and returns the user it belonged to,
	// or uuid.Nil when it was revoked, expired or already consumed. At most
	// one caller gets the owner for a given token.
	Consume(ctx context.Context, tokenID string) (uuid.UUID, error)
	Revoke(ctx context.Context, tokenID string) error
}

type sessionRepository struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewSessionRepository(rdb *redis.Client, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		rdb: rdb,
		log: log.With(zap.String("repository", "session")),
	}
}

func sessionKey(tokenID string) string {
	return "session:refresh:" + tokenID
}

func (r *sessionRepository) Store(ctx context.Context, tokenID string, userID uuid.UUID, ttl time.Duration) error {
	if err := r.rdb.Set(ctx, sessionKey(tokenID), userID.String(), ttl).Err(); err != nil {
		r.log.Error("Failed to store session",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Consume(ctx context.Context, tokenID string) (uuid.UUID, error) {
	value, err := r.rdb.GetDel(ctx, sessionKey(tokenID)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, nil
	}
	if err != nil {
		r.log.Error("Failed to consume session", zap.Error(err))
		return uuid.Nil, fmt.Errorf("consume session: %w", err)
	}

	userID, err := uuid.Parse(value)
	if err != nil {
		r.log.Warn("Corrupt session value", zap.String("value", value))
		return uuid.Nil, nil
	}
	return userID, nil
}

func (r *sessionRepository) Revoke(ctx context.Context, tokenID string) error {
	if err := r.rdb.Del(ctx, sessionKey(tokenID)).Err(); err != nil {
		r.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
