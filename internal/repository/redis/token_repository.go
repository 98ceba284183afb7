package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionData is the server-side record behind an issued JWT. Tokens are
// only accepted while their session still exists here, so logout and forced
// invalidation take effect immediately.
type SessionData struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
}

type TokenRepository struct {
	client *redis.Client
}

func NewTokenRepository(client *redis.Client) *TokenRepository {
	return &TokenRepository{
		client: client,
	}
}

func sessionKey(userID string) string {
	return fmt.Sprintf("session:user:%s", userID)
}

func lookupKey(token string) string {
	return fmt.Sprintf("session:lookup:%s", token)
}

// StoreSession writes the session record and a token -> user reverse lookup,
// both expiring with the token.
func (r *TokenRepository) StoreSession(ctx context.Context, userID, role, token, ipAddress, userAgent string, ttl time.Duration) error {
	now := time.Now()
	data := SessionData{
		SessionID: uuid.NewString(),
		UserID:    userID,
		Role:      role,
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(userID), jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session in Redis: %w", err)
	}

	if err := r.client.Set(ctx, lookupKey(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session lookup: %w", err)
	}

	return nil
}

// ValidateToken resolves a token back to its user ID, failing when the
// session no longer exists.
func (r *TokenRepository) ValidateToken(ctx context.Context, token string) (string, error) {
	userID, err := r.client.Get(ctx, lookupKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", errors.New("session not found or expired")
		}
		return "", fmt.Errorf("failed to validate token: %w", err)
	}

	return userID, nil
}

func (r *TokenRepository) GetSession(ctx context.Context, userID string) (*SessionData, error) {
	val, err := r.client.Get(ctx, sessionKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errors.New("session not found")
		}
		return nil, fmt.Errorf("failed to get session from Redis: %w", err)
	}

	var data SessionData
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return &data, nil
}

// DeleteSession invalidates both session keys; used on logout.
func (r *TokenRepository) DeleteSession(ctx context.Context, userID, token string) error {
	if err := r.client.Del(ctx, sessionKey(userID), lookupKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
