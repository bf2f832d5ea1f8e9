package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ava-assistant/internal/domain/entity"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned for unknown or expired session IDs.
var ErrSessionNotFound = errors.New("session not found or expired")

const sessionKeyPrefix = "ava:session:"

// SessionStore keeps BookingSession documents in Redis for the session TTL.
// An abandoned session simply expires with its state discarded.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (s *SessionStore) Get(ctx context.Context, id string) (*entity.BookingSession, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}

	var session entity.BookingSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &session, nil
}

// Save writes the session back and refreshes its TTL, so the session
// lives as long as the patient keeps interacting.
func (s *SessionStore) Save(ctx context.Context, session *entity.BookingSession) error {
	session.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.ID, err)
	}

	if err := s.client.Set(ctx, sessionKey(session.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", session.ID, err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}
