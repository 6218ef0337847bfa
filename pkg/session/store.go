// Package session persists the authenticated identity and bearer token for a
// browser context. Token and user live under two independent keys; a session
// only exists when both are present and parseable together.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/mealbasket/gateway/pkg/models"
	"github.com/mealbasket/gateway/pkg/storage"
)

type Store struct {
	kv storage.Store
}

func NewStore(kv storage.Store) *Store {
	return &Store{kv: kv}
}

func tokenKey(contextID string) string { return fmt.Sprintf("session:%s:token", contextID) }
func userKey(contextID string) string  { return fmt.Sprintf("session:%s:user", contextID) }

// Get returns the session for a context, or nil when there is none. A record
// missing either half, or with an unparseable user half, is treated as absent
// and the slot is cleared so the corruption cannot resurface.
func (s *Store) Get(ctx context.Context, contextID string) (*models.Session, error) {
	token, err := s.kv.Get(ctx, tokenKey(contextID))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	userJSON, err := s.kv.Get(ctx, userKey(contextID))
	if errors.Is(err, storage.ErrNotFound) {
		// Token without identity is half a session. Fail closed.
		s.clearQuietly(ctx, contextID)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(userJSON, &user); err != nil {
		log.Printf("Warning: clearing corrupt session record for context %s: %v", contextID, err)
		s.clearQuietly(ctx, contextID)
		return nil, nil
	}
	if len(token) == 0 || user.ID == "" || user.Role == "" {
		s.clearQuietly(ctx, contextID)
		return nil, nil
	}

	return &models.Session{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		Token:  string(token),
	}, nil
}

func (s *Store) Set(ctx context.Context, contextID string, sess *models.Session) error {
	if sess.Token == "" || sess.Role == "" {
		return fmt.Errorf("session for context %s is missing token or role", contextID)
	}

	userJSON, err := json.Marshal(sess.User())
	if err != nil {
		return fmt.Errorf("marshal session user: %w", err)
	}
	if err := s.kv.Set(ctx, tokenKey(contextID), []byte(sess.Token)); err != nil {
		return err
	}
	if err := s.kv.Set(ctx, userKey(contextID), userJSON); err != nil {
		// Do not leave a token-only record behind.
		s.clearQuietly(ctx, contextID)
		return err
	}
	return nil
}

func (s *Store) Clear(ctx context.Context, contextID string) error {
	return s.kv.Delete(ctx, tokenKey(contextID), userKey(contextID))
}

func (s *Store) clearQuietly(ctx context.Context, contextID string) {
	if err := s.Clear(ctx, contextID); err != nil {
		log.Printf("Warning: failed to clear session slot for context %s: %v", contextID, err)
	}
}
