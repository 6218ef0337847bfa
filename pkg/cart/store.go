package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/mealbasket/gateway/pkg/storage"
)

type Store struct {
	kv storage.Store
}

func NewStore(kv storage.Store) *Store {
	return &Store{kv: kv}
}

func cartKey(contextID string) string { return fmt.Sprintf("cart:%s", contextID) }

// Load rehydrates the persisted cart for a context. An absent or malformed
// record yields a fresh empty cart rather than an error.
func (s *Store) Load(ctx context.Context, contextID string) (*Cart, error) {
	raw, err := s.kv.Get(ctx, cartKey(contextID))
	if errors.Is(err, storage.ErrNotFound) {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}

	var c Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		log.Printf("Warning: discarding corrupt cart record for context %s: %v", contextID, err)
		return New(), nil
	}
	if c.Items == nil {
		c.Items = make(map[string]*Item)
	}
	return &c, nil
}

func (s *Store) Save(ctx context.Context, contextID string, c *Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	return s.kv.Set(ctx, cartKey(contextID), raw)
}

func (s *Store) Clear(ctx context.Context, contextID string) error {
	return s.kv.Delete(ctx, cartKey(contextID))
}
