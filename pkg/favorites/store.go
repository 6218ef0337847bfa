package favorites

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

func favoritesKey(contextID string) string { return fmt.Sprintf("favorites:%s", contextID) }

func (s *Store) Load(ctx context.Context, contextID string) (*Favorites, error) {
	raw, err := s.kv.Get(ctx, favoritesKey(contextID))
	if errors.Is(err, storage.ErrNotFound) {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}

	var f Favorites
	if err := json.Unmarshal(raw, &f); err != nil {
		log.Printf("Warning: discarding corrupt favorites record for context %s: %v", contextID, err)
		return New(), nil
	}
	if f.Refs == nil {
		f.Refs = make(map[string]*Ref)
	}
	return &f, nil
}

func (s *Store) Save(ctx context.Context, contextID string, f *Favorites) error {
	raw, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal favorites: %w", err)
	}
	return s.kv.Set(ctx, favoritesKey(contextID), raw)
}

func (s *Store) Clear(ctx context.Context, contextID string) error {
	return s.kv.Delete(ctx, favoritesKey(contextID))
}
