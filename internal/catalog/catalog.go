// Package catalog serves the menu to customers. Reads go through a Redis
// cache with a short TTL; a broken cache degrades to the store instead of
// failing the request.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"restaurant-pos/internal/logger"
	"restaurant-pos/internal/models"
)

// MenuStore is the persistent side of the catalog
type MenuStore interface {
	ListAvailable(ctx context.Context) ([]models.MenuItem, error)
	Get(ctx context.Context, id int64) (*models.MenuItem, error)
}

// Service provides cached catalog reads
type Service struct {
	store  MenuStore
	cache  Cache
	ttl    time.Duration
	logger *logger.Logger
}

// NewService creates a catalog service. cache may be nil when no Redis is
// configured; reads then always hit the store.
func NewService(store MenuStore, cache Cache, ttl time.Duration, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		ttl:    ttl,
		logger: log,
	}
}

// ListAvailable returns the available menu items, served from cache when warm
func (s *Service) ListAvailable(ctx context.Context, requestID string) ([]models.MenuItem, error) {
	if s.cache != nil {
		key := s.cache.GenerateKey("menu", "available")
		if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
			var items []models.MenuItem
			if err := json.Unmarshal([]byte(cached), &items); err == nil {
				return items, nil
			}
		} else if err != nil {
			s.logger.Warn("cache_read_failed", "Menu cache read failed, falling back to store", requestID, map[string]interface{}{
				"key": key,
			})
		}
	}

	items, err := s.store.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("load menu: %w", err)
	}

	if s.cache != nil {
		if body, err := json.Marshal(items); err == nil {
			key := s.cache.GenerateKey("menu", "available")
			if err := s.cache.Set(ctx, key, string(body), s.ttl); err != nil {
				s.logger.Warn("cache_write_failed", "Menu cache write failed", requestID, map[string]interface{}{
					"key": key,
				})
			}
		}
	}

	return items, nil
}

// Item returns one available menu item by ID
func (s *Service) Item(ctx context.Context, id int64, requestID string) (*models.MenuItem, error) {
	if s.cache != nil {
		key := s.cache.GenerateKey("item", fmt.Sprintf("%d", id))
		if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
			var item models.MenuItem
			if err := json.Unmarshal([]byte(cached), &item); err == nil {
				return &item, nil
			}
		} else if err != nil {
			s.logger.Warn("cache_read_failed", "Menu item cache read failed, falling back to store", requestID, map[string]interface{}{
				"key": key,
			})
		}
	}

	item, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if body, err := json.Marshal(item); err == nil {
			key := s.cache.GenerateKey("item", fmt.Sprintf("%d", id))
			if err := s.cache.Set(ctx, key, string(body), s.ttl); err != nil {
				s.logger.Warn("cache_write_failed", "Menu item cache write failed", requestID, map[string]interface{}{
					"key": key,
				})
			}
		}
	}

	return item, nil
}
