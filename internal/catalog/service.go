package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"readiness-backend/internal/scoring"
	"readiness-backend/internal/shared/telemetry"
)

const (
	keySkills         = "skills"
	keyCertifications = "certifications"
)

// Source fetches catalogs from the scoring service.
type Source interface {
	Skills(ctx context.Context) (scoring.Catalog, error)
	Certifications(ctx context.Context) (scoring.CertificationCatalog, error)
}

// Service serves catalogs through a cache. Cache failures are logged and
// bypassed; only source failures reach the caller.
type Service struct {
	source Source
	cache  Cache
	ttl    time.Duration
}

// NewService constructs a Service. A nil cache disables caching.
func NewService(source Source, cache Cache, ttl time.Duration) *Service {
	return &Service{source: source, cache: cache, ttl: ttl}
}

// Skills returns the categorized skill catalog.
func (s *Service) Skills(ctx context.Context) (scoring.Catalog, error) {
	return fetch(ctx, s, keySkills, s.source.Skills)
}

// Certifications returns the tiered certification catalog.
func (s *Service) Certifications(ctx context.Context) (scoring.CertificationCatalog, error) {
	return fetch(ctx, s, keyCertifications, s.source.Certifications)
}

// fetch serves key from the cache, falling back to load. A cached value
// that no longer decodes is treated as a miss and replaced.
func fetch[T any](ctx context.Context, s *Service, key string, load func(context.Context) (T, error)) (T, error) {
	if s.cache != nil {
		data, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			var cached T
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
			telemetry.Warn("catalog.cache.corrupt", map[string]any{"key": key, "error": err})
		case !errors.Is(err, ErrMiss):
			telemetry.Warn("catalog.cache.miss", map[string]any{"key": key, "error": err})
		}
	}

	value, err := load(ctx)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("fetch %s catalog: %w", key, err)
	}
	if s.cache != nil {
		data, err := json.Marshal(value)
		if err != nil {
			telemetry.Warn("catalog.cache.encode", map[string]any{"key": key, "error": err})
			return value, nil
		}
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			telemetry.Warn("catalog.cache.miss", map[string]any{"key": key, "error": err})
		}
	}
	return value, nil
}
