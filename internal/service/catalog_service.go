package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/tcfprep/backend/internal/config"
	"github.com/tcfprep/backend/internal/engine"
	"github.com/tcfprep/backend/internal/model"
	"github.com/tcfprep/backend/internal/repository"
)

// ErrCatalogUnavailable marks the degraded empty-catalog state: the
// engine stays up and the UI shows an empty state instead of crashing.
var ErrCatalogUnavailable = errors.New("question catalog unavailable")

// CatalogPayload is the sanitized per-skill catalog served to clients.
type CatalogPayload struct {
	Skill     model.Skill               `json:"skill"`
	Total     int                       `json:"total"`
	Weights   []int                     `json:"weights"`
	Questions []model.QuestionForClient `json:"questions"`
}

// CatalogService loads question catalogs and caches their sanitized
// payloads in Redis.
type CatalogService struct {
	catalogRepo *repository.CatalogRepository
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(catalogRepo *repository.CatalogRepository, rdb *redis.Client, log zerolog.Logger) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		rdb:         rdb,
		log:         log.With().Str("component", "catalog_service").Logger(),
	}
}

// LoadCatalog fetches a skill's catalog at startup. A fetch or parse
// failure degrades to an empty catalog — callers treat zero questions
// as a degraded state, never a fatal one. Malformed questions are
// skipped with a warning rather than poisoning the whole catalog.
func (s *CatalogService) LoadCatalog(ctx context.Context, skill model.Skill) *engine.Catalog {
	questions, err := s.catalogRepo.ListBySkill(ctx, skill)
	if err != nil {
		s.log.Warn().Err(err).Str("skill", string(skill)).Msg("Catalog load failed, serving empty catalog")
		return engine.NewCatalog(nil)
	}

	valid := questions[:0]
	for i := range questions {
		if err := questions[i].Validate(); err != nil {
			s.log.Warn().Err(err).Msg("Skipping malformed question")
			continue
		}
		valid = append(valid, questions[i])
	}

	s.log.Info().Str("skill", string(skill)).Int("questions", len(valid)).Msg("Catalog loaded")
	return engine.NewCatalog(valid)
}

// WarmCatalogCache stores the sanitized payload in Redis so clients hit
// the fast lane instead of PostgreSQL.
func (s *CatalogService) WarmCatalogCache(ctx context.Context, catalog *engine.Catalog, skill model.Skill) error {
	payload := buildPayload(catalog, skill)
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode catalog payload: %w", err)
	}
	if err := s.rdb.Set(ctx, config.CacheKey.CatalogPayloadKey(string(skill)), raw, 0).Err(); err != nil {
		return fmt.Errorf("cache catalog payload: %w", err)
	}
	return nil
}

// GetCatalogPayload returns the cached payload, rebuilding from the
// in-memory catalog on a cache miss.
func (s *CatalogService) GetCatalogPayload(ctx context.Context, catalog *engine.Catalog, skill model.Skill) (*CatalogPayload, error) {
	if catalog.Empty() {
		return nil, ErrCatalogUnavailable
	}

	raw, err := s.rdb.Get(ctx, config.CacheKey.CatalogPayloadKey(string(skill))).Result()
	if err == nil {
		var payload CatalogPayload
		if err := json.Unmarshal([]byte(raw), &payload); err == nil {
			return &payload, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Catalog cache read failed, rebuilding")
	}

	payload := buildPayload(catalog, skill)

	// Self-heal the cache so the next request is fast.
	if err := s.WarmCatalogCache(ctx, catalog, skill); err != nil {
		s.log.Warn().Err(err).Msg("Catalog cache rewarm failed")
	}

	return payload, nil
}

func buildPayload(catalog *engine.Catalog, skill model.Skill) *CatalogPayload {
	questions := catalog.Questions()
	sanitized := make([]model.QuestionForClient, 0, len(questions))
	for i := range questions {
		sanitized = append(sanitized, questions[i].Sanitize())
	}
	return &CatalogPayload{
		Skill:     skill,
		Total:     catalog.Len(),
		Weights:   catalog.Weights(),
		Questions: sanitized,
	}
}
