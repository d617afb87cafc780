package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/tcfprep/backend/internal/engine"
	"github.com/tcfprep/backend/internal/model"
)

// HistoryService exposes the read side of the test history ledger.
type HistoryService struct {
	ledger *engine.Ledger
	log    zerolog.Logger
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(ledger *engine.Ledger, log zerolog.Logger) *HistoryService {
	return &HistoryService{
		ledger: ledger,
		log:    log.With().Str("component", "history_service").Logger(),
	}
}

// List returns a user's completed tests for one skill, oldest first.
func (s *HistoryService) List(ctx context.Context, userID int, skill model.Skill) ([]model.HistoryEntry, error) {
	entries, err := s.ledger.List(ctx, userID, skill)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	return entries, nil
}
