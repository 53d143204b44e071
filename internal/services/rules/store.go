package rules

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"recon-analysis-backend/internal/models"
)

// Source supplies rule configuration for a workspace.
//
//go:generate mockgen -destination=mocks/mock_source.go -source=store.go Source
type Source interface {
	FetchRules(ctx context.Context, workspaceID string) (map[int64]models.Rule, error)
	FetchStateMappings(ctx context.Context, workspaceID string) ([]models.RuleStateMapping, error)
}

// Store caches resolved rules per workspace. Same contract as the schema
// catalog cache: populated at most once, last writer wins, dropped only via
// Invalidate.
type Store struct {
	source Source
	log    *slog.Logger

	mu    sync.RWMutex
	cache map[string][]ResolvedRule
}

func NewStore(source Source, log *slog.Logger) *Store {
	return &Store{
		source: source,
		log:    log,
		cache:  make(map[string][]ResolvedRule),
	}
}

// Resolved returns the workspace's resolved rules in mapping order.
func (s *Store) Resolved(ctx context.Context, workspaceID string) ([]ResolvedRule, error) {
	s.mu.RLock()
	cached, ok := s.cache[workspaceID]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	subRules, err := s.source.FetchRules(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("fetch rules for %s: %w", workspaceID, err)
	}
	mappings, err := s.source.FetchStateMappings(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("fetch rule state mappings for %s: %w", workspaceID, err)
	}

	resolved := Resolve(mappings, subRules)

	s.mu.Lock()
	s.cache[workspaceID] = resolved
	s.mu.Unlock()

	s.log.Info("rules resolved",
		"workspace_id", workspaceID,
		"mappings", len(mappings),
		"sub_rules", len(subRules),
	)
	return resolved, nil
}

// Invalidate drops the cached rules for a workspace.
func (s *Store) Invalidate(workspaceID string) {
	s.mu.Lock()
	delete(s.cache, workspaceID)
	s.mu.Unlock()
	s.log.Info("rule cache invalidated", "workspace_id", workspaceID)
}
