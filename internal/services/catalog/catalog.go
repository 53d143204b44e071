package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"recon-analysis-backend/internal/models"
)

// ErrWorkspaceNotFound is returned when the config source has no workspace
// for the requested id.
var ErrWorkspaceNotFound = errors.New("workspace not found")

// ConfigSource supplies workspace configuration. Implemented by the gorm
// repository in production and mocked in tests.
//
//go:generate mockgen -destination=mocks/mock_source.go -source=catalog.go ConfigSource
type ConfigSource interface {
	FetchWorkspace(ctx context.Context, workspaceID string) (*models.Workspace, error)
	FetchFileTypes(ctx context.Context, workspaceID string) ([]models.FileType, error)
}

// Category is the coarse side a record type belongs to.
type Category string

const (
	CategoryInternal     Category = "internal"
	CategoryCounterpart  Category = "counterpart"
	CategoryUnclassified Category = "unclassified"
)

// Name tokens that mark an internal ledger feed when the declared category is
// missing. "rzp" is the brand prefix the internal reports carry.
var internalNameTokens = []string{"internal", "rzp"}

// Canonical alias lists per logical comparison field, most specific first.
var fieldAliases = map[string][]string{
	"amount":    {"amount", "abs_amount", "mpayment_amt"},
	"reference": {"rrn", "payment_id"},
}

// RecordType is one workspace record type with the metadata the engine needs
// resolved up front: its unique-key field, its category, and the field-alias
// bindings used for cross-source comparison.
type RecordType struct {
	ID             string
	Name           string
	UniqueKeyField string
	Category       Category
	// FieldBindings maps each logical field to the alias names that can
	// carry it in this type's rows, filtered by the declared schema when
	// one is present.
	FieldBindings map[string][]string
}

// Snapshot is the cached view of one workspace's configuration.
type Snapshot struct {
	Workspace   models.Workspace
	RecordTypes []RecordType

	byID map[string]int
}

// ByID returns the record type with the given id.
func (s *Snapshot) ByID(id string) (RecordType, bool) {
	i, ok := s.byID[id]
	if !ok {
		return RecordType{}, false
	}
	return s.RecordTypes[i], true
}

// ByName returns the record type with the given name, case-insensitively.
func (s *Snapshot) ByName(name string) (RecordType, bool) {
	for _, rt := range s.RecordTypes {
		if strings.EqualFold(rt.Name, name) {
			return rt, true
		}
	}
	return RecordType{}, false
}

// Catalog is a read-through cache over workspace configuration. Entries are
// built at most once per workspace and dropped only via Invalidate; schema
// changes far less often than transactional data, so staleness between
// invalidations is acceptable.
type Catalog struct {
	source ConfigSource
	log    *slog.Logger

	mu    sync.RWMutex
	cache map[string]*Snapshot
}

func New(source ConfigSource, log *slog.Logger) *Catalog {
	return &Catalog{
		source: source,
		log:    log,
		cache:  make(map[string]*Snapshot),
	}
}

// Snapshot returns the workspace schema, loading and caching it on first use.
func (c *Catalog) Snapshot(ctx context.Context, workspaceID string) (*Snapshot, error) {
	c.mu.RLock()
	snap, ok := c.cache[workspaceID]
	c.mu.RUnlock()
	if ok {
		return snap, nil
	}

	snap, err := c.load(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	// Last writer wins; a concurrent load of the same workspace built the
	// same data from the same source.
	c.mu.Lock()
	c.cache[workspaceID] = snap
	c.mu.Unlock()
	return snap, nil
}

// Invalidate drops the cached schema for a workspace.
func (c *Catalog) Invalidate(workspaceID string) {
	c.mu.Lock()
	delete(c.cache, workspaceID)
	c.mu.Unlock()
	c.log.Info("workspace schema cache invalidated", "workspace_id", workspaceID)
}

func (c *Catalog) load(ctx context.Context, workspaceID string) (*Snapshot, error) {
	ws, err := c.source.FetchWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("fetch workspace %s: %w", workspaceID, err)
	}
	if ws == nil {
		return nil, ErrWorkspaceNotFound
	}

	fileTypes, err := c.source.FetchFileTypes(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("fetch file types for %s: %w", workspaceID, err)
	}

	snap := &Snapshot{
		Workspace:   *ws,
		RecordTypes: make([]RecordType, 0, len(fileTypes)),
		byID:        make(map[string]int, len(fileTypes)),
	}
	for _, ft := range fileTypes {
		rt := buildRecordType(ft)
		snap.byID[rt.ID] = len(snap.RecordTypes)
		snap.RecordTypes = append(snap.RecordTypes, rt)
	}

	c.log.Info("workspace schema loaded",
		"workspace_id", workspaceID,
		"record_types", len(snap.RecordTypes),
	)
	return snap, nil
}

func buildRecordType(ft models.FileType) RecordType {
	rt := RecordType{
		ID:       ft.ID,
		Name:     ft.Name,
		Category: Classify(ft),
	}
	if col, ok := ft.UniqueColumn(); ok {
		rt.UniqueKeyField = col
	}
	rt.FieldBindings = bindAliases(ft.SchemaColumns())
	return rt
}

// Classify decides the category from the declared source category, falling
// back to name substrings when it is absent.
func Classify(ft models.FileType) Category {
	cat := strings.ToLower(ft.SourceCategory)
	switch {
	case strings.Contains(cat, "internal"):
		return CategoryInternal
	case strings.Contains(cat, "bank"), strings.Contains(cat, "mis"):
		return CategoryCounterpart
	}

	name := strings.ToLower(ft.Name)
	for _, tok := range internalNameTokens {
		if strings.Contains(name, tok) {
			return CategoryInternal
		}
	}
	if strings.Contains(name, "bank") || strings.Contains(name, "mis") {
		return CategoryCounterpart
	}
	return CategoryUnclassified
}

// bindAliases narrows the canonical alias lists to the columns the type
// declares. With no declared schema the full list is kept, since rows may
// still carry any of the aliases.
func bindAliases(declared []string) map[string][]string {
	bindings := make(map[string][]string, len(fieldAliases))
	if len(declared) == 0 {
		for field, aliases := range fieldAliases {
			bindings[field] = aliases
		}
		return bindings
	}

	have := make(map[string]bool, len(declared))
	for _, col := range declared {
		have[col] = true
	}
	for field, aliases := range fieldAliases {
		var bound []string
		for _, a := range aliases {
			if have[a] {
				bound = append(bound, a)
			}
		}
		if bound == nil {
			// Schema does not declare any alias; fall back to the
			// full list rather than silently dropping the field.
			bound = aliases
		}
		bindings[field] = bound
	}
	return bindings
}
