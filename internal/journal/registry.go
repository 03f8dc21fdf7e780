// Package journal routes journal appends and reads to the per-category
// stores and builds the merged, time-ordered view across them.
package journal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/journal/internal/jsonstore"
	"github.com/mesh-intelligence/journal/pkg/types"
)

// Registry owns one store per standard category. It validates input,
// stamps new records with an id and a creation time, and delegates
// persistence to the category's store.
type Registry struct {
	stores map[types.Category]*jsonstore.Store
	logger *slog.Logger
	now    func() time.Time

	clockMu sync.Mutex
	last    time.Time // last issued creation time
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock sets the wall clock used for creation times.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLogger sets the logger passed to the registry and its stores.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// Open validates cfg, creates DataDir if needed, and initializes an empty
// store for every category that has no backing file yet. Existing files
// are left as they are.
func Open(cfg types.Config, opts ...Option) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Registry{
		stores: make(map[types.Category]*jsonstore.Store, len(types.StandardCategories)),
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	for _, c := range types.StandardCategories {
		path := filepath.Join(cfg.DataDir, c.FileName())
		s := jsonstore.New(path, jsonstore.WithLogger(r.logger.With("category", string(c))))
		if err := s.Initialize(); err != nil {
			return nil, fmt.Errorf("initialize %s store: %w", c, err)
		}
		r.stores[c] = s
	}

	r.logger.Debug("journal opened", "data_dir", cfg.DataDir)
	return r, nil
}

// Path returns the backing file of category, or the empty string for an
// unknown category.
func (r *Registry) Path(category types.Category) string {
	if s, ok := r.stores[category]; ok {
		return s.Path()
	}
	return ""
}

// Append validates fields for category and, when they pass, stores a new
// record built from them. The registry attaches the id and the temporal
// field; any id, date, or timestamp in fields is ignored. Returns the
// stored record, a *types.ValidationError (storage untouched), or a
// *types.WriteError.
func (r *Registry) Append(category types.Category, fields types.Fields) (types.Record, error) {
	if err := types.Validate(category, fields); err != nil {
		r.logger.Debug("rejected record", "category", string(category), "err", err)
		return nil, err
	}

	rec := types.Normalize(category, fields)
	rec[types.FieldID] = generateUUID()
	rec[category.TemporalField()] = types.FormatTime(r.stamp())

	if err := r.stores[category].Append(rec); err != nil {
		return nil, err
	}
	r.logger.Info("record appended", "category", string(category), "id", rec[types.FieldID])
	return rec, nil
}

// LogSkill appends a skill-practice record.
func (r *Registry) LogSkill(skill, task string) (types.Record, error) {
	return r.Append(types.CategorySkill, types.Fields{
		types.FieldSkill: skill,
		types.FieldTask:  task,
	})
}

// LogMilestone appends a milestone record.
func (r *Registry) LogMilestone(milestone string, status types.MilestoneStatus) (types.Record, error) {
	return r.Append(types.CategoryMilestone, types.Fields{
		types.FieldMilestone: milestone,
		types.FieldStatus:    status,
	})
}

// LogReflection appends a reflection record.
func (r *Registry) LogReflection(reflection string) (types.Record, error) {
	return r.Append(types.CategoryReflection, types.Fields{
		types.FieldReflection: reflection,
	})
}

// List returns every record of category in append order. If the backing
// file cannot be read, List returns an empty slice together with the
// *types.ReadError so the caller can report it.
func (r *Registry) List(category types.Category) ([]types.Record, error) {
	s, ok := r.stores[category]
	if !ok {
		return nil, &types.ValidationError{Category: category, Err: types.ErrUnknownCategory}
	}
	return s.ReadAll()
}

// AllSorted returns the merged view over every category. See View.
func (r *Registry) AllSorted() ([]types.TaggedRecord, error) {
	return NewView(r).AllSorted()
}

// stamp returns the creation time for a new record. Times are truncated to
// the stored precision and strictly increase within the registry, so two
// records appended in the same microsecond still sort in append order.
func (r *Registry) stamp() time.Time {
	r.clockMu.Lock()
	defer r.clockMu.Unlock()

	t := r.now().UTC().Truncate(time.Microsecond)
	if !t.After(r.last) {
		t = r.last.Add(time.Microsecond)
	}
	r.last = t
	return t
}

// generateUUID generates a new UUID v7 for record IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
