// Package store persists accepted plans, the per-user recency index of
// week keys, and the checked-item ledger of each week's shopping list.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"weekplanner/internal/apperr"
	"weekplanner/internal/plan"
)

const kvPrefix = "meal-planner"

// PlanStore reads and writes persisted plans through the KV boundary.
type PlanStore struct {
	kv  KV
	now func() time.Time
}

// NewPlanStore creates a store over the given KV.
func NewPlanStore(kv KV) *PlanStore {
	return &PlanStore{kv: kv, now: time.Now}
}

func planKey(userID, weekKey string) string {
	return fmt.Sprintf("%s:plan:%s:%s", kvPrefix, userID, weekKey)
}

func indexKey(userID string) string {
	return fmt.Sprintf("%s:plan-index:%s", kvPrefix, userID)
}

// The checked ledger is keyed by week only: one household shares one
// shopping list.
func checkedKey(weekKey string) string {
	return fmt.Sprintf("%s:checked:%s", kvPrefix, weekKey)
}

// Save writes the plan under its week key and records the key in the
// recency index scored by save time. Re-saving the same week key
// overwrites the plan and only updates the score: the index is a set,
// so no duplicate entry can appear.
func (s *PlanStore) Save(ctx context.Context, userID string, p plan.PersistedPlan) error {
	if err := p.Validate(); err != nil {
		return apperr.Wrap(apperr.ValidationFailed, "invalid plan", err)
	}

	data, err := json.Marshal(p)
	if err != nil {
		return apperr.Wrap(apperr.PersistenceFailed, "failed to encode plan", err)
	}
	if err := s.kv.Set(ctx, planKey(userID, p.WeekKey), string(data)); err != nil {
		return apperr.Wrap(apperr.PersistenceFailed, "failed to store plan", err)
	}
	score := float64(s.now().UnixMilli())
	if err := s.kv.ZAdd(ctx, indexKey(userID), score, p.WeekKey); err != nil {
		return apperr.Wrap(apperr.PersistenceFailed, "failed to index plan", err)
	}
	return nil
}

// Get loads a persisted plan. An absent key is a NotFound outcome; a
// present record that fails to parse is reported as corrupt, never
// guessed at.
func (s *PlanStore) Get(ctx context.Context, userID, weekKey string) (*plan.PersistedPlan, error) {
	data, err := s.kv.Get(ctx, planKey(userID, weekKey))
	if err == ErrKeyNotFound {
		return nil, apperr.New(apperr.NotFound, "plan not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.PersistenceFailed, "failed to load plan", err)
	}
	p, err := plan.ParsePersistedPlan([]byte(data))
	if err != nil {
		return nil, apperr.Wrap(apperr.PersistenceFailed, "invalid plan data in store", err)
	}
	return p, nil
}

// Delete removes the plan, its checked ledger and its index entry. The
// three deletes hit independent keys, so this is best-effort, not
// atomic: a failure partway can leave an orphaned ledger or index
// entry. Re-running the delete clears them, and readers treat an
// indexed-but-missing plan as NotFound.
func (s *PlanStore) Delete(ctx context.Context, userID, weekKey string) error {
	if err := s.kv.Del(ctx, planKey(userID, weekKey)); err != nil {
		return apperr.Wrap(apperr.PersistenceFailed, "failed to delete plan", err)
	}
	if err := s.kv.Del(ctx, checkedKey(weekKey)); err != nil {
		return apperr.Wrap(apperr.PersistenceFailed, "failed to delete checked items", err)
	}
	if err := s.kv.ZRem(ctx, indexKey(userID), weekKey); err != nil {
		return apperr.Wrap(apperr.PersistenceFailed, "failed to delete index entry", err)
	}
	return nil
}

// ListIndex returns the user's week keys ordered by descending recency
// of save, regardless of the calendar order of the weeks themselves.
func (s *PlanStore) ListIndex(ctx context.Context, userID string) ([]string, error) {
	keys, err := s.kv.ZRevRange(ctx, indexKey(userID), 0, -1)
	if err != nil {
		return nil, apperr.Wrap(apperr.PersistenceFailed, "failed to list plans", err)
	}
	return keys, nil
}

// GetChecked returns the checked shopping-item ids for a week. An
// absent ledger is an empty set.
func (s *PlanStore) GetChecked(ctx context.Context, weekKey string) ([]string, error) {
	data, err := s.kv.Get(ctx, checkedKey(weekKey))
	if err == ErrKeyNotFound {
		return []string{}, nil
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.PersistenceFailed, "failed to load checked items", err)
	}
	var ids []string
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		return nil, apperr.Wrap(apperr.PersistenceFailed, "invalid checked-items data in store", err)
	}
	return ids, nil
}

// SetChecked replaces the checked-item ids for a week. The ledger is
// keyed independently of the plan so checking items never rewrites the
// plan record.
func (s *PlanStore) SetChecked(ctx context.Context, weekKey string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return apperr.Wrap(apperr.PersistenceFailed, "failed to encode checked items", err)
	}
	if err := s.kv.Set(ctx, checkedKey(weekKey), string(data)); err != nil {
		return apperr.Wrap(apperr.PersistenceFailed, "failed to store checked items", err)
	}
	return nil
}
