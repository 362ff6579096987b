package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
	"github.com/jlvilasoler/hashrate-app/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

type ActivityRepo struct {
	s *Store
}

func NewActivityRepository(s *Store) *ActivityRepo {
	return &ActivityRepo{s: s}
}

func (r *ActivityRepo) Record(_ context.Context, a *entity.UserActivity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	r.s.activity = append(r.s.activity, copyActivity(a))
	return nil
}

func (r *ActivityRepo) LastLogin(_ context.Context, userID string) (*entity.UserActivity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var last *entity.UserActivity
	for _, a := range r.s.activity {
		if a.UserID == userID && a.Event == entity.ActivityLogin {
			if last == nil || !a.CreatedAt.Before(last.CreatedAt) {
				last = a
			}
		}
	}
	if last == nil {
		return nil, nil
	}
	return copyActivity(last), nil
}

func (r *ActivityRepo) List(_ context.Context, limit int) ([]*entity.UserActivity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.UserActivity, 0, len(r.s.activity))
	for _, a := range r.s.activity {
		out = append(out, copyActivity(a))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
