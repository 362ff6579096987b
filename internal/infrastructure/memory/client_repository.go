package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jlvilasoler/hashrate-app/internal/domain"
	"github.com/jlvilasoler/hashrate-app/internal/domain/entity"
	"github.com/jlvilasoler/hashrate-app/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

type ClientRepo struct {
	s *Store
}

func NewClientRepository(s *Store) *ClientRepo {
	return &ClientRepo{s: s}
}

func (r *ClientRepo) Create(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.clients {
		if existing.Code == c.Code {
			return fmt.Errorf("código %s: %w", c.Code, domain.ErrDuplicate)
		}
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	r.s.clients[c.ID] = copyClient(c)
	return nil
}

func (r *ClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if c, ok := r.s.clients[id]; ok {
		return copyClient(c), nil
	}
	return nil, nil
}

func (r *ClientRepo) GetByCode(_ context.Context, code string) (*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.clients {
		if c.Code == code {
			return copyClient(c), nil
		}
	}
	return nil, nil
}

func (r *ClientRepo) List(_ context.Context) ([]*entity.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Client, 0, len(r.s.clients))
	for _, c := range r.s.clients {
		out = append(out, copyClient(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// Update conserva el código guardado.
func (r *ClientRepo) Update(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.clients[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c.UpdatedAt = time.Now()
	cp := copyClient(c)
	cp.Code = existing.Code
	cp.CreatedAt = existing.CreatedAt
	r.s.clients[c.ID] = cp
	return nil
}

func (r *ClientRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clients[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.clients, id)
	return nil
}
