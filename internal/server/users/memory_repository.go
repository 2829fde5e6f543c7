package users

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/memberclient/internal/common"
)

// IDPrefix starts every generated member id.
const IDPrefix = "TRT"

// MemoryRepository keeps users in a map. Ids are IDPrefix followed by a
// sequence number starting at 1000.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*User
	seq   int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]*User), seq: 1000}
}

func (r *MemoryRepository) Create(_ context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := *user
	for u.ID == "" {
		id := fmt.Sprintf("%s%d", IDPrefix, r.seq)
		r.seq++
		if _, taken := r.users[id]; !taken {
			u.ID = id
		}
	}
	if _, ok := r.users[u.ID]; ok {
		return nil, fmt.Errorf("user %s: %w", u.ID, ErrAlreadyExists)
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	r.users[u.ID] = &u

	out := u
	return &out, nil
}

func (r *MemoryRepository) GetUserByID(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

func (r *MemoryRepository) Update(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return common.ErrorNotFound
	}
	u := *user
	r.users[u.ID] = &u
	return nil
}

func (r *MemoryRepository) ListByReferrer(_ context.Context, referrerID string) ([]*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*User
	for _, u := range r.users {
		if u.Referrer == referrerID {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
