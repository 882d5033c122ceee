package documents

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo for tests and DB-less development.
type MemoryRepo struct {
	items map[string]Document
	mu    sync.RWMutex
}

var _ Repo = (*MemoryRepo)(nil)

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[string]Document)}
}

func (r *MemoryRepo) Upsert(ctx context.Context, d Document) (Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Replace an existing row with the same (user, file name) pair.
	for id, existing := range r.items {
		if existing.UserID == d.UserID && existing.FileName == d.FileName {
			delete(r.items, id)
			break
		}
	}
	r.items[d.ID] = d
	return d, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.items[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return d, nil
}

func (r *MemoryRepo) GetByUserAndFileName(ctx context.Context, userID, fileName string) (Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.items {
		if d.UserID == userID && d.FileName == fileName {
			return d, nil
		}
	}
	return Document{}, ErrNotFound
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Document, 0)
	for _, d := range r.items {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	return out, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}
