package repository

import (
	"context"
	"sync"
)

type LeadRepositoryMemory struct {
	mu    sync.RWMutex
	leads map[string]Lead
}

func NewLeadRepositoryMemory() *LeadRepositoryMemory {
	return &LeadRepositoryMemory{
		leads: make(map[string]Lead),
	}
}

func (r *LeadRepositoryMemory) Get(_ context.Context, email string) (Lead, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lead, ok := r.leads[email]
	return lead, ok, nil
}

func (r *LeadRepositoryMemory) Save(_ context.Context, lead Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.leads[lead.Email] = lead
	return nil
}
