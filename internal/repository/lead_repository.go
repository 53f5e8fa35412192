package repository

import (
	"context"
	"time"
)

// Lead - email, оставленный перед выгрузкой графика
type Lead struct {
	Email      string    `json:"email"`
	CapturedAt time.Time `json:"captured_at"`
}

// LeadRepository хранит уже собранные email, чтобы не отправлять их повторно
type LeadRepository interface {
	Get(ctx context.Context, email string) (Lead, bool, error)
	Save(ctx context.Context, lead Lead) error
}

var (
	_ LeadRepository = (*LeadRepositoryMemory)(nil)
	_ LeadRepository = (*LeadRepositoryRedis)(nil)
)
