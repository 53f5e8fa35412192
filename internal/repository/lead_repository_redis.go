package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const leadKeyPrefix = "ifrs16:lead:"

type LeadRepositoryRedis struct {
	client *redis.Client
}

func NewLeadRepositoryRedis(addr string) *LeadRepositoryRedis {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &LeadRepositoryRedis{client: rdb}
}

func leadKey(email string) string {
	return leadKeyPrefix + email
}

// Ping проверяет доступность Redis
func (r *LeadRepositoryRedis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *LeadRepositoryRedis) Get(ctx context.Context, email string) (Lead, bool, error) {
	val, err := r.client.Get(ctx, leadKey(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Lead{}, false, nil
	}
	if err != nil {
		return Lead{}, false, fmt.Errorf("redis get lead: %w", err)
	}

	var lead Lead
	if err := json.Unmarshal(val, &lead); err != nil {
		return Lead{}, false, fmt.Errorf("decoding lead: %w", err)
	}
	return lead, true, nil
}

func (r *LeadRepositoryRedis) Save(ctx context.Context, lead Lead) error {
	data, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("encoding lead: %w", err)
	}
	if err := r.client.Set(ctx, leadKey(lead.Email), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set lead: %w", err)
	}
	return nil
}

func (r *LeadRepositoryRedis) Close() error {
	return r.client.Close()
}
