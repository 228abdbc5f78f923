package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/meander/pkg/domain"
)

// InterventionRepo implements ports.InterventionRepository on Redis.
type InterventionRepo struct {
	client *backend.Client
	opts   options
}

// NewInterventionRepo creates a repository connecting to the given address.
func NewInterventionRepo(address, password string, db int, opts ...Option) *InterventionRepo {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewInterventionRepoFromClient(client, opts...)
}

// NewInterventionRepoFromClient wraps an existing client.
func NewInterventionRepoFromClient(client *backend.Client, opts ...Option) *InterventionRepo {
	return &InterventionRepo{client: client, opts: newOptions(opts)}
}

func (r *InterventionRepo) catKey(id string) string { return r.opts.prefix + "iv:cat:" + id }
func (r *InterventionRepo) catIndex() string        { return r.opts.prefix + "iv:catalog" }
func (r *InterventionRepo) resultsKey() string      { return r.opts.prefix + "iv:results" }
func (r *InterventionRepo) perIVKey(id string) string {
	return r.opts.prefix + "iv:results:" + id
}

// Put inserts or replaces a catalog entry.
func (r *InterventionRepo) Put(ctx context.Context, iv domain.Intervention) error {
	data, err := json.Marshal(iv)
	if err != nil {
		return fmt.Errorf("marshal intervention: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.catKey(iv.ID), data, r.opts.ttl)
	pipe.SAdd(ctx, r.catIndex(), iv.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save intervention: %w", err)
	}
	return nil
}

// Get returns a catalog entry by ID.
func (r *InterventionRepo) Get(ctx context.Context, id string) (domain.Intervention, error) {
	val, err := r.client.Get(ctx, r.catKey(id)).Result()
	if err == backend.Nil {
		return domain.Intervention{}, domain.ErrInterventionNotFound
	}
	if err != nil {
		return domain.Intervention{}, fmt.Errorf("load intervention: %w", err)
	}

	var iv domain.Intervention
	if err := json.Unmarshal([]byte(val), &iv); err != nil {
		return domain.Intervention{}, fmt.Errorf("unmarshal intervention: %w", err)
	}
	return iv, nil
}

// List returns all catalog entries sorted by ID.
func (r *InterventionRepo) List(ctx context.Context) ([]domain.Intervention, error) {
	ids, err := r.client.SMembers(ctx, r.catIndex()).Result()
	if err != nil {
		return nil, fmt.Errorf("list interventions: %w", err)
	}
	sort.Strings(ids)

	ivs := make([]domain.Intervention, 0, len(ids))
	for _, id := range ids {
		iv, err := r.Get(ctx, id)
		if err == domain.ErrInterventionNotFound {
			continue // expired entry still in the index
		}
		if err != nil {
			return nil, err
		}
		ivs = append(ivs, iv)
	}
	return ivs, nil
}

// Delete removes a catalog entry.
func (r *InterventionRepo) Delete(ctx context.Context, id string) error {
	removed, err := r.client.SRem(ctx, r.catIndex(), id).Result()
	if err != nil {
		return fmt.Errorf("delete intervention: %w", err)
	}
	if removed == 0 {
		return domain.ErrInterventionNotFound
	}
	if err := r.client.Del(ctx, r.catKey(id)).Err(); err != nil {
		return fmt.Errorf("delete intervention: %w", err)
	}
	return nil
}

// AppendResult stores one application outcome.
func (r *InterventionRepo) AppendResult(ctx context.Context, res domain.InterventionResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.RPush(ctx, r.resultsKey(), data)
	pipe.RPush(ctx, r.perIVKey(res.InterventionID), data)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append result: %w", err)
	}
	return nil
}

// ResultsByIntervention returns outcomes for one intervention in
// insertion order.
func (r *InterventionRepo) ResultsByIntervention(ctx context.Context, id string) ([]domain.InterventionResult, error) {
	return r.results(ctx, r.perIVKey(id))
}

// Results returns all outcomes across interventions.
func (r *InterventionRepo) Results(ctx context.Context) ([]domain.InterventionResult, error) {
	return r.results(ctx, r.resultsKey())
}

func (r *InterventionRepo) results(ctx context.Context, key string) ([]domain.InterventionResult, error) {
	vals, err := r.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}

	results := make([]domain.InterventionResult, 0, len(vals))
	for _, v := range vals {
		var res domain.InterventionResult
		if err := json.Unmarshal([]byte(v), &res); err != nil {
			return nil, fmt.Errorf("unmarshal result: %w", err)
		}
		results = append(results, res)
	}
	return results, nil
}
