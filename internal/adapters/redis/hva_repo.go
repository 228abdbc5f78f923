// Package redis provides Redis-backed implementations of the ports
// repositories, for deployments where catalogs and event records must
// outlive the process. Definitions are stored as JSON values with a set
// index; occurrence records are append-only lists.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/meander/pkg/domain"
)

// Option configures a repository.
type Option func(*options)

type options struct {
	prefix string
	ttl    time.Duration
}

// WithPrefix sets the key prefix (default "meander:").
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithTTL sets an expiration on catalog entries. Zero (the default) keeps
// them forever.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		o.ttl = ttl
	}
}

func newOptions(opts []Option) options {
	o := options{prefix: "meander:"}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// HVARepo implements ports.HVARepository on Redis.
type HVARepo struct {
	client *backend.Client
	opts   options
}

// NewHVARepo creates a repository connecting to the given address.
func NewHVARepo(address, password string, db int, opts ...Option) *HVARepo {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewHVARepoFromClient(client, opts...)
}

// NewHVARepoFromClient wraps an existing client.
func NewHVARepoFromClient(client *backend.Client, opts ...Option) *HVARepo {
	return &HVARepo{client: client, opts: newOptions(opts)}
}

func (r *HVARepo) defKey(id string) string     { return r.opts.prefix + "hva:def:" + id }
func (r *HVARepo) defIndex() string            { return r.opts.prefix + "hva:defs" }
func (r *HVARepo) recordsKey() string          { return r.opts.prefix + "hva:records" }
func (r *HVARepo) customerKey(c string) string { return r.opts.prefix + "hva:records:" + c }

// PutDefinition inserts or replaces a definition.
func (r *HVARepo) PutDefinition(ctx context.Context, def domain.HVADefinition) error {
	data, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("marshal definition: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.defKey(def.ID), data, r.opts.ttl)
	pipe.SAdd(ctx, r.defIndex(), def.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save definition: %w", err)
	}
	return nil
}

// GetDefinition returns a definition by ID.
func (r *HVARepo) GetDefinition(ctx context.Context, id string) (domain.HVADefinition, error) {
	val, err := r.client.Get(ctx, r.defKey(id)).Result()
	if err == backend.Nil {
		return domain.HVADefinition{}, domain.ErrHVANotDefined
	}
	if err != nil {
		return domain.HVADefinition{}, fmt.Errorf("load definition: %w", err)
	}

	var def domain.HVADefinition
	if err := json.Unmarshal([]byte(val), &def); err != nil {
		return domain.HVADefinition{}, fmt.Errorf("unmarshal definition: %w", err)
	}
	return def, nil
}

// ListDefinitions returns all definitions sorted by ID.
func (r *HVARepo) ListDefinitions(ctx context.Context) ([]domain.HVADefinition, error) {
	ids, err := r.client.SMembers(ctx, r.defIndex()).Result()
	if err != nil {
		return nil, fmt.Errorf("list definitions: %w", err)
	}
	sort.Strings(ids)

	defs := make([]domain.HVADefinition, 0, len(ids))
	for _, id := range ids {
		def, err := r.GetDefinition(ctx, id)
		if err == domain.ErrHVANotDefined {
			continue // expired entry still in the index
		}
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// AppendRecord stores one HVA occurrence.
func (r *HVARepo) AppendRecord(ctx context.Context, rec domain.HVARecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.RPush(ctx, r.recordsKey(), data)
	pipe.RPush(ctx, r.customerKey(rec.CustomerID), data)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	return nil
}

// RecordsByCustomer returns a customer's occurrences in insertion order.
func (r *HVARepo) RecordsByCustomer(ctx context.Context, customerID string) ([]domain.HVARecord, error) {
	return r.records(ctx, r.customerKey(customerID))
}

// Records returns all occurrences across customers.
func (r *HVARepo) Records(ctx context.Context) ([]domain.HVARecord, error) {
	return r.records(ctx, r.recordsKey())
}

func (r *HVARepo) records(ctx context.Context, key string) ([]domain.HVARecord, error) {
	vals, err := r.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	recs := make([]domain.HVARecord, 0, len(vals))
	for _, v := range vals {
		var rec domain.HVARecord
		if err := json.Unmarshal([]byte(v), &rec); err != nil {
			return nil, fmt.Errorf("unmarshal record: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
