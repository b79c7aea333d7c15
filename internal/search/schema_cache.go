package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const schemaKeyPrefix = "search:schema:"

// SchemaSource loads index schemas, caching them in Redis.
type SchemaSource struct {
	backend Backend
	redis   *redis.Client
	ttl     time.Duration
}

func NewSchemaSource(backend Backend, client *redis.Client, ttl time.Duration) *SchemaSource {
	return &SchemaSource{backend: backend, redis: client, ttl: ttl}
}

// Load returns the schema for collection. A broken cache falls through to the backend.
func (s *SchemaSource) Load(ctx context.Context, collection string) ([]SchemaField, error) {
	key := schemaKeyPrefix + collection

	raw, err := s.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var fields []SchemaField
		if err := json.Unmarshal(raw, &fields); err == nil {
			return fields, nil
		}
		slog.WarnContext(ctx, "discarding corrupt cached schema", "collection", collection)
	case !errors.Is(err, redis.Nil):
		slog.WarnContext(ctx, "schema cache read failed", "error", err, "collection", collection)
	}

	fields, err := s.backend.Schema(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	if payload, err := json.Marshal(fields); err == nil {
		if err := s.redis.Set(ctx, key, payload, s.ttl).Err(); err != nil {
			slog.WarnContext(ctx, "schema cache write failed", "error", err, "collection", collection)
		}
	}

	return fields, nil
}
