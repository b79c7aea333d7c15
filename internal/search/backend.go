package search

import (
	"context"
	"fmt"

	"github.com/typesense/typesense-go/v4/typesense"
	"github.com/typesense/typesense-go/v4/typesense/api"
	"github.com/typesense/typesense-go/v4/typesense/api/pointer"

	"courtlistener.app/cl/core/config"
)

// Query is a backend-level search request.
type Query struct {
	Q        string
	QueryBy  string
	FilterBy string
	SortBy   string
	Page     int
	PerPage  int
}

type Result struct {
	Found int
	Hits  []Hit
}

// Backend is the index the search service reads from.
type Backend interface {
	Schema(ctx context.Context, collection string) ([]SchemaField, error)
	Search(ctx context.Context, collection string, q Query) (*Result, error)
}

type typesenseBackend struct {
	client *typesense.Client
}

func NewTypesenseBackend(cfg config.SearchConfig) Backend {
	client := typesense.NewClient(
		typesense.WithServer(cfg.URL),
		typesense.WithAPIKey(cfg.APIKey),
	)
	return &typesenseBackend{client: client}
}

func (b *typesenseBackend) Schema(ctx context.Context, collection string) ([]SchemaField, error) {
	resp, err := b.client.Collection(collection).Retrieve(ctx)
	if err != nil {
		return nil, fmt.Errorf("retrieving collection %s: %w", collection, err)
	}

	fields := make([]SchemaField, 0, len(resp.Fields))
	for _, f := range resp.Fields {
		fields = append(fields, SchemaField{Name: f.Name, Type: f.Type})
	}
	return fields, nil
}

func (b *typesenseBackend) Search(ctx context.Context, collection string, q Query) (*Result, error) {
	params := &api.SearchCollectionParams{
		Q:               pointer.String(q.Q),
		QueryBy:         pointer.String(q.QueryBy),
		HighlightFields: pointer.String("text"),
		Page:            pointer.Int(q.Page),
		PerPage:         pointer.Int(q.PerPage),
	}
	if q.FilterBy != "" {
		params.FilterBy = pointer.String(q.FilterBy)
	}
	if q.SortBy != "" {
		params.SortBy = pointer.String(q.SortBy)
	}

	resp, err := b.client.Collection(collection).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", collection, err)
	}

	result := &Result{}
	if resp.Found != nil {
		result.Found = *resp.Found
	}
	if resp.Hits == nil {
		return result, nil
	}

	for _, h := range *resp.Hits {
		hit := Hit{Document: map[string]any{}}
		if h.Document != nil {
			hit.Document = *h.Document
		}
		if h.Highlights != nil {
			for _, hl := range *h.Highlights {
				if hl.Field != nil && *hl.Field == "text" && hl.Snippet != nil {
					hit.Snippet = *hl.Snippet
				}
			}
		}
		result.Hits = append(result.Hits, hit)
	}
	return result, nil
}
