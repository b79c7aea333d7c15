package search

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

var (
	ErrUnknownType  = errors.New("unknown search type")
	ErrInvalidOrder = errors.New("invalid order_by")
)

// Request is a search as the API and alert runs express it.
type Request struct {
	Type    Type
	Q       string
	OrderBy string // "<field> asc|desc" or "score desc"
	Page    int
	PerPage int
	// FiledAfter limits results to documents filed on or after this time.
	FiledAfter *time.Time
}

type Page struct {
	Count   int
	Fields  []Field
	Results []map[string]any
}

type Searcher interface {
	Fields(ctx context.Context, t Type) ([]Field, error)
	Search(ctx context.Context, req Request) (*Page, error)
}

type searcher struct {
	backend     Backend
	schemas     *SchemaSource
	collections map[string]string
}

// NewSearcher builds a Searcher. collections maps a search type to its collection name.
func NewSearcher(backend Backend, schemas *SchemaSource, collections map[string]string) Searcher {
	return &searcher{backend: backend, schemas: schemas, collections: collections}
}

func (s *searcher) Fields(ctx context.Context, t Type) ([]Field, error) {
	info, collection, err := s.lookup(t)
	if err != nil {
		return nil, err
	}
	schema, err := s.schemas.Load(ctx, collection)
	if err != nil {
		return nil, err
	}
	return BuildFields(schema, info.dateFields), nil
}

func (s *searcher) Search(ctx context.Context, req Request) (*Page, error) {
	info, collection, err := s.lookup(req.Type)
	if err != nil {
		return nil, err
	}

	fields, err := s.Fields(ctx, req.Type)
	if err != nil {
		return nil, err
	}

	sortBy, err := sortClause(req.OrderBy, fields)
	if err != nil {
		return nil, err
	}

	q := Query{
		Q:       strings.TrimSpace(req.Q),
		QueryBy: info.queryBy,
		SortBy:  sortBy,
		Page:    max(req.Page, 1),
		PerPage: max(req.PerPage, 1),
	}
	if q.Q == "" {
		q.Q = "*"
	}
	if req.FiledAfter != nil {
		q.FilterBy = fmt.Sprintf("%s:>=%d", info.filedField, req.FiledAfter.Unix())
	}

	res, err := s.backend.Search(ctx, collection, q)
	if err != nil {
		return nil, err
	}

	page := &Page{Count: res.Found, Fields: fields, Results: make([]map[string]any, 0, len(res.Hits))}
	for _, hit := range res.Hits {
		page.Results = append(page.Results, Serialize(hit, fields))
	}
	return page, nil
}

func (s *searcher) lookup(t Type) (typeInfo, string, error) {
	info, ok := types[t]
	if !ok {
		return typeInfo{}, "", fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	collection, ok := s.collections[string(t)]
	if !ok || collection == "" {
		return typeInfo{}, "", fmt.Errorf("%w: no collection for %q", ErrUnknownType, t)
	}
	return info, collection, nil
}

// sortClause turns "dateFiled desc" into "dateFiled:desc". Relevance
// ordering is the index default.
func sortClause(orderBy string, fields []Field) (string, error) {
	orderBy = strings.TrimSpace(orderBy)
	if orderBy == "" {
		return "", nil
	}

	parts := strings.Fields(orderBy)
	dir := "desc"
	if len(parts) == 2 {
		dir = strings.ToLower(parts[1])
	}
	if len(parts) > 2 || (dir != "asc" && dir != "desc") {
		return "", fmt.Errorf("%w: %q", ErrInvalidOrder, orderBy)
	}

	if parts[0] == "score" {
		return "_text_match:" + dir, nil
	}
	if !sortable(fields, parts[0]) {
		return "", fmt.Errorf("%w: %q", ErrInvalidOrder, orderBy)
	}
	return parts[0] + ":" + dir, nil
}

// ParseAlertQuery reads a stored alert query. Alerts saved from the search
// page hold a query string ("q=...&type=oa&order_by=..."); anything else is
// plain query text against opinions.
func ParseAlertQuery(raw string) Request {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "?")
	req := Request{Type: DefaultType, Q: raw}

	if !strings.Contains(raw, "q=") && !strings.Contains(raw, "type=") {
		return req
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return req
	}

	req.Q = values.Get("q")
	if t, ok := ParseType(values.Get("type")); ok {
		req.Type = t
	}
	req.OrderBy = values.Get("order_by")
	return req
}
