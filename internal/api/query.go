package api

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"courtlistener.app/cl/internal/store"
)

var (
	ErrInvalidPage   = errors.New("invalid page")
	ErrInvalidFilter = errors.New("invalid filter")
	ErrInvalidOrder  = errors.New("invalid order_by")
)

var reservedParams = map[string]bool{
	"page":      true,
	"page_size": true,
	"fields":    true,
	"omit":      true,
	"order_by":  true,
	"format":    true,
}

var lookups = map[string]store.Op{
	"gt":  store.OpGt,
	"gte": store.OpGte,
	"lt":  store.OpLt,
	"lte": store.OpLte,
	"in":  store.OpIn,
}

type pagination struct {
	Page     int
	PageSize int
}

func (p pagination) offset() int {
	return (p.Page - 1) * p.PageSize
}

func parsePagination(values url.Values, defaultSize, maxSize int) (pagination, error) {
	p := pagination{Page: 1, PageSize: defaultSize}

	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, fmt.Errorf("%w: %q", ErrInvalidPage, raw)
		}
		p.Page = n
	}

	if raw := values.Get("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.PageSize = min(n, maxSize)
		}
	}
	return p, nil
}

// buildRecordQuery turns the query string into a record query for res.
// Unknown parameters are ignored.
func buildRecordQuery(res *Resource, values url.Values) (store.RecordQuery, error) {
	q := store.RecordQuery{Table: res.Table}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		vals := values[key]
		if reservedParams[key] || len(vals) == 0 {
			continue
		}

		param, op := key, store.OpEq
		if i := strings.LastIndex(key, "__"); i > 0 {
			lookup, ok := lookups[key[i+2:]]
			if !ok {
				continue
			}
			param, op = key[:i], lookup
		}

		f, ok := res.filter(param)
		if !ok {
			continue
		}
		if op != store.OpEq && op != store.OpIn && !f.Ranged {
			return q, fmt.Errorf("%w: %s does not support range lookups", ErrInvalidFilter, param)
		}

		cond, err := filterCondition(f, op, vals[0])
		if err != nil {
			return q, err
		}
		q.Where = append(q.Where, cond)
	}

	order, err := parseOrdering(res, values.Get("order_by"))
	if err != nil {
		return q, err
	}
	q.OrderBy = order
	return q, nil
}

func filterCondition(f Filter, op store.Op, raw string) (store.Condition, error) {
	if op == store.OpIn {
		parts := strings.Split(raw, ",")
		values := make([]any, 0, len(parts))
		for _, part := range parts {
			v, err := parseValue(f.Kind, strings.TrimSpace(part))
			if err != nil {
				return store.Condition{}, fmt.Errorf("%w: %s: %v", ErrInvalidFilter, f.Param, err)
			}
			values = append(values, v)
		}
		return store.Condition{Column: f.Column, Op: op, Value: values}, nil
	}

	v, err := parseValue(f.Kind, raw)
	if err != nil {
		return store.Condition{}, fmt.Errorf("%w: %s: %v", ErrInvalidFilter, f.Param, err)
	}
	return store.Condition{Column: f.Column, Op: op, Value: v}, nil
}

func parseValue(kind FieldKind, raw string) (any, error) {
	switch kind {
	case KindInt:
		return strconv.ParseInt(raw, 10, 64)
	case KindFloat:
		return strconv.ParseFloat(raw, 64)
	case KindBool:
		switch strings.ToLower(raw) {
		case "true", "1", "on":
			return true, nil
		case "false", "0", "off":
			return false, nil
		}
		return nil, fmt.Errorf("not a boolean: %q", raw)
	case KindDate:
		if _, err := time.Parse(time.DateOnly, raw); err != nil {
			return nil, fmt.Errorf("not a date: %q", raw)
		}
		return raw, nil
	case KindDateTime:
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", time.DateOnly} {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, nil
			}
		}
		return nil, fmt.Errorf("not a datetime: %q", raw)
	default:
		return raw, nil
	}
}

// parseOrdering reads "a,-b". The resource's default order is appended
// as a tie breaker so pages are stable.
func parseOrdering(res *Resource, raw string) ([]store.Order, error) {
	var order []store.Order
	seen := map[string]bool{}

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		desc := strings.HasPrefix(part, "-")
		column := strings.TrimPrefix(part, "-")
		if !res.orderable(column) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidOrder, column)
		}
		if seen[column] {
			continue
		}
		seen[column] = true
		order = append(order, store.Order{Column: column, Desc: desc})
	}

	if !seen[res.DefaultOrder] {
		order = append(order, store.Order{Column: res.DefaultOrder})
	}
	return order, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// pageURL returns an absolute URL for page n of the current request, or nil
// when n is out of range.
func pageURL(baseURL string, u *url.URL, n, last int) any {
	if n < 1 || n > last {
		return nil
	}
	values := u.Query()
	if n == 1 {
		values.Del("page")
	} else {
		values.Set("page", strconv.Itoa(n))
	}
	out := baseURL + u.Path
	if encoded := values.Encode(); encoded != "" {
		out += "?" + encoded
	}
	return out
}
