package api

import (
	"context"
	"fmt"
	"strconv"

	"courtlistener.app/cl/common"
	"courtlistener.app/cl/internal/store"
)

const currentVersion = "v3"

// renderer turns raw records into API objects, resolving relations in one
// query per relation per page.
type renderer struct {
	records  store.RecordStore
	registry *Registry
	baseURL  string
}

func (rd *renderer) link(target string, id any) any {
	if id == nil {
		return nil
	}
	return fmt.Sprintf("%s/api/rest/%s/%s/%v/", rd.baseURL, currentVersion, target, id)
}

func (rd *renderer) render(ctx context.Context, res *Resource, records []store.Record) ([]map[string]any, error) {
	out := make([]map[string]any, len(records))
	ids := make([]any, len(records))

	hidden := map[string]bool{}
	for _, rel := range res.Relations {
		hidden[rel.Column] = true
	}

	for i, rec := range records {
		obj := make(map[string]any, len(rec)+len(res.Many)+2)
		for col, v := range rec {
			if hidden[col] || res.excluded(col) {
				continue
			}
			obj[col] = v
		}
		for _, rel := range res.Relations {
			obj[rel.Field] = rd.link(rel.Target, rec[rel.Column])
		}
		obj["resource_uri"] = rd.link(res.Name, rec["id"])
		out[i] = obj
		ids[i] = rec["id"]
	}

	for _, many := range res.Many {
		pairs, err := rd.records.Pairs(ctx, many.Table, many.SourceColumn, many.TargetColumn, ids)
		if err != nil {
			return nil, err
		}
		for i, obj := range out {
			links := []any{}
			for _, target := range pairs[ids[i]] {
				links = append(links, rd.link(many.Target, target))
			}
			obj[many.Field] = links
		}
	}

	for _, nested := range res.Nested {
		child, ok := rd.registry.Get(nested.Resource)
		if !ok {
			return nil, fmt.Errorf("nested resource %q is not registered", nested.Resource)
		}
		rows, err := rd.records.ListIn(ctx, child.Table, nested.Column, ids)
		if err != nil {
			return nil, err
		}
		rendered, err := rd.render(ctx, child, rows)
		if err != nil {
			return nil, err
		}
		grouped := map[any][]map[string]any{}
		for j, row := range rows {
			key := row[nested.Column]
			grouped[key] = append(grouped[key], rendered[j])
		}
		for i, obj := range out {
			children := grouped[ids[i]]
			if children == nil {
				children = []map[string]any{}
			}
			obj[nested.Field] = children
		}
	}

	if res.AbsoluteURL != nil {
		if err := rd.absoluteURLs(ctx, res.AbsoluteURL, records, out); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (rd *renderer) absoluteURLs(ctx context.Context, au *AbsoluteURL, records []store.Record, out []map[string]any) error {
	sources := map[any]store.Record{}
	if au.ViaTable != "" {
		keys := make([]any, 0, len(records))
		for _, rec := range records {
			if k := rec[au.IDColumn]; k != nil {
				keys = append(keys, k)
			}
		}
		rows, err := rd.records.ListIn(ctx, au.ViaTable, "id", keys)
		if err != nil {
			return err
		}
		for _, row := range rows {
			sources[row["id"]] = row
		}
	}

	for i, rec := range records {
		src := rec
		if au.ViaTable != "" {
			src = sources[rec[au.IDColumn]]
		}
		id, ok := toInt64(rec[au.IDColumn])
		if !ok || src == nil {
			out[i]["absolute_url"] = nil
			continue
		}
		out[i]["absolute_url"] = common.RecordPath(au.Kind, id, stringValue(src[au.SlugColumn]), stringValue(src[au.TitleColumn]))
	}
	return nil
}

// selectFields applies the ?fields= and ?omit= parameters.
func selectFields(obj map[string]any, fields, omit []string) map[string]any {
	if len(fields) > 0 {
		kept := make(map[string]any, len(fields))
		for _, f := range fields {
			if v, ok := obj[f]; ok {
				kept[f] = v
			}
		}
		obj = kept
	}
	for _, f := range omit {
		delete(obj, f)
	}
	return obj
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int:
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	}
	return 0, false
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
