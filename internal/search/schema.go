package search

import (
	"log/slog"
	"sort"
	"strings"
)

// Kind is the wire type of a search result field.
type Kind string

const (
	KindBoolean  Kind = "boolean"
	KindString   Kind = "string"
	KindInteger  Kind = "integer"
	KindFloat    Kind = "float"
	KindDatetime Kind = "datetime"
	KindList     Kind = "list"
)

// SchemaField is one field as declared by the index.
type SchemaField struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Field is one field of a serialized search result.
type Field struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

const snippetField = "snippet"

var skippedFields = map[string]bool{
	"_version_": true,
	"django_ct": true,
	"django_id": true,
	"text":      true,
}

var kindsByType = map[string]Kind{
	"bool":   KindBoolean,
	"string": KindString,
	"int32":  KindInteger,
	"int64":  KindInteger,
	"float":  KindFloat,
}

// BuildFields maps an index schema onto result fields. Dates are stored as
// unix seconds, so dateFields names the integer fields rendered as datetimes.
// The snippet field is always present and the result is sorted by name.
func BuildFields(schema []SchemaField, dateFields map[string]bool) []Field {
	byName := map[string]Field{
		snippetField: {Name: snippetField, Kind: KindString},
	}

	for _, sf := range schema {
		if skippedFields[sf.Name] {
			continue
		}
		byName[sf.Name] = Field{Name: sf.Name, Kind: kindOf(sf, dateFields)}
	}

	fields := make([]Field, 0, len(byName))
	for _, f := range byName {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	return fields
}

func kindOf(sf SchemaField, dateFields map[string]bool) Kind {
	if strings.HasSuffix(sf.Type, "[]") {
		return KindList
	}
	if dateFields[sf.Name] {
		return KindDatetime
	}
	if kind, ok := kindsByType[sf.Type]; ok {
		return kind
	}
	slog.Warn("unknown search field type, serializing as string", "field", sf.Name, "type", sf.Type)
	return KindString
}

// sortable reports whether results can be ordered by the named field.
func sortable(fields []Field, name string) bool {
	for _, f := range fields {
		if f.Name == name {
			return f.Kind != KindList && f.Kind != KindString && f.Name != snippetField
		}
	}
	return false
}
