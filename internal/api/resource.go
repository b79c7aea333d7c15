package api

// FieldKind says how a filter value is parsed from the query string.
type FieldKind string

const (
	KindInt      FieldKind = "int"
	KindFloat    FieldKind = "float"
	KindString   FieldKind = "string"
	KindDate     FieldKind = "date"
	KindDateTime FieldKind = "datetime"
	KindBool     FieldKind = "bool"
)

// Relation renders a foreign key column as a hyperlink to Target.
type Relation struct {
	Field  string
	Column string
	Target string
}

// ManyRelation renders a list of hyperlinks. Table is a join table (or the
// target table itself for a reverse foreign key). SourceColumn points back at
// this record, TargetColumn holds the linked id.
type ManyRelation struct {
	Field        string
	Table        string
	SourceColumn string
	TargetColumn string
	Target       string
}

// Nested embeds the full rows of another resource whose Column references this record.
type Nested struct {
	Field    string
	Resource string
	Column   string
}

// AbsoluteURL builds the public page path of a record. With ViaTable set,
// IDColumn references a row of ViaTable that carries the slug and title.
type AbsoluteURL struct {
	Kind        string
	IDColumn    string
	SlugColumn  string
	TitleColumn string
	ViaTable    string
}

// Filter exposes a column as a query parameter. Ranged filters also accept
// the __gt, __gte, __lt and __lte lookups; every filter accepts __in.
type Filter struct {
	Param  string
	Column string
	Kind   FieldKind
	Ranged bool
}

// Resource declares one REST collection over a legal-record table.
type Resource struct {
	Name         string
	Table        string
	Description  string
	IDKind       FieldKind
	Exclude      []string
	Relations    []Relation
	Many         []ManyRelation
	Nested       []Nested
	AbsoluteURL  *AbsoluteURL
	Filters      []Filter
	Ordering     []string
	DefaultOrder string
}

func (r *Resource) filter(param string) (Filter, bool) {
	for _, f := range r.Filters {
		if f.Param == param {
			return f, true
		}
	}
	return Filter{}, false
}

func (r *Resource) orderable(column string) bool {
	for _, o := range r.Ordering {
		if o == column {
			return true
		}
	}
	return false
}

func (r *Resource) excluded(column string) bool {
	for _, e := range r.Exclude {
		if e == column {
			return true
		}
	}
	return false
}

// Registry holds resources by name in registration order.
type Registry struct {
	order  []string
	byName map[string]*Resource
}

func NewRegistry(resources ...Resource) *Registry {
	reg := &Registry{byName: make(map[string]*Resource, len(resources))}
	for i := range resources {
		r := resources[i]
		if r.IDKind == "" {
			r.IDKind = KindInt
		}
		if r.DefaultOrder == "" {
			r.DefaultOrder = "id"
		}
		reg.order = append(reg.order, r.Name)
		reg.byName[r.Name] = &r
	}
	return reg
}

func (reg *Registry) Get(name string) (*Resource, bool) {
	r, ok := reg.byName[name]
	return r, ok
}

func (reg *Registry) Names() []string {
	return append([]string(nil), reg.order...)
}
