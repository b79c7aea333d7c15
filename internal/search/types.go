package search

// Type identifies one searchable corpus.
type Type string

const (
	TypeOpinions      Type = "o"
	TypeOralArguments Type = "oa"
	TypeRECAP         Type = "r"
	TypePeople        Type = "p"
)

const DefaultType = TypeOpinions

type typeInfo struct {
	queryBy    string
	filedField string
	dateFields map[string]bool
}

var types = map[Type]typeInfo{
	TypeOpinions: {
		queryBy:    "caseName,text,citation,judge",
		filedField: "dateFiled",
		dateFields: set("dateFiled", "dateArgued", "dateReargued", "dateReargumentDenied"),
	},
	TypeOralArguments: {
		queryBy:    "caseName,text,judge",
		filedField: "dateArgued",
		dateFields: set("dateArgued", "dateReargued"),
	},
	TypeRECAP: {
		queryBy:    "caseName,text,description",
		filedField: "dateFiled",
		dateFields: set("dateFiled", "dateArgued", "dateTerminated", "entry_date_filed"),
	},
	TypePeople: {
		queryBy:    "name,text",
		filedField: "date_start",
		dateFields: set(
			"dob", "dod", "date_nominated", "date_elected", "date_recess_appointment",
			"date_confirmation", "date_hearing", "date_judicial_committee_action",
			"date_start", "date_termination", "date_retirement",
		),
	},
}

// ParseType returns the search type named by s. Empty means opinions.
func ParseType(s string) (Type, bool) {
	if s == "" {
		return DefaultType, true
	}
	t := Type(s)
	_, ok := types[t]
	return t, ok
}

// FiledField names the date field that alert runs filter on.
func (t Type) FiledField() string {
	return types[t].filedField
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}
