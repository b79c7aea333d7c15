package model

import "sort"

type BarMembership struct {
	State string `json:"state"`
	Name  string `json:"name"`
}

// usStates holds the two-letter codes accepted for a bar membership,
// including territories and military mail codes.
var usStates = map[string]string{
	"AA": "Armed Forces Americas",
	"AE": "Armed Forces Europe",
	"AK": "Alaska",
	"AL": "Alabama",
	"AP": "Armed Forces Pacific",
	"AR": "Arkansas",
	"AS": "American Samoa",
	"AZ": "Arizona",
	"CA": "California",
	"CO": "Colorado",
	"CT": "Connecticut",
	"DC": "District of Columbia",
	"DE": "Delaware",
	"FL": "Florida",
	"FM": "Federated States of Micronesia",
	"GA": "Georgia",
	"GU": "Guam",
	"HI": "Hawaii",
	"IA": "Iowa",
	"ID": "Idaho",
	"IL": "Illinois",
	"IN": "Indiana",
	"KS": "Kansas",
	"KY": "Kentucky",
	"LA": "Louisiana",
	"MA": "Massachusetts",
	"MD": "Maryland",
	"ME": "Maine",
	"MH": "Marshall Islands",
	"MI": "Michigan",
	"MN": "Minnesota",
	"MO": "Missouri",
	"MP": "Northern Mariana Islands",
	"MS": "Mississippi",
	"MT": "Montana",
	"NC": "North Carolina",
	"ND": "North Dakota",
	"NE": "Nebraska",
	"NH": "New Hampshire",
	"NJ": "New Jersey",
	"NM": "New Mexico",
	"NV": "Nevada",
	"NY": "New York",
	"OH": "Ohio",
	"OK": "Oklahoma",
	"OR": "Oregon",
	"PA": "Pennsylvania",
	"PR": "Puerto Rico",
	"PW": "Palau",
	"RI": "Rhode Island",
	"SC": "South Carolina",
	"SD": "South Dakota",
	"TN": "Tennessee",
	"TX": "Texas",
	"UT": "Utah",
	"VA": "Virginia",
	"VI": "Virgin Islands",
	"VT": "Vermont",
	"WA": "Washington",
	"WI": "Wisconsin",
	"WV": "West Virginia",
	"WY": "Wyoming",
}

func IsUSState(code string) bool {
	_, ok := usStates[code]
	return ok
}

func NewBarMembership(code string) BarMembership {
	return BarMembership{State: code, Name: usStates[code]}
}

// ListBarMemberships returns every selectable membership ordered by code.
func ListBarMemberships() []BarMembership {
	out := make([]BarMembership, 0, len(usStates))
	for code := range usStates {
		out = append(out, NewBarMembership(code))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].State < out[j].State })
	return out
}
