package model

import "time"

// Jurisdictions maps a court jurisdiction code to its label.
var Jurisdictions = map[string]string{
	"F":   "Federal Appellate",
	"FD":  "Federal District",
	"FB":  "Federal Bankruptcy",
	"FBP": "Federal Bankruptcy Panel",
	"FS":  "Federal Special",
	"S":   "State Supreme",
	"SA":  "State Appellate",
	"ST":  "State Trial",
	"SS":  "State Special",
	"SAG": "State Attorney General",
	"C":   "Committee",
	"I":   "International",
	"T":   "Testing",
}

type Court struct {
	ID                     string     `json:"id"`
	FullName               string     `json:"full_name"`
	ShortName              string     `json:"short_name"`
	CitationString         string     `json:"citation_string"`
	URL                    string     `json:"url"`
	Jurisdiction           string     `json:"jurisdiction"`
	JurisdictionName       string     `json:"jurisdiction_name"`
	InUse                  bool       `json:"in_use"`
	HasOpinionScraper      bool       `json:"has_opinion_scraper"`
	HasOralArgumentScraper bool       `json:"has_oral_argument_scraper"`
	Position               float64    `json:"position"`
	StartDate              *time.Time `json:"start_date,omitempty"`
	EndDate                *time.Time `json:"end_date,omitempty"`
	DateModified           time.Time  `json:"date_modified"`
}

type YearCount struct {
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}
