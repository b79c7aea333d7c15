package api

func timestampFilters() []Filter {
	return []Filter{
		{Param: "id", Column: "id", Kind: KindInt, Ranged: true},
		{Param: "date_created", Column: "date_created", Kind: KindDateTime, Ranged: true},
		{Param: "date_modified", Column: "date_modified", Kind: KindDateTime, Ranged: true},
	}
}

func withFilters(base []Filter, more ...Filter) []Filter {
	return append(base, more...)
}

// DefaultResources declares every collection served under /api/rest/v3/.
func DefaultResources() []Resource {
	return []Resource{
		{
			Name:        "dockets",
			Table:       "search_docket",
			Description: "Case dockets. One docket groups the clusters, audio and parties of a case.",
			Exclude:     []string{"view_count"},
			Relations: []Relation{
				{Field: "court", Column: "court_id", Target: "courts"},
				{Field: "assigned_to", Column: "assigned_to_id", Target: "people"},
				{Field: "referred_to", Column: "referred_to_id", Target: "people"},
			},
			Many: []ManyRelation{
				{Field: "clusters", Table: "search_opinioncluster", SourceColumn: "docket_id", TargetColumn: "id", Target: "clusters"},
				{Field: "audio_files", Table: "audio_audio", SourceColumn: "docket_id", TargetColumn: "id", Target: "audio"},
				{Field: "parties", Table: "people_db_partytype", SourceColumn: "docket_id", TargetColumn: "party_id", Target: "parties"},
			},
			AbsoluteURL: &AbsoluteURL{Kind: "docket", IDColumn: "id", SlugColumn: "slug", TitleColumn: "case_name"},
			Filters: withFilters(timestampFilters(),
				Filter{Param: "court", Column: "court_id", Kind: KindString},
				Filter{Param: "docket_number", Column: "docket_number", Kind: KindString},
				Filter{Param: "pacer_case_id", Column: "pacer_case_id", Kind: KindString},
				Filter{Param: "source", Column: "source", Kind: KindInt},
				Filter{Param: "date_filed", Column: "date_filed", Kind: KindDate, Ranged: true},
				Filter{Param: "date_argued", Column: "date_argued", Kind: KindDate, Ranged: true},
				Filter{Param: "date_terminated", Column: "date_terminated", Kind: KindDate, Ranged: true},
				Filter{Param: "blocked", Column: "blocked", Kind: KindBool},
			),
			Ordering: []string{"id", "date_created", "date_modified", "date_filed", "date_argued", "date_terminated"},
		},
		{
			Name:        "courts",
			Table:       "search_court",
			Description: "Courts and their jurisdictions.",
			IDKind:      KindString,
			Exclude:     []string{"notes"},
			Filters: []Filter{
				{Param: "id", Column: "id", Kind: KindString},
				{Param: "date_modified", Column: "date_modified", Kind: KindDateTime, Ranged: true},
				{Param: "in_use", Column: "in_use", Kind: KindBool},
				{Param: "has_opinion_scraper", Column: "has_opinion_scraper", Kind: KindBool},
				{Param: "has_oral_argument_scraper", Column: "has_oral_argument_scraper", Kind: KindBool},
				{Param: "position", Column: "position", Kind: KindFloat, Ranged: true},
				{Param: "start_date", Column: "start_date", Kind: KindDate, Ranged: true},
				{Param: "end_date", Column: "end_date", Kind: KindDate, Ranged: true},
				{Param: "jurisdiction", Column: "jurisdiction", Kind: KindString},
			},
			Ordering:     []string{"date_modified", "position", "start_date", "end_date"},
			DefaultOrder: "position",
		},
		{
			Name:        "audio",
			Table:       "audio_audio",
			Description: "Oral argument recordings.",
			Relations: []Relation{
				{Field: "docket", Column: "docket_id", Target: "dockets"},
			},
			Many: []ManyRelation{
				{Field: "panel", Table: "audio_audio_panel", SourceColumn: "audio_id", TargetColumn: "person_id", Target: "people"},
			},
			AbsoluteURL: &AbsoluteURL{Kind: "audio", IDColumn: "id", TitleColumn: "case_name"},
			Filters: withFilters(timestampFilters(),
				Filter{Param: "docket", Column: "docket_id", Kind: KindInt},
				Filter{Param: "source", Column: "source", Kind: KindString},
				Filter{Param: "sha1", Column: "sha1", Kind: KindString},
				Filter{Param: "processing_complete", Column: "processing_complete", Kind: KindBool},
				Filter{Param: "blocked", Column: "blocked", Kind: KindBool},
			),
			Ordering: []string{"id", "date_created", "date_modified"},
		},
		{
			Name:        "clusters",
			Table:       "search_opinioncluster",
			Description: "Opinion clusters. A cluster groups the opinions issued together in one decision.",
			Relations: []Relation{
				{Field: "docket", Column: "docket_id", Target: "dockets"},
			},
			Many: []ManyRelation{
				{Field: "panel", Table: "search_opinioncluster_panel", SourceColumn: "opinioncluster_id", TargetColumn: "person_id", Target: "people"},
				{Field: "non_participating_judges", Table: "search_opinioncluster_non_participating_judges", SourceColumn: "opinioncluster_id", TargetColumn: "person_id", Target: "people"},
				{Field: "sub_opinions", Table: "search_opinion", SourceColumn: "cluster_id", TargetColumn: "id", Target: "opinions"},
			},
			AbsoluteURL: &AbsoluteURL{Kind: "opinion", IDColumn: "id", SlugColumn: "slug", TitleColumn: "case_name"},
			Filters: withFilters(timestampFilters(),
				Filter{Param: "docket", Column: "docket_id", Kind: KindInt},
				Filter{Param: "date_filed", Column: "date_filed", Kind: KindDate, Ranged: true},
				Filter{Param: "scdb_id", Column: "scdb_id", Kind: KindString},
				Filter{Param: "source", Column: "source", Kind: KindString},
				Filter{Param: "citation_count", Column: "citation_count", Kind: KindInt, Ranged: true},
				Filter{Param: "precedential_status", Column: "precedential_status", Kind: KindString},
				Filter{Param: "blocked", Column: "blocked", Kind: KindBool},
			),
			Ordering: []string{"id", "date_created", "date_modified", "date_filed", "citation_count"},
		},
		{
			Name:        "opinions",
			Table:       "search_opinion",
			Description: "Individual opinions and their text.",
			Relations: []Relation{
				{Field: "cluster", Column: "cluster_id", Target: "clusters"},
				{Field: "author", Column: "author_id", Target: "people"},
			},
			Many: []ManyRelation{
				{Field: "joined_by", Table: "search_opinion_joined_by", SourceColumn: "opinion_id", TargetColumn: "person_id", Target: "people"},
			},
			AbsoluteURL: &AbsoluteURL{Kind: "opinion", IDColumn: "cluster_id", SlugColumn: "slug", TitleColumn: "case_name", ViaTable: "search_opinioncluster"},
			Filters: withFilters(timestampFilters(),
				Filter{Param: "cluster", Column: "cluster_id", Kind: KindInt},
				Filter{Param: "author", Column: "author_id", Kind: KindInt},
				Filter{Param: "type", Column: "type", Kind: KindString},
				Filter{Param: "sha1", Column: "sha1", Kind: KindString},
				Filter{Param: "extracted_by_ocr", Column: "extracted_by_ocr", Kind: KindBool},
				Filter{Param: "per_curiam", Column: "per_curiam", Kind: KindBool},
			),
			Ordering: []string{"id", "date_created", "date_modified"},
		},
		{
			Name:        "opinions-cited",
			Table:       "search_opinionscited",
			Description: "Citation edges between opinions.",
			Relations: []Relation{
				{Field: "citing_opinion", Column: "citing_opinion_id", Target: "opinions"},
				{Field: "cited_opinion", Column: "cited_opinion_id", Target: "opinions"},
			},
			Filters: []Filter{
				{Param: "id", Column: "id", Kind: KindInt, Ranged: true},
				{Param: "citing_opinion", Column: "citing_opinion_id", Kind: KindInt},
				{Param: "cited_opinion", Column: "cited_opinion_id", Kind: KindInt},
				{Param: "depth", Column: "depth", Kind: KindInt, Ranged: true},
			},
			Ordering: []string{"id", "depth"},
		},
		{
			Name:        "docket-entries",
			Table:       "search_docketentry",
			Description: "Docket entries with their RECAP documents.",
			Relations: []Relation{
				{Field: "docket", Column: "docket_id", Target: "dockets"},
			},
			Nested: []Nested{
				{Field: "recap_documents", Resource: "recap-documents", Column: "docket_entry_id"},
			},
			Filters: withFilters(timestampFilters(),
				Filter{Param: "docket", Column: "docket_id", Kind: KindInt},
				Filter{Param: "entry_number", Column: "entry_number", Kind: KindInt, Ranged: true},
				Filter{Param: "date_filed", Column: "date_filed", Kind: KindDate, Ranged: true},
			),
			Ordering: []string{"id", "date_created", "date_modified", "date_filed", "entry_number"},
		},
		{
			Name:        "recap-documents",
			Table:       "search_recapdocument",
			Description: "Documents purchased from PACER.",
			Relations: []Relation{
				{Field: "docket_entry", Column: "docket_entry_id", Target: "docket-entries"},
			},
			Filters: withFilters(timestampFilters(),
				Filter{Param: "docket_entry", Column: "docket_entry_id", Kind: KindInt},
				Filter{Param: "document_type", Column: "document_type", Kind: KindInt},
				Filter{Param: "document_number", Column: "document_number", Kind: KindInt, Ranged: true},
				Filter{Param: "attachment_number", Column: "attachment_number", Kind: KindInt},
				Filter{Param: "pacer_doc_id", Column: "pacer_doc_id", Kind: KindString},
				Filter{Param: "is_available", Column: "is_available", Kind: KindBool},
				Filter{Param: "sha1", Column: "sha1", Kind: KindString},
				Filter{Param: "ocr_status", Column: "ocr_status", Kind: KindInt},
			),
			Ordering: []string{"id", "date_created", "date_modified", "date_upload", "document_number", "attachment_number"},
		},
		{
			Name:        "people",
			Table:       "people_db_person",
			Description: "Judges and other people in the legal record.",
			Relations: []Relation{
				{Field: "is_alias_of", Column: "is_alias_of_id", Target: "people"},
			},
			Many: []ManyRelation{
				{Field: "positions", Table: "people_db_position", SourceColumn: "person_id", TargetColumn: "id", Target: "positions"},
				{Field: "educations", Table: "people_db_education", SourceColumn: "person_id", TargetColumn: "id", Target: "educations"},
				{Field: "political_affiliations", Table: "people_db_politicalaffiliation", SourceColumn: "person_id", TargetColumn: "id", Target: "political-affiliations"},
				{Field: "sources", Table: "people_db_source", SourceColumn: "person_id", TargetColumn: "id", Target: "sources"},
				{Field: "aba_ratings", Table: "people_db_abarating", SourceColumn: "person_id", TargetColumn: "id", Target: "aba-ratings"},
			},
			AbsoluteURL: &AbsoluteURL{Kind: "person", IDColumn: "id", SlugColumn: "slug", TitleColumn: "name_last"},
			Filters: withFilters(timestampFilters(),
				Filter{Param: "fjc_id", Column: "fjc_id", Kind: KindInt},
				Filter{Param: "name_first", Column: "name_first", Kind: KindString},
				Filter{Param: "name_middle", Column: "name_middle", Kind: KindString},
				Filter{Param: "name_last", Column: "name_last", Kind: KindString},
				Filter{Param: "name_suffix", Column: "name_suffix", Kind: KindString},
				Filter{Param: "date_dob", Column: "date_dob", Kind: KindDate, Ranged: true},
				Filter{Param: "date_dod", Column: "date_dod", Kind: KindDate, Ranged: true},
				Filter{Param: "dob_city", Column: "dob_city", Kind: KindString},
				Filter{Param: "dob_state", Column: "dob_state", Kind: KindString},
				Filter{Param: "gender", Column: "gender", Kind: KindString},
				Filter{Param: "religion", Column: "religion", Kind: KindString},
				Filter{Param: "has_photo", Column: "has_photo", Kind: KindBool},
			),
			Ordering: []string{"id", "date_created", "date_modified", "date_dob", "date_dod", "name_last"},
		},
		{
			Name:        "positions",
			Table:       "people_db_position",
			Description: "Jobs held by people: judgeships, appointments and other positions.",
			Relations: []Relation{
				{Field: "person", Column: "person_id", Target: "people"},
				{Field: "court", Column: "court_id", Target: "courts"},
				{Field: "school", Column: "school_id", Target: "schools"},
				{Field: "appointer", Column: "appointer_id", Target: "positions"},
				{Field: "supervisor", Column: "supervisor_id", Target: "people"},
				{Field: "predecessor", Column: "predecessor_id", Target: "people"},
			},
			Many: []ManyRelation{
				{Field: "retention_events", Table: "people_db_retentionevent", SourceColumn: "position_id", TargetColumn: "id", Target: "retention-events"},
			},
			Filters: withFilters(timestampFilters(),
				Filter{Param: "person", Column: "person_id", Kind: KindInt},
				Filter{Param: "court", Column: "court_id", Kind: KindString},
				Filter{Param: "school", Column: "school_id", Kind: KindInt},
				Filter{Param: "appointer", Column: "appointer_id", Kind: KindInt},
				Filter{Param: "position_type", Column: "position_type", Kind: KindString},
				Filter{Param: "job_title", Column: "job_title", Kind: KindString},
				Filter{Param: "date_nominated", Column: "date_nominated", Kind: KindDate, Ranged: true},
				Filter{Param: "date_elected", Column: "date_elected", Kind: KindDate, Ranged: true},
				Filter{Param: "date_confirmation", Column: "date_confirmation", Kind: KindDate, Ranged: true},
				Filter{Param: "date_start", Column: "date_start", Kind: KindDate, Ranged: true},
				Filter{Param: "date_termination", Column: "date_termination", Kind: KindDate, Ranged: true},
				Filter{Param: "how_selected", Column: "how_selected", Kind: KindString},
			),
			Ordering: []string{"id", "date_created", "date_modified", "date_nominated", "date_elected", "date_confirmation", "date_start", "date_termination"},
		},
		{
			Name:        "retention-events",
			Table:       "people_db_retentionevent",
			Description: "Retention votes and reappointments of a position.",
			Relations: []Relation{
				{Field: "position", Column: "position_id", Target: "positions"},
			},
			Filters: withFilters(timestampFilters(),
				Filter{Param: "position", Column: "position_id", Kind: KindInt},
				Filter{Param: "retention_type", Column: "retention_type", Kind: KindString},
				Filter{Param: "date_retention", Column: "date_retention", Kind: KindDate, Ranged: true},
				Filter{Param: "votes_yes", Column: "votes_yes", Kind: KindInt, Ranged: true},
				Filter{Param: "votes_no", Column: "votes_no", Kind: KindInt, Ranged: true},
				Filter{Param: "unopposed", Column: "unopposed", Kind: KindBool},
				Filter{Param: "won", Column: "won", Kind: KindBool},
			),
			Ordering: []string{"id", "date_created", "date_modified", "date_retention", "votes_yes", "votes_no"},
		},
		{
			Name:        "educations",
			Table:       "people_db_education",
			Description: "Degrees earned by people.",
			Relations: []Relation{
				{Field: "person", Column: "person_id", Target: "people"},
				{Field: "school", Column: "school_id", Target: "schools"},
			},
			Filters: withFilters(timestampFilters(),
				Filter{Param: "person", Column: "person_id", Kind: KindInt},
				Filter{Param: "school", Column: "school_id", Kind: KindInt},
				Filter{Param: "degree_level", Column: "degree_level", Kind: KindString},
				Filter{Param: "degree_year", Column: "degree_year", Kind: KindInt, Ranged: true},
			),
			Ordering: []string{"id", "date_created", "date_modified", "degree_year"},
		},
		{
			Name:        "schools",
			Table:       "people_db_school",
			Description: "Schools attended by people.",
			Relations: []Relation{
				{Field: "is_alias_of", Column: "is_alias_of_id", Target: "schools"},
			},
			Many: []ManyRelation{
				{Field: "educations", Table: "people_db_education", SourceColumn: "school_id", TargetColumn: "id", Target: "educations"},
			},
			Filters: withFilters(timestampFilters(),
				Filter{Param: "name", Column: "name", Kind: KindString},
				Filter{Param: "ein", Column: "ein", Kind: KindInt},
			),
			Ordering: []string{"id", "date_created", "date_modified", "name"},
		},
		{
			Name:        "political-affiliations",
			Table:       "people_db_politicalaffiliation",
			Description: "Party affiliations of people.",
			Relations: []Relation{
				{Field: "person", Column: "person_id", Target: "people"},
			},
			Filters: withFilters(timestampFilters(),
				Filter{Param: "person", Column: "person_id", Kind: KindInt},
				Filter{Param: "political_party", Column: "political_party", Kind: KindString},
				Filter{Param: "source", Column: "source", Kind: KindString},
				Filter{Param: "date_start", Column: "date_start", Kind: KindDate, Ranged: true},
				Filter{Param: "date_end", Column: "date_end", Kind: KindDate, Ranged: true},
			),
			Ordering: []string{"id", "date_created", "date_modified", "date_start", "date_end"},
		},
		{
			Name:        "sources",
			Table:       "people_db_source",
			Description: "Where information about a person came from.",
			Relations: []Relation{
				{Field: "person", Column: "person_id", Target: "people"},
			},
			Filters: withFilters(timestampFilters(),
				Filter{Param: "person", Column: "person_id", Kind: KindInt},
				Filter{Param: "date_accessed", Column: "date_accessed", Kind: KindDate, Ranged: true},
			),
			Ordering: []string{"id", "date_created", "date_modified", "date_accessed"},
		},
		{
			Name:        "aba-ratings",
			Table:       "people_db_abarating",
			Description: "American Bar Association ratings of judicial nominees.",
			Relations: []Relation{
				{Field: "person", Column: "person_id", Target: "people"},
			},
			Filters: withFilters(timestampFilters(),
				Filter{Param: "person", Column: "person_id", Kind: KindInt},
				Filter{Param: "year_rated", Column: "year_rated", Kind: KindInt, Ranged: true},
				Filter{Param: "rating", Column: "rating", Kind: KindString},
			),
			Ordering: []string{"id", "date_created", "date_modified", "year_rated"},
		},
		{
			Name:        "parties",
			Table:       "people_db_party",
			Description: "Parties to a case.",
			Many: []ManyRelation{
				{Field: "dockets", Table: "people_db_partytype", SourceColumn: "party_id", TargetColumn: "docket_id", Target: "dockets"},
			},
			Filters: withFilters(timestampFilters(),
				Filter{Param: "name", Column: "name", Kind: KindString},
			),
			Ordering: []string{"id", "date_created", "date_modified"},
		},
	}
}
