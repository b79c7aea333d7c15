package search_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"courtlistener.app/cl/internal/search"
)

var _ = Describe("BuildFields", func() {
	schema := []search.SchemaField{
		{Name: "text", Type: "string"},
		{Name: "_version_", Type: "int64"},
		{Name: "django_ct", Type: "string"},
		{Name: "django_id", Type: "int32"},
		{Name: "caseName", Type: "string"},
		{Name: "dateFiled", Type: "int64"},
		{Name: "citeCount", Type: "int32"},
		{Name: "pagerank", Type: "float"},
		{Name: "status_exact", Type: "bool"},
		{Name: "citation", Type: "string[]"},
		{Name: "location", Type: "geopoint"},
	}

	It("maps types, skips internals and sorts by name", func() {
		fields := search.BuildFields(schema, map[string]bool{"dateFiled": true})

		Expect(fields).To(Equal([]search.Field{
			{Name: "caseName", Kind: search.KindString},
			{Name: "citation", Kind: search.KindList},
			{Name: "citeCount", Kind: search.KindInteger},
			{Name: "dateFiled", Kind: search.KindDatetime},
			{Name: "location", Kind: search.KindString},
			{Name: "pagerank", Kind: search.KindFloat},
			{Name: "snippet", Kind: search.KindString},
			{Name: "status_exact", Kind: search.KindBoolean},
		}))
	})

	It("always includes the snippet", func() {
		Expect(search.BuildFields(nil, nil)).To(Equal([]search.Field{{Name: "snippet", Kind: search.KindString}}))
	})
})

var _ = Describe("Serialize", func() {
	fields := []search.Field{
		{Name: "caseName", Kind: search.KindString},
		{Name: "citation", Kind: search.KindList},
		{Name: "citeCount", Kind: search.KindInteger},
		{Name: "court_id", Kind: search.KindString},
		{Name: "dateFiled", Kind: search.KindDatetime},
		{Name: "snippet", Kind: search.KindString},
		{Name: "status_exact", Kind: search.KindBoolean},
	}

	It("coerces values to their declared kinds", func() {
		out := search.Serialize(search.Hit{
			Document: map[string]any{
				"caseName":     "Roe v. Wade",
				"citation":     "410 U.S. 113",
				"citeCount":    float64(3421),
				"dateFiled":    float64(96508800),
				"status_exact": "true",
				"extra":        "dropped",
			},
			Snippet: "the <mark>right</mark> of privacy",
		}, fields)

		Expect(out).To(Equal(map[string]any{
			"caseName":     "Roe v. Wade",
			"citation":     []any{"410 U.S. 113"},
			"citeCount":    int64(3421),
			"court_id":     nil,
			"dateFiled":    "1973-01-22T00:00:00Z",
			"snippet":      "the <mark>right</mark> of privacy",
			"status_exact": true,
		}))
	})
})
