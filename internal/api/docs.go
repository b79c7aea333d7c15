package api

import (
	"log/slog"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"

	"courtlistener.app/cl/internal/search"
)

var bulkTypes = []string{"dockets", "clusters", "opinions", "audio", "people", "positions"}

func reflectSchemas(types map[string]any) map[string]*jsonschema.Schema {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	out := make(map[string]*jsonschema.Schema, len(types))
	for name, v := range types {
		out[name] = r.Reflect(v)
	}
	return out
}

// Index is the API landing page.
func (h *Handler) Index(c *gin.Context) {
	base := h.cfg.BaseURL + "/api"
	c.JSON(http.StatusOK, gin.H{
		"rest":          h.versionURL(""),
		"rest_info":     base + "/rest-info/",
		"bulk_info":     base + "/bulk-info/",
		"jurisdictions": base + "/jurisdictions/",
		"coverage":      h.versionURL("coverage/all/"),
		"pagerank":      base + "/bulk/external_pagerank/",
	})
}

// Jurisdictions lists the courts in use.
func (h *Handler) Jurisdictions(c *gin.Context) {
	ctx := c.Request.Context()

	courts, err := h.courts.ListInUse(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list courts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list courts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(courts), "courts": courts})
}

type filterDoc struct {
	Param   string    `json:"param"`
	Kind    FieldKind `json:"kind"`
	Lookups []string  `json:"lookups"`
}

type relationDoc struct {
	Field  string `json:"field"`
	Target string `json:"target"`
	Many   bool   `json:"many"`
}

type resourceDoc struct {
	Name        string        `json:"name"`
	URL         string        `json:"url"`
	Description string        `json:"description"`
	Excluded    []string      `json:"excluded_fields"`
	Relations   []relationDoc `json:"relations"`
	Nested      []string      `json:"nested"`
	Filters     []filterDoc   `json:"filters"`
	Ordering    []string      `json:"ordering"`
}

// RestInfo documents the resources, the search fields and the account payloads.
func (h *Handler) RestInfo(c *gin.Context) {
	ctx := c.Request.Context()

	version := c.Param("version")
	if version == "" {
		version = currentVersion
	}
	if version != "v1" && version != "v2" && version != currentVersion {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown API version"})
		return
	}

	docs := make([]resourceDoc, 0, len(h.registry.Names()))
	for _, name := range h.registry.Names() {
		res, _ := h.registry.Get(name)
		docs = append(docs, documentResource(res, h.versionURL(name+"/")))
	}

	out := gin.H{
		"version":          version,
		"current_version":  currentVersion,
		"deprecated":       version != currentVersion,
		"deprecation_date": nil,
		"resources":        docs,
		"schemas":          h.schemas,
	}
	if version != currentVersion {
		out["deprecation_date"] = deprecationDate
	}

	if h.searcher != nil {
		fields, err := h.searcher.Fields(ctx, search.DefaultType)
		if err != nil {
			slog.WarnContext(ctx, "search schema unavailable for docs", "error", err)
		} else {
			out["search_fields"] = fields
		}
	}

	c.JSON(http.StatusOK, out)
}

func documentResource(res *Resource, url string) resourceDoc {
	doc := resourceDoc{
		Name:        res.Name,
		URL:         url,
		Description: res.Description,
		Excluded:    append([]string{}, res.Exclude...),
		Relations:   []relationDoc{},
		Nested:      []string{},
		Filters:     []filterDoc{},
		Ordering:    append([]string{}, res.Ordering...),
	}
	for _, rel := range res.Relations {
		doc.Relations = append(doc.Relations, relationDoc{Field: rel.Field, Target: rel.Target})
	}
	for _, many := range res.Many {
		doc.Relations = append(doc.Relations, relationDoc{Field: many.Field, Target: many.Target, Many: true})
	}
	for _, n := range res.Nested {
		doc.Nested = append(doc.Nested, n.Field)
	}
	for _, f := range res.Filters {
		lookups := []string{"exact", "in"}
		if f.Ranged {
			lookups = append(lookups, "gt", "gte", "lt", "lte")
		}
		doc.Filters = append(doc.Filters, filterDoc{Param: f.Param, Kind: f.Kind, Lookups: lookups})
	}
	return doc
}

// BulkInfo describes the bulk data files.
func (h *Handler) BulkInfo(c *gin.Context) {
	ctx := c.Request.Context()

	courts, err := h.courts.ListInUse(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list courts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list courts"})
		return
	}

	ids := make([]string, 0, len(courts))
	for _, court := range courts {
		ids = append(ids, court.ID)
	}
	sort.Strings(ids)

	base := h.cfg.BaseURL + "/api/bulk-data"
	files := gin.H{}
	for _, t := range bulkTypes {
		files[t] = gin.H{
			"all":      base + "/" + t + "/all.tar.gz",
			"by_court": base + "/" + t + "/{court}.tar.gz",
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"courts":   ids,
		"files":    files,
		"pagerank": h.cfg.BaseURL + "/api/bulk/external_pagerank/",
	})
}
