package api

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"

	"courtlistener.app/cl/internal/search"
	"courtlistener.app/cl/internal/store"
)

const deprecationDate = "2016-04-01"

type Config struct {
	BaseURL      string
	PageSize     int
	MaxPageSize  int
	PagerankFile string
}

type Handler struct {
	registry *Registry
	renderer *renderer
	records  store.RecordStore
	courts   store.CourtStore
	searcher search.Searcher
	cfg      Config
	schemas  map[string]*jsonschema.Schema
}

// NewHandler builds the REST API handler. searcher may be nil when no search
// backend is configured. The JSON schemas of docTypes are published on the
// rest-info page.
func NewHandler(
	registry *Registry,
	records store.RecordStore,
	courts store.CourtStore,
	searcher search.Searcher,
	cfg Config,
	docTypes map[string]any,
) *Handler {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	if cfg.MaxPageSize < cfg.PageSize {
		cfg.MaxPageSize = cfg.PageSize
	}
	return &Handler{
		registry: registry,
		renderer: &renderer{records: records, registry: registry, baseURL: cfg.BaseURL},
		records:  records,
		courts:   courts,
		searcher: searcher,
		cfg:      cfg,
		schemas:  reflectSchemas(docTypes),
	}
}

// Root lists the collections of the current API version.
func (h *Handler) Root(c *gin.Context) {
	out := gin.H{}
	for _, name := range h.registry.Names() {
		out[name] = h.versionURL(name + "/")
	}
	out["search"] = h.versionURL("search/")
	c.JSON(http.StatusOK, out)
}

func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	res, ok := h.registry.Get(c.Param("resource"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	values := c.Request.URL.Query()
	page, err := parsePagination(values, h.cfg.PageSize, h.cfg.MaxPageSize)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid page"})
		return
	}

	q, err := buildRecordQuery(res, values)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	count, err := h.records.Count(ctx, q)
	if err != nil {
		slog.ErrorContext(ctx, "failed to count records", "error", err, "resource", res.Name)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list records"})
		return
	}

	last := lastPage(int(count), page.PageSize)
	if page.Page > last {
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid page"})
		return
	}

	q.Limit = page.PageSize
	q.Offset = page.offset()
	records, err := h.records.List(ctx, q)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list records", "error", err, "resource", res.Name)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list records"})
		return
	}

	results, err := h.renderer.render(ctx, res, records)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render records", "error", err, "resource", res.Name)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list records"})
		return
	}

	fields, omit := splitList(values.Get("fields")), splitList(values.Get("omit"))
	for i := range results {
		results[i] = selectFields(results[i], fields, omit)
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    count,
		"next":     pageURL(h.cfg.BaseURL, c.Request.URL, page.Page+1, last),
		"previous": pageURL(h.cfg.BaseURL, c.Request.URL, page.Page-1, last),
		"results":  results,
	})
}

func (h *Handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	res, ok := h.registry.Get(c.Param("resource"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var id any = c.Param("id")
	if res.IDKind == KindInt {
		n, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		id = n
	}

	rec, err := h.records.Get(ctx, res.Table, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to get record", "error", err, "resource", res.Name)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get record"})
		return
	}

	rendered, err := h.renderer.render(ctx, res, []store.Record{rec})
	if err != nil {
		slog.ErrorContext(ctx, "failed to render record", "error", err, "resource", res.Name)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get record"})
		return
	}

	values := c.Request.URL.Query()
	c.JSON(http.StatusOK, selectFields(rendered[0], splitList(values.Get("fields")), splitList(values.Get("omit"))))
}

func (h *Handler) Search(c *gin.Context) {
	ctx := c.Request.Context()

	if h.searcher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search is not available"})
		return
	}

	values := c.Request.URL.Query()
	searchType, ok := search.ParseType(values.Get("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown search type"})
		return
	}

	page, err := parsePagination(values, h.cfg.PageSize, h.cfg.MaxPageSize)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid page"})
		return
	}

	result, err := h.searcher.Search(ctx, search.Request{
		Type:    searchType,
		Q:       values.Get("q"),
		OrderBy: values.Get("order_by"),
		Page:    page.Page,
		PerPage: page.PageSize,
	})
	if err != nil {
		if errors.Is(err, search.ErrInvalidOrder) || errors.Is(err, search.ErrUnknownType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.ErrorContext(ctx, "search failed", "error", err, "type", searchType)
		c.JSON(http.StatusBadGateway, gin.H{"error": "search failed"})
		return
	}

	last := lastPage(result.Count, page.PageSize)
	if page.Page > last {
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid page"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    result.Count,
		"next":     pageURL(h.cfg.BaseURL, c.Request.URL, page.Page+1, last),
		"previous": pageURL(h.cfg.BaseURL, c.Request.URL, page.Page-1, last),
		"results":  result.Results,
	})
}

// Coverage reports opinion counts per year for a court, or for every court with "all".
func (h *Handler) Coverage(c *gin.Context) {
	h.coverage(c, strings.Trim(c.Param("court"), "/"))
}

func (h *Handler) coverage(c *gin.Context, court string) {
	ctx := c.Request.Context()

	if court != "all" {
		if _, err := h.courts.GetByID(ctx, court); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "court not found"})
				return
			}
			slog.ErrorContext(ctx, "failed to get court", "error", err, "court", court)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load coverage"})
			return
		}
	}

	counts, err := h.courts.CountOpinionsByYear(ctx, court)
	if err != nil {
		slog.ErrorContext(ctx, "failed to count opinions", "error", err, "court", court)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load coverage"})
		return
	}

	annual := make(map[string]int64, len(counts))
	var total int64
	for _, yc := range counts {
		annual[strconv.Itoa(yc.Year)] = yc.Count
		total += yc.Count
	}

	c.JSON(http.StatusOK, gin.H{"annual_counts": annual, "total": total})
}

// Deprecated answers every v1 and v2 path with 410 Gone. Coverage stayed
// available on the old versions.
func (h *Handler) Deprecated(c *gin.Context) {
	path := strings.Trim(c.Param("path"), "/")
	if court, ok := strings.CutPrefix(path, "coverage/"); ok && court != "" {
		h.coverage(c, court)
		return
	}

	c.JSON(http.StatusGone, gin.H{
		"meta": gin.H{
			"status":           "This endpoint is deprecated. Please upgrade to the newest version of the API.",
			"deprecation_date": deprecationDate,
			"removal_date":     deprecationDate,
			"new_endpoint":     h.versionURL(""),
		},
		"objects": []any{},
	})
}

// Pagerank serves the bulk pagerank export.
func (h *Handler) Pagerank(c *gin.Context) {
	info, err := os.Stat(h.cfg.PagerankFile)
	if err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, gin.H{"error": "pagerank file not found"})
		return
	}
	c.FileAttachment(h.cfg.PagerankFile, "external_pagerank.csv")
}

func (h *Handler) versionURL(path string) string {
	return h.cfg.BaseURL + "/api/rest/" + currentVersion + "/" + path
}

func lastPage(count, pageSize int) int {
	if count <= 0 {
		return 1
	}
	return (count + pageSize - 1) / pageSize
}
