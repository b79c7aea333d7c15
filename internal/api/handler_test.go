package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"courtlistener.app/cl/internal/api"
	"courtlistener.app/cl/internal/model"
	"courtlistener.app/cl/internal/search"
	"courtlistener.app/cl/internal/store"
)

const base = "https://www.courtlistener.com"

type exampleDoc struct {
	Name string `json:"name"`
}

var _ = Describe("Handler", func() {
	var (
		router   *gin.Engine
		records  *fakeRecordStore
		courts   *mockCourtStore
		searcher *fakeSearcher
		cfg      api.Config
	)

	setup := func() {
		h := api.NewHandler(
			api.NewRegistry(api.DefaultResources()...),
			records, courts, searcher, cfg,
			map[string]any{"example": &exampleDoc{}},
		)
		router = gin.New()
		router.GET("/api/", h.Index)
		router.GET("/api/jurisdictions/", h.Jurisdictions)
		router.GET("/api/rest-info/", h.RestInfo)
		router.GET("/api/rest-info/:version/", h.RestInfo)
		router.GET("/api/bulk-info/", h.BulkInfo)
		router.GET("/api/bulk/external_pagerank/", h.Pagerank)
		router.GET("/api/rest/v3/", h.Root)
		router.GET("/api/rest/v3/search/", h.Search)
		router.GET("/api/rest/v3/coverage/:court/", h.Coverage)
		router.GET("/api/rest/v3/:resource/", h.List)
		router.GET("/api/rest/v3/:resource/:id/", h.Detail)
		router.Any("/api/rest/v1/*path", h.Deprecated)
		router.Any("/api/rest/v2/*path", h.Deprecated)
	}

	get := func(path string) (*httptest.ResponseRecorder, map[string]any) {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		return w, body
	}

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		records = &fakeRecordStore{tables: map[string][]store.Record{
			"search_docket": {
				{"id": int64(1), "court_id": "ca1", "assigned_to_id": int64(7), "referred_to_id": nil, "slug": "foo-v-bar", "case_name": "Foo v. Bar", "view_count": int64(99)},
				{"id": int64(2), "court_id": "ca2", "assigned_to_id": nil, "referred_to_id": nil, "slug": "", "case_name": "Baz v. Qux", "view_count": int64(3)},
			},
			"search_opinioncluster": {
				{"id": int64(10), "docket_id": int64(1), "slug": "foo-v-bar", "case_name": "Foo v. Bar"},
				{"id": int64(11), "docket_id": int64(1), "slug": "foo-v-bar-2", "case_name": "Foo v. Bar"},
			},
			"search_opinion": {
				{"id": int64(100), "cluster_id": int64(11), "author_id": nil, "type": "010combined"},
			},
			"search_docketentry": {
				{"id": int64(50), "docket_id": int64(1), "entry_number": int32(1)},
			},
			"search_recapdocument": {
				{"id": int64(500), "docket_entry_id": int64(50), "document_number": int32(1)},
				{"id": int64(501), "docket_entry_id": int64(50), "document_number": int32(2)},
			},
			"search_court": {
				{"id": "ca1", "full_name": "First Circuit", "notes": "internal", "position": 1.0},
			},
		}}
		courts = &mockCourtStore{
			courts: []model.Court{{ID: "ca2", FullName: "Second Circuit"}, {ID: "ca1", FullName: "First Circuit"}},
			counts: []model.YearCount{{Year: 1999, Count: 4}, {Year: 2000, Count: 6}},
		}
		searcher = &fakeSearcher{}
		cfg = api.Config{BaseURL: base, PageSize: 20, MaxPageSize: 100}
		setup()
	})

	Describe("List", func() {
		It("renders relations as hyperlinks and hides excluded columns", func() {
			w, body := get("/api/rest/v3/dockets/")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(body["count"]).To(BeEquivalentTo(2))
			Expect(body["next"]).To(BeNil())
			Expect(body["previous"]).To(BeNil())

			results := body["results"].([]any)
			first := results[0].(map[string]any)
			Expect(first).NotTo(HaveKey("view_count"))
			Expect(first).NotTo(HaveKey("court_id"))
			Expect(first["court"]).To(Equal(base + "/api/rest/v3/courts/ca1/"))
			Expect(first["assigned_to"]).To(Equal(base + "/api/rest/v3/people/7/"))
			Expect(first["referred_to"]).To(BeNil())
			Expect(first["resource_uri"]).To(Equal(base + "/api/rest/v3/dockets/1/"))
			Expect(first["clusters"]).To(Equal([]any{
				base + "/api/rest/v3/clusters/10/",
				base + "/api/rest/v3/clusters/11/",
			}))
			Expect(first["audio_files"]).To(Equal([]any{}))
			Expect(first["absolute_url"]).To(Equal("/docket/1/foo-v-bar/"))

			second := results[1].(map[string]any)
			Expect(second["absolute_url"]).To(Equal("/docket/2/baz-v-qux/"))
		})

		It("builds next and previous links", func() {
			cfg.PageSize = 1
			setup()

			_, body := get("/api/rest/v3/dockets/?court=ca1&page=2")
			Expect(body["next"]).To(BeNil())
			Expect(body["previous"]).To(Equal(base + "/api/rest/v3/dockets/?court=ca1"))

			_, body = get("/api/rest/v3/dockets/?page_size=1")
			Expect(body["next"]).To(Equal(base + "/api/rest/v3/dockets/?page=2&page_size=1"))
		})

		It("rejects a page past the end", func() {
			w, _ := get("/api/rest/v3/dockets/?page=9")
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("passes declared filters and ordering to the store", func() {
			w, _ := get("/api/rest/v3/dockets/?court=ca1&date_filed__gte=2020-01-01&order_by=-date_filed&bogus=1")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(records.lastQuery.Where).To(Equal([]store.Condition{
				{Column: "court_id", Op: store.OpEq, Value: "ca1"},
				{Column: "date_filed", Op: store.OpGte, Value: "2020-01-01"},
			}))
			Expect(records.lastQuery.OrderBy).To(Equal([]store.Order{
				{Column: "date_filed", Desc: true},
				{Column: "id"},
			}))
		})

		It("rejects malformed filter values", func() {
			w, _ := get("/api/rest/v3/dockets/?date_filed=yesterday")
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects undeclared ordering", func() {
			w, _ := get("/api/rest/v3/dockets/?order_by=case_name")
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("keeps only requested fields", func() {
			_, body := get("/api/rest/v3/dockets/?fields=id,court")
			first := body["results"].([]any)[0].(map[string]any)
			Expect(first).To(HaveLen(2))
			Expect(first).To(HaveKey("court"))
		})

		It("drops omitted fields", func() {
			_, body := get("/api/rest/v3/dockets/?omit=clusters,parties")
			first := body["results"].([]any)[0].(map[string]any)
			Expect(first).NotTo(HaveKey("clusters"))
			Expect(first).NotTo(HaveKey("parties"))
			Expect(first).To(HaveKey("court"))
		})

		It("nests recap documents in docket entries", func() {
			_, body := get("/api/rest/v3/docket-entries/")
			entry := body["results"].([]any)[0].(map[string]any)
			docs := entry["recap_documents"].([]any)
			Expect(docs).To(HaveLen(2))
			Expect(docs[0].(map[string]any)["docket_entry"]).To(Equal(base + "/api/rest/v3/docket-entries/50/"))
		})

		It("returns 404 for an unknown resource", func() {
			w, _ := get("/api/rest/v3/nope/")
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("Detail", func() {
		It("builds an opinion's absolute url from its cluster", func() {
			w, body := get("/api/rest/v3/opinions/100/")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(body["absolute_url"]).To(Equal("/opinion/11/foo-v-bar-2/"))
			Expect(body["cluster"]).To(Equal(base + "/api/rest/v3/clusters/11/"))
			Expect(body["joined_by"]).To(Equal([]any{}))
		})

		It("looks up courts by string id and hides notes", func() {
			w, body := get("/api/rest/v3/courts/ca1/")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(body).NotTo(HaveKey("notes"))
			Expect(body["resource_uri"]).To(Equal(base + "/api/rest/v3/courts/ca1/"))
		})

		It("returns 404 for a missing or malformed id", func() {
			w, _ := get("/api/rest/v3/dockets/999/")
			Expect(w.Code).To(Equal(http.StatusNotFound))
			w, _ = get("/api/rest/v3/dockets/abc/")
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("versions", func() {
		It("answers 410 for any deprecated path", func() {
			for _, path := range []string{"/api/rest/v1/", "/api/rest/v2/dockets/", "/api/rest/v1/search/deep/path/"} {
				w, body := get(path)
				Expect(w.Code).To(Equal(http.StatusGone), path)
				Expect(body["meta"]).To(HaveKeyWithValue("deprecation_date", "2016-04-01"))
			}
		})

		It("still serves coverage on old versions", func() {
			w, body := get("/api/rest/v2/coverage/ca1/")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(body["total"]).To(BeEquivalentTo(10))
		})

		It("lists the collections at the root", func() {
			_, body := get("/api/rest/v3/")
			Expect(body).To(HaveKeyWithValue("dockets", base+"/api/rest/v3/dockets/"))
			Expect(body).To(HaveKeyWithValue("search", base+"/api/rest/v3/search/"))
			Expect(body).To(HaveLen(18))
		})
	})

	Describe("Coverage", func() {
		It("counts opinions per year", func() {
			w, body := get("/api/rest/v3/coverage/all/")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(body["annual_counts"]).To(Equal(map[string]any{"1999": float64(4), "2000": float64(6)}))
			Expect(body["total"]).To(BeEquivalentTo(10))
		})

		It("returns 404 for an unknown court", func() {
			w, _ := get("/api/rest/v3/coverage/zz/")
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("Search", func() {
		It("paginates search results", func() {
			searcher.page = &search.Page{Count: 45, Results: []map[string]any{{"caseName": "Roe"}}}
			w, body := get("/api/rest/v3/search/?q=privacy&type=oa&page=2")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(searcher.lastReq.Type).To(Equal(search.TypeOralArguments))
			Expect(searcher.lastReq.Page).To(Equal(2))
			Expect(body["count"]).To(BeEquivalentTo(45))
			Expect(body["next"]).To(Equal(base + "/api/rest/v3/search/?page=3&q=privacy&type=oa"))
			Expect(body["previous"]).To(Equal(base + "/api/rest/v3/search/?q=privacy&type=oa"))
		})

		It("rejects an unknown type", func() {
			w, _ := get("/api/rest/v3/search/?type=zz")
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("maps bad ordering to 400", func() {
			searcher.err = search.ErrInvalidOrder
			w, _ := get("/api/rest/v3/search/?order_by=nope")
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("maps backend failures to 502", func() {
			searcher.err = errors.New("connection refused")
			w, _ := get("/api/rest/v3/search/")
			Expect(w.Code).To(Equal(http.StatusBadGateway))
		})
	})

	Describe("docs", func() {
		It("links the documentation pages", func() {
			_, body := get("/api/")
			Expect(body["rest"]).To(Equal(base + "/api/rest/v3/"))
		})

		It("lists jurisdictions", func() {
			_, body := get("/api/jurisdictions/")
			Expect(body["count"]).To(BeEquivalentTo(2))
		})

		It("documents resources and schemas", func() {
			w, body := get("/api/rest-info/")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(body["resources"]).To(HaveLen(17))
			Expect(body["schemas"]).To(HaveKey("example"))
			Expect(body["search_fields"]).To(HaveLen(1))
		})

		It("marks old versions as deprecated", func() {
			_, body := get("/api/rest-info/v1/")
			Expect(body["deprecated"]).To(BeTrue())
			Expect(body["deprecation_date"]).To(Equal("2016-04-01"))
		})

		It("sorts bulk courts", func() {
			_, body := get("/api/bulk-info/")
			Expect(body["courts"]).To(Equal([]any{"ca1", "ca2"}))
		})

		It("serves the pagerank file when present", func() {
			w, _ := get("/api/bulk/external_pagerank/")
			Expect(w.Code).To(Equal(http.StatusNotFound))

			path := filepath.Join(GinkgoT().TempDir(), "pr.csv")
			Expect(os.WriteFile(path, []byte("1,0.5\n"), 0o600)).To(Succeed())
			cfg.PagerankFile = path
			setup()

			w, _ = get("/api/bulk/external_pagerank/")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(Equal("1,0.5\n"))
		})
	})
})
