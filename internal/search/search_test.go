package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/product_catalog/internal/models"
)

type recorded struct {
	Method string
	Path   string
	Body   string
}

type fakeES struct {
	mu       sync.Mutex
	requests []recorded
	respond  func(w http.ResponseWriter, r *http.Request)
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recorded{Method: r.Method, Path: r.URL.Path, Body: string(body)})
	f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	f.respond(w, r)
}

func newTestClient(t *testing.T, respond func(w http.ResponseWriter, r *http.Request)) (*Client, *fakeES) {
	t.Helper()

	fake := &fakeES{respond: respond}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{URL: srv.URL, Index: "products_test"})
	require.NoError(t, err)
	return c, fake
}

func TestClient_IndexProduct(t *testing.T) {
	t.Parallel()

	c, fake := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	p := &models.Product{ID: 12, Name: "Icons Pack", Price: decimal.RequireFromString("5.00"), Rating: 4}
	require.NoError(t, c.IndexProduct(context.Background(), p))

	require.Len(t, fake.requests, 1)
	req := fake.requests[0]
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/products_test/_doc/12", req.Path)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(req.Body), &doc))
	assert.Equal(t, "Icons Pack", doc["name"])
}

func TestClient_DeleteMissingIsOK(t *testing.T) {
	t.Parallel()

	c, fake := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"not_found"}`))
	})

	require.NoError(t, c.DeleteProduct(context.Background(), 3))
	require.Len(t, fake.requests, 1)
	assert.Equal(t, http.MethodDelete, fake.requests[0].Method)
	assert.Equal(t, "/products_test/_doc/3", fake.requests[0].Path)
}

func TestClient_Search(t *testing.T) {
	t.Parallel()

	c, fake := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"hits": {
				"total": {"value": 2},
				"hits": [
					{"_source": {"id": 1, "name": "Dark Theme", "price": 12.5, "gallery_images": ["https://x/1.png"]}},
					{"_source": {"id": 2, "name": "Theme Kit", "price": 3}}
				]
			}
		}`))
	})

	total, prods, err := c.Search(context.Background(), "theme", 10, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, prods, 2)
	assert.Equal(t, "Dark Theme", prods[0].Name)
	assert.Equal(t, []string{"https://x/1.png"}, []string(prods[0].GalleryImages))
	assert.NotNil(t, prods[1].GalleryImages)
	assert.True(t, prods[0].Price.Equal(decimal.RequireFromString("12.5")))

	require.Len(t, fake.requests, 1)
	assert.True(t, strings.HasPrefix(fake.requests[0].Path, "/products_test/_search"))

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(fake.requests[0].Body), &body))
	assert.Equal(t, float64(10), body["from"])
	assert.Equal(t, float64(5), body["size"])
	mm := body["query"].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "theme", mm["query"])
	assert.Equal(t, "AUTO", mm["fuzziness"])
}

func TestClient_SearchError(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"parsing_exception"}}`))
	})

	_, _, err := c.Search(context.Background(), "x", 0, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing_exception")
}

func TestClient_EnsureIndexCreatesMissingIndex(t *testing.T) {
	t.Parallel()

	c, fake := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"acknowledged":true}`))
	})

	require.NoError(t, c.EnsureIndex(context.Background()))

	require.Len(t, fake.requests, 2)
	assert.Equal(t, http.MethodHead, fake.requests[0].Method)
	assert.Equal(t, http.MethodPut, fake.requests[1].Method)
	assert.Equal(t, "/products_test", fake.requests[1].Path)
	assert.Contains(t, fake.requests[1].Body, "mappings")
}
