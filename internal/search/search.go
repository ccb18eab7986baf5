// Package search keeps an Elasticsearch index of products and queries it.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"

	"github.com/Skotchmaster/product_catalog/internal/models"
)

type Config struct {
	URL      string
	Username string
	Password string
	Index    string
}

type Client struct {
	es    *elasticsearch.Client
	index string
}

func NewClient(cfg Config) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}
	return New(es, cfg.Index), nil
}

func New(es *elasticsearch.Client, index string) *Client {
	if index == "" {
		index = "products"
	}
	return &Client{es: es, index: index}
}

func (c *Client) Index() string {
	return c.index
}

func responseError(op string, res *esapi.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
	return fmt.Errorf("elasticsearch %s: %s: %s", op, res.Status(), strings.TrimSpace(string(body)))
}

const indexMapping = `{
  "mappings": {
    "properties": {
      "name":        {"type": "text"},
      "description": {"type": "text"},
      "category":    {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "tags":        {"type": "text"},
      "license":     {"type": "keyword"},
      "rating":      {"type": "integer"},
      "price":       {"type": "scaled_float", "scaling_factor": 100},
      "is_featured": {"type": "boolean"},
      "created_at":  {"type": "date"}
    }
  }
}`

// EnsureIndex creates the index with its mapping unless it already exists.
func (c *Client) EnsureIndex(ctx context.Context) error {
	res, err := c.es.Indices.Exists([]string{c.index}, c.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch index exists: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = c.es.Indices.Create(c.index,
		c.es.Indices.Create.WithBody(strings.NewReader(indexMapping)),
		c.es.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("create index", res)
	}
	return nil
}

func docID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func (c *Client) IndexProduct(ctx context.Context, p *models.Product) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}

	res, err := c.es.Index(c.index, bytes.NewReader(body),
		c.es.Index.WithDocumentID(docID(p.ID)),
		c.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index", res)
	}
	return nil
}

// DeleteProduct removes the document; a missing document is not an error.
func (c *Client) DeleteProduct(ctx context.Context, id uint) error {
	res, err := c.es.Delete(c.index, docID(id), c.es.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch delete: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete", res)
	}
	return nil
}

func (c *Client) Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description", "category", "tags"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("encode search: %w", err)
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("elasticsearch search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, responseError("search", res)
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("decode search: %w", err)
	}

	prods := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		prods[i] = hit.Source
		if prods[i].GalleryImages == nil {
			prods[i].GalleryImages = []string{}
		}
	}
	return r.Hits.Total.Value, prods, nil
}
