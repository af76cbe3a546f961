package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-bootcamp-directory/internal/domain/entity"
)

// BootcampIndex mirrors bootcamps into Elasticsearch for free-text search.
// Writes are best effort; the database stays authoritative.
type BootcampIndex struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewBootcampIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *BootcampIndex {
	return &BootcampIndex{ES: es, Index: index, Logger: logger}
}

func (i *BootcampIndex) enabled() bool { return i != nil && i.ES != nil && i.Index != "" }

func document(b *entity.Bootcamp) map[string]any {
	doc := map[string]any{
		"id":          b.ID,
		"name":        b.Name,
		"slug":        b.Slug,
		"description": b.Description,
		"careers":     b.Careers,
		"photo":       b.Photo,
		"createdAt":   b.CreatedAt.Format(time.RFC3339Nano),
	}
	if b.Location != nil {
		doc["city"] = b.Location.City
		doc["state"] = b.Location.State
	}
	if b.AverageCost != nil {
		doc["averageCost"] = *b.AverageCost
	}
	if b.AverageRating != nil {
		doc["averageRating"] = *b.AverageRating
	}
	return doc
}

// Put indexes b, logging failures.
func (i *BootcampIndex) Put(ctx context.Context, b *entity.Bootcamp) {
	if !i.enabled() {
		return
	}
	body, _ := json.Marshal(document(b))
	req := esapi.IndexRequest{Index: i.Index, DocumentID: b.ID, Body: bytes.NewReader(body), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, i.ES)
	if err != nil {
		i.warn(err, b.ID, "es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && i.Logger != nil {
		i.Logger.WithField("status", res.Status()).WithField("bootcamp_id", b.ID).Warn("es index response error")
	}
}

// Remove drops the document for id, logging failures.
func (i *BootcampIndex) Remove(ctx context.Context, id string) {
	if !i.enabled() {
		return
	}
	req := esapi.DeleteRequest{Index: i.Index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, i.ES)
	if err != nil {
		i.warn(err, id, "es delete failed")
		return
	}
	_ = res.Body.Close()
}

// Search runs a multi_match over name, description and careers.
func (i *BootcampIndex) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if !i.enabled() {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	body, _ := json.Marshal(map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^3", "description", "careers", "city"},
			},
		},
		"size": size,
	})

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := i.ES.Search(
		i.ES.Search.WithContext(c),
		i.ES.Search.WithIndex(i.Index),
		i.ES.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (i *BootcampIndex) warn(err error, id, msg string) {
	if i.Logger != nil {
		i.Logger.WithError(err).WithField("bootcamp_id", id).Warn(msg)
	}
}
