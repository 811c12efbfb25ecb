package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"selta_back_end/internal/models"
)

const productIndex = "products"

// IndexProduct upserts a product document. Best-effort: failures are logged,
// never propagated, so catalog writes don't depend on the search cluster.
func IndexProduct(es *elasticsearch.Client, p models.Product) {
	if es == nil {
		return
	}

	data, err := json.Marshal(p)
	if err != nil {
		log.Println("❌ Elastic marshal error:", err)
		return
	}

	req := esapi.IndexRequest{
		Index:      productIndex,
		DocumentID: strconv.FormatUint(uint64(p.ID), 10),
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}
	res, err := req.Do(context.Background(), es)
	if err != nil {
		log.Println("❌ Elastic index error:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic rejected product %d: %s", p.ID, res.String())
	}
}

// RemoveProduct deletes a product document after catalog deletion.
func RemoveProduct(es *elasticsearch.Client, productID uint) {
	if es == nil {
		return
	}

	req := esapi.DeleteRequest{
		Index:      productIndex,
		DocumentID: strconv.FormatUint(uint64(productID), 10),
	}
	res, err := req.Do(context.Background(), es)
	if err != nil {
		log.Println("❌ Elastic delete error:", err)
		return
	}
	res.Body.Close()
}

// SearchProducts runs a multi_match over the product fields and returns the
// matching documents.
func SearchProducts(es *elasticsearch.Client, query string) ([]models.Product, error) {
	if es == nil {
		return nil, errors.New("search is not configured")
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"name", "brand", "description", "category"},
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{productIndex},
		Body:  &buf,
	}
	res, err := req.Do(context.Background(), es)
	if err != nil {
		return nil, fmt.Errorf("elastic search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elastic search failed: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	products := make([]models.Product, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		products = append(products, hit.Source)
	}
	return products, nil
}
