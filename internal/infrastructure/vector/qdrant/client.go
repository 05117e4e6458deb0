package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Navya123445/RAG-project/internal/core/domain"
)

// upsertBatchSize keeps individual upsert requests small enough for
// qdrant to ingest without timeouts on annotation-heavy chunks.
const upsertBatchSize = 25

type Client struct {
	baseURL    string
	collection string
	httpClient *http.Client
	limiter    *rate.Limiter

	ensureMu          sync.Mutex
	ensuredCollection bool
	ensuredVectorSize int
}

func New(baseURL, collection string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		collection: collection,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		// Pace batch upserts so bulk re-indexing cannot starve search.
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
	}
}

type point struct {
	ID      string         `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload"`
}

// IndexChunks upserts one page's chunks with their binding metadata.
// The payload is flat: scalars plus one JSON-encoded string for the
// color entity list, so every field stays filterable.
func (c *Client) IndexChunks(
	ctx context.Context,
	doc *domain.Document,
	page domain.RawPage,
	chunks []string,
	bindings []domain.ChunkBinding,
	vectors [][]float32,
) error {
	if len(chunks) == 0 || len(vectors) == 0 {
		return nil
	}
	if len(chunks) != len(vectors) || len(chunks) != len(bindings) {
		return fmt.Errorf("chunks/bindings/vectors mismatch: %d/%d/%d", len(chunks), len(bindings), len(vectors))
	}

	if err := c.ensureCollection(ctx, len(vectors[0])); err != nil {
		return err
	}

	points := make([]point, 0, len(chunks))
	for i := range chunks {
		payload, err := chunkPayload(doc, page, chunks[i], bindings[i])
		if err != nil {
			return err
		}
		points = append(points, point{
			ID:      bindings[i].ChunkID,
			Vector:  vectors[i],
			Payload: payload,
		})
	}

	for start := 0; start < len(points); start += upsertBatchSize {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
		end := start + upsertBatchSize
		if end > len(points) {
			end = len(points)
		}
		if err := c.upsert(ctx, points[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func chunkPayload(doc *domain.Document, page domain.RawPage, chunk string, binding domain.ChunkBinding) (map[string]any, error) {
	entitiesJSON := "[]"
	if len(binding.ColorEntities) > 0 {
		raw, err := json.Marshal(binding.ColorEntities)
		if err != nil {
			return nil, fmt.Errorf("marshal chunk color entities: %w", err)
		}
		entitiesJSON = string(raw)
	}

	return map[string]any{
		"doc_id":            doc.ID,
		"filename":          doc.Filename,
		"extraction_method": page.ExtractionMethod,
		"page":              page.PageNumber,
		"chunk_index":       binding.ChunkIndex,
		"chunk_size":        binding.ChunkSize,
		"text":              chunk,

		"color_entity_count":    binding.ColorEntityCount,
		"chunk_color_entities":  entitiesJSON,
		"has_color_amounts":     binding.HasColorAmounts,
		"has_color_parties":     binding.HasColorParties,
		"has_color_dates":       binding.HasColorDates,
		"has_color_percentages": binding.HasColorPercentages,
		"has_color_qualifiers":  binding.HasColorQualifiers,
		"has_color_crossrefs":   binding.HasColorCrossRefs,

		"contains_financial_info": binding.ContainsFinancialInfo,
		"contains_party_info":     binding.ContainsPartyInfo,
		"contains_legal_refs":     binding.ContainsLegalRefs,

		"has_annotations":       binding.HasAnnotations,
		"annotation_confidence": binding.AnnotationConfidence,
		"financial_confidence":  binding.FinancialConfidence,
		"entity_confidence":     binding.EntityConfidence,
		"high_quality_chunk":    binding.HighQuality,
		"relevance_score":       binding.RelevanceScore,
	}, nil
}

func (c *Client) upsert(ctx context.Context, points []point) error {
	body, err := json.Marshal(map[string]any{"points": points})
	if err != nil {
		return fmt.Errorf("marshal upsert body: %w", err)
	}

	url := fmt.Sprintf("%s/collections/%s/points?wait=true", c.baseURL, c.collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create upsert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant upsert request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant upsert status: %s", resp.Status)
	}
	return nil
}

func (c *Client) Search(
	ctx context.Context,
	queryVector []float32,
	limit int,
	filter domain.SearchFilter,
) ([]domain.RetrievedChunk, error) {
	reqBody := map[string]any{
		"vector":       queryVector,
		"limit":        limit,
		"with_payload": true,
	}
	if must := buildMustClauses(filter); len(must) > 0 {
		reqBody["filter"] = map[string]any{"must": must}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal search body: %w", err)
	}

	url := fmt.Sprintf("%s/collections/%s/points/search", c.baseURL, c.collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("qdrant search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("qdrant search status: %s", resp.Status)
	}

	var searchResp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]domain.RetrievedChunk, 0, len(searchResp.Result))
	for _, r := range searchResp.Result {
		out = append(out, domain.RetrievedChunk{
			DocumentID:           getStringPayload(r.Payload, "doc_id"),
			Filename:             getStringPayload(r.Payload, "filename"),
			ChunkIndex:           getIntPayload(r.Payload, "chunk_index"),
			Page:                 getIntPayload(r.Payload, "page"),
			Text:                 getStringPayload(r.Payload, "text"),
			Score:                r.Score,
			AnnotationConfidence: getFloatPayload(r.Payload, "annotation_confidence"),
			FinancialConfidence:  getFloatPayload(r.Payload, "financial_confidence"),
			ColorEntityCount:     getIntPayload(r.Payload, "color_entity_count"),
			HighQuality:          getBoolPayload(r.Payload, "high_quality_chunk"),
			ColorEntitiesJSON:    getStringPayload(r.Payload, "chunk_color_entities"),
		})
	}
	return out, nil
}

func buildMustClauses(filter domain.SearchFilter) []map[string]any {
	var must []map[string]any
	matchBool := func(key string) {
		must = append(must, map[string]any{
			"key":   key,
			"match": map[string]any{"value": true},
		})
	}

	if filter.Filename != "" {
		must = append(must, map[string]any{
			"key":   "filename",
			"match": map[string]any{"value": filter.Filename},
		})
	}
	if filter.RequireColorAmounts {
		matchBool("has_color_amounts")
	}
	if filter.RequireColorParties {
		matchBool("has_color_parties")
	}
	if filter.RequireColorDates {
		matchBool("has_color_dates")
	}
	if filter.RequireColorPercent {
		matchBool("has_color_percentages")
	}
	if filter.RequireHighQuality {
		matchBool("high_quality_chunk")
	}
	if filter.MinRelevance > 0 {
		must = append(must, map[string]any{
			"key":   "relevance_score",
			"range": map[string]any{"gte": filter.MinRelevance},
		})
	}
	return must
}

func (c *Client) ensureCollection(ctx context.Context, vectorSize int) error {
	c.ensureMu.Lock()
	if c.ensuredCollection && c.ensuredVectorSize == vectorSize {
		c.ensureMu.Unlock()
		return nil
	}
	c.ensureMu.Unlock()

	reqBody := map[string]any{
		"vectors": map[string]any{
			"size":     vectorSize,
			"distance": "Cosine",
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal create collection body: %w", err)
	}

	url := fmt.Sprintf("%s/collections/%s", c.baseURL, c.collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create collection request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant ensure collection request: %w", err)
	}
	defer resp.Body.Close()

	// 200/201 for create, 409 if already exists (depends on version/config).
	if resp.StatusCode == http.StatusConflict {
		c.markCollectionEnsured(vectorSize)
		return nil
	}
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		if msg := strings.TrimSpace(string(body)); msg != "" {
			return fmt.Errorf("qdrant ensure collection status: %s: %s", resp.Status, msg)
		}
		return fmt.Errorf("qdrant ensure collection status: %s", resp.Status)
	}
	c.markCollectionEnsured(vectorSize)
	return nil
}

func (c *Client) markCollectionEnsured(vectorSize int) {
	c.ensureMu.Lock()
	defer c.ensureMu.Unlock()
	c.ensuredCollection = true
	c.ensuredVectorSize = vectorSize
}

func getStringPayload(payload map[string]any, key string) string {
	v, ok := payload[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func getFloatPayload(payload map[string]any, key string) float64 {
	if v, ok := payload[key].(float64); ok {
		return v
	}
	return 0
}

func getIntPayload(payload map[string]any, key string) int {
	if v, ok := payload[key].(float64); ok {
		return int(v)
	}
	return 0
}

func getBoolPayload(payload map[string]any, key string) bool {
	if v, ok := payload[key].(bool); ok {
		return v
	}
	return false
}
