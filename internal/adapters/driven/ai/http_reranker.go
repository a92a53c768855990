package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driven"
)

// Ensure HTTPReranker implements Reranker
var _ driven.Reranker = (*HTTPReranker)(nil)

// HTTPReranker scores query/passage pairs against a cross-encoder serving
// endpoint that speaks the common rerank API shape (Cohere, Jina, TEI).
type HTTPReranker struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
}

// NewHTTPReranker creates a new HTTP reranker client
func NewHTTPReranker(endpoint, model, apiKey string) (driven.Reranker, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("reranker endpoint is required")
	}

	return &HTTPReranker{
		endpoint: endpoint,
		model:    model,
		apiKey:   apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// rerankRequest is the request body for the rerank API
type rerankRequest struct {
	Model     string   `json:"model,omitempty"`
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
}

// rerankResponse is the response from the rerank API
type rerankResponse struct {
	Results []struct {
		Index          int     `json:"index"`
		RelevanceScore float64 `json:"relevance_score"`
	} `json:"results"`
	Error string `json:"error,omitempty"`
}

// Rerank scores every candidate against the question
func (r *HTTPReranker) Rerank(ctx context.Context, question *domain.Question, candidates []driven.RerankCandidate) ([]driven.RerankScore, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	documents := make([]string, len(candidates))
	for i, c := range candidates {
		documents[i] = c.Content
	}

	body, err := json.Marshal(rerankRequest{
		Model:     r.model,
		Query:     question.Normalized,
		Documents: documents,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", r.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var rrResp rerankResponse
	if err := json.Unmarshal(respBody, &rrResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if rrResp.Error != "" {
		return nil, fmt.Errorf("rerank API error: %s", rrResp.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: rerank API returned status %d", domain.ErrServiceUnavailable, resp.StatusCode)
	}

	scores := make([]driven.RerankScore, 0, len(rrResp.Results))
	for _, res := range rrResp.Results {
		if res.Index < 0 || res.Index >= len(candidates) {
			continue
		}
		scores = append(scores, driven.RerankScore{
			ChunkID: candidates[res.Index].ChunkID,
			Score:   res.RelevanceScore,
		})
	}
	return scores, nil
}

// Model returns the model name being used
func (r *HTTPReranker) Model() string {
	return r.model
}

// HealthCheck verifies the reranker endpoint is reachable
func (r *HTTPReranker) HealthCheck(ctx context.Context) error {
	q := &domain.Question{Normalized: "health check"}
	_, err := r.Rerank(ctx, q, []driven.RerankCandidate{{ChunkID: "probe", Content: "health check"}})
	return err
}

// Close releases resources held by the reranker
func (r *HTTPReranker) Close() error {
	r.client.CloseIdleConnections()
	return nil
}
