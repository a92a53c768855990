package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lexiqa-labs/lexiqa-core/internal/confidence"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driven"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driving"
	"github.com/lexiqa-labs/lexiqa-core/internal/index"
	"github.com/lexiqa-labs/lexiqa-core/internal/recommend"
	"github.com/lexiqa-labs/lexiqa-core/internal/retriever"
	"github.com/lexiqa-labs/lexiqa-core/internal/runtime"
	"github.com/lexiqa-labs/lexiqa-core/internal/synthesizer"
)

// answerCacheTTL bounds how long ask results are memoized.
// Rebuilds invalidate eagerly, the TTL only guards forgotten entries.
const answerCacheTTL = time.Hour

// Ensure qaService implements QAService
var _ driving.QAService = (*qaService)(nil)

// qaService implements the question answering pipeline
type qaService struct {
	documentStore driven.DocumentStore
	indexStore    driven.IndexStore
	settingsStore driven.SettingsStore
	cache         driven.AnswerCache
	registry      *index.Registry
	services      *runtime.Services // Dynamic AI services
	recommender   *recommend.Engine
	logger        *slog.Logger
}

// NewQAService creates a new QAService.
// AI services (embedding, reranker) are accessed dynamically via runtime.Services.
func NewQAService(
	documentStore driven.DocumentStore,
	indexStore driven.IndexStore,
	settingsStore driven.SettingsStore,
	cache driven.AnswerCache,
	registry *index.Registry,
	services *runtime.Services,
	logger *slog.Logger,
) driving.QAService {
	return &qaService{
		documentStore: documentStore,
		indexStore:    indexStore,
		settingsStore: settingsStore,
		cache:         cache,
		registry:      registry,
		services:      services,
		recommender:   recommend.NewEngine(),
		logger:        logger,
	}
}

// Ask runs the full pipeline: analyze, retrieve, synthesize, score, recommend.
// Content absence is a successful non-grounded result, never an error.
func (s *qaService) Ask(ctx context.Context, documentID, question string, opts driving.AskOptions) (*domain.AskResult, error) {
	start := time.Now()

	q, err := synthesizer.AnalyzeQuestion(question)
	if err != nil {
		return nil, err
	}

	if _, err := s.documentStore.Get(ctx, documentID); err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	if !opts.SkipCache && s.cache != nil {
		if cached, err := s.cache.Get(ctx, documentID, q.Normalized); err != nil {
			s.logger.Warn("answer cache read failed", "document_id", documentID, "error", err)
		} else if cached != nil {
			cached.Cached = true
			cached.Took = time.Since(start)
			return cached, nil
		}
	}

	settings := s.retrievalSettings(ctx)

	ix, err := s.loadIndex(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	retrieval, err := s.retrieve(ctx, ix, q, settings, opts)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	answer := synthesizer.New(synthesizer.Config{
		RelevanceThreshold: settings.RelevanceThreshold,
		MaxCitations:       settings.MaxCitations,
	}).Synthesize(q, retrieval)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	analyzer := confidence.NewAnalyzer(confidence.ForStrategy(settings.ConfidenceStrategy))
	conf := analyzer.Analyze(buildSignals(q, retrieval, answer, settings.RelevanceThreshold))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	recommendations, err := s.recommendations(ctx, documentID, q)
	if err != nil {
		// Recommendations are best-effort; the answer is still valid
		s.logger.Warn("recommendation pass failed", "document_id", documentID, "error", err)
		recommendations = []*domain.Recommendation{}
	}

	result := &domain.AskResult{
		DocumentID:      documentID,
		Question:        q,
		Answer:          answer,
		Confidence:      conf,
		Recommendations: recommendations,
		Retrieval:       retrieval,
		Took:            time.Since(start),
	}

	if !opts.SkipCache && s.cache != nil {
		if err := s.cache.Set(ctx, documentID, q.Normalized, result, answerCacheTTL); err != nil {
			s.logger.Warn("answer cache write failed", "document_id", documentID, "error", err)
		}
	}

	return result, nil
}

// RedFlags scans the document text for risky clause patterns
func (s *qaService) RedFlags(ctx context.Context, documentID string) ([]*domain.RedFlag, error) {
	content, err := s.documentStore.GetContent(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("get document content: %w", err)
	}
	return recommend.DetectRedFlags(content), nil
}

// loadIndex returns the published index, restoring it from its snapshot
// after a restart. A document with no snapshot has not been indexed.
func (s *qaService) loadIndex(ctx context.Context, documentID string) (*index.Index, error) {
	if ix, ok := s.registry.Get(documentID); ok {
		return ix, nil
	}

	snap, err := s.indexStore.LoadSnapshot(ctx, documentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrIndexNotReady
		}
		return nil, fmt.Errorf("load index snapshot: %w", err)
	}

	ix, err := index.FromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("restore index snapshot: %w", err)
	}
	s.registry.Publish(ix)
	s.logger.Info("index restored from snapshot", "document_id", documentID, "chunks", len(snap.Chunks))
	return ix, nil
}

// retrieve embeds the question when possible and runs hybrid retrieval,
// degrading to lexical-only when the embedding backend is missing or down.
func (s *qaService) retrieve(ctx context.Context, ix *index.Index, q *domain.Question, settings *domain.RetrievalSettings, opts driving.AskOptions) (*domain.Retrieval, error) {
	var queryVec []float32
	if embeddingService := s.services.EmbeddingService(); embeddingService != nil {
		vec, err := embeddingService.EmbedQuery(ctx, q.Normalized)
		if err != nil {
			s.logger.Warn("query embedding failed, degrading to lexical retrieval",
				"error", err)
		} else {
			queryVec = vec
		}
	}

	var reranker driven.Reranker
	rerank := settings.RerankEnabled
	if opts.Rerank != nil {
		rerank = *opts.Rerank
	}
	if rerank {
		reranker = s.services.Reranker()
	}

	return retriever.Retrieve(ctx, retriever.Request{
		Index:         ix,
		Question:      q,
		QueryVec:      queryVec,
		TopK:          settings.TopK,
		DenseWeight:   settings.DenseWeight,
		LexicalWeight: settings.LexicalWeight,
		Reranker:      reranker,
	})
}

func (s *qaService) recommendations(ctx context.Context, documentID string, q *domain.Question) ([]*domain.Recommendation, error) {
	content, err := s.documentStore.GetContent(ctx, documentID)
	if err != nil {
		return nil, err
	}
	flags := recommend.DetectRedFlags(content)
	return s.recommender.Recommend(content.Text, q, flags), nil
}

func (s *qaService) retrievalSettings(ctx context.Context) *domain.RetrievalSettings {
	settings, err := s.settingsStore.GetRetrievalSettings(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("failed to load retrieval settings, using defaults", "error", err)
		}
		return domain.DefaultRetrievalSettings()
	}
	return settings
}

// buildSignals condenses the pipeline outputs into confidence inputs
func buildSignals(q *domain.Question, retrieval *domain.Retrieval, answer *domain.Answer, threshold float64) domain.ConfidenceSignals {
	signals := domain.ConfidenceSignals{
		Complexity:        q.Complexity,
		HasLegalTerms:     q.HasLegalTerms,
		AnswerLength:      len(answer.Text),
		CitationCount:     len(answer.Citations),
		Grounded:          answer.Grounded,
		RetrievalDegraded: retrieval.Degraded,
	}

	var sum float64
	for _, r := range retrieval.Results {
		score := r.Score()
		if score > signals.TopSimilarity {
			signals.TopSimilarity = score
		}
		sum += score
		if score >= threshold {
			signals.ResultCount++
		}
	}
	if len(retrieval.Results) > 0 {
		signals.AvgSimilarity = sum / float64(len(retrieval.Results))
	}

	pages := make(map[int]struct{}, len(answer.Citations))
	var citationSum float64
	for _, c := range answer.Citations {
		citationSum += c.RelevanceScore
		pages[c.PageNumber] = struct{}{}
	}
	if len(answer.Citations) > 0 {
		signals.AvgCitationScore = citationSum / float64(len(answer.Citations))
	}
	signals.DistinctPages = len(pages)

	if len(q.KeyTerms) > 0 {
		lower := strings.ToLower(answer.Text)
		hits := 0
		for _, term := range q.KeyTerms {
			if strings.Contains(lower, term) {
				hits++
			}
		}
		signals.KeywordOverlap = float64(hits) / float64(len(q.KeyTerms))
	}

	return signals
}
