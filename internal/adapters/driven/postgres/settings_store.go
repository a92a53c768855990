package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SettingsStore = (*SettingsStore)(nil)

// Settings are deployment-wide, so both tables hold a single row
// pinned to this key.
const settingsRowID = 1

// SettingsStore implements driven.SettingsStore using PostgreSQL.
// When an encryptor is provided, AI API keys are sealed before being
// written and opened on read; with a nil encryptor they are stored as-is.
type SettingsStore struct {
	db        *DB
	encryptor *SecretEncryptor
}

// NewSettingsStore creates a new SettingsStore
func NewSettingsStore(db *DB, encryptor *SecretEncryptor) *SettingsStore {
	return &SettingsStore{db: db, encryptor: encryptor}
}

func (s *SettingsStore) sealSecret(secret string) (string, error) {
	if s.encryptor == nil {
		return secret, nil
	}
	return s.encryptor.Seal(secret)
}

func (s *SettingsStore) openSecret(sealed string) (string, error) {
	if s.encryptor == nil {
		return sealed, nil
	}
	return s.encryptor.Open(sealed)
}

// GetRetrievalSettings retrieves the retrieval tuning parameters.
// Returns domain.ErrNotFound if none were ever saved; callers fall back
// to the built-in defaults.
func (s *SettingsStore) GetRetrievalSettings(ctx context.Context) (*domain.RetrievalSettings, error) {
	query := `
		SELECT chunk_target_size, chunk_overlap, dense_weight, lexical_weight,
			   top_k, rerank_enabled, relevance_threshold, max_citations,
			   confidence_strategy, updated_at
		FROM retrieval_settings
		WHERE id = $1
	`

	var settings domain.RetrievalSettings
	var strategy string

	err := s.db.QueryRowContext(ctx, query, settingsRowID).Scan(
		&settings.ChunkTargetSize,
		&settings.ChunkOverlap,
		&settings.DenseWeight,
		&settings.LexicalWeight,
		&settings.TopK,
		&settings.RerankEnabled,
		&settings.RelevanceThreshold,
		&settings.MaxCitations,
		&strategy,
		&settings.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	settings.ConfidenceStrategy = domain.ConfidenceStrategy(strategy)

	return &settings, nil
}

// SaveRetrievalSettings persists retrieval tuning parameters
func (s *SettingsStore) SaveRetrievalSettings(ctx context.Context, settings *domain.RetrievalSettings) error {
	query := `
		INSERT INTO retrieval_settings (id, chunk_target_size, chunk_overlap, dense_weight, lexical_weight,
										top_k, rerank_enabled, relevance_threshold, max_citations,
										confidence_strategy, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			chunk_target_size = EXCLUDED.chunk_target_size,
			chunk_overlap = EXCLUDED.chunk_overlap,
			dense_weight = EXCLUDED.dense_weight,
			lexical_weight = EXCLUDED.lexical_weight,
			top_k = EXCLUDED.top_k,
			rerank_enabled = EXCLUDED.rerank_enabled,
			relevance_threshold = EXCLUDED.relevance_threshold,
			max_citations = EXCLUDED.max_citations,
			confidence_strategy = EXCLUDED.confidence_strategy,
			updated_at = EXCLUDED.updated_at
	`

	settings.UpdatedAt = time.Now()

	_, err := s.db.ExecContext(ctx, query,
		settingsRowID,
		settings.ChunkTargetSize,
		settings.ChunkOverlap,
		settings.DenseWeight,
		settings.LexicalWeight,
		settings.TopK,
		settings.RerankEnabled,
		settings.RelevanceThreshold,
		settings.MaxCitations,
		string(settings.ConfidenceStrategy),
		settings.UpdatedAt,
	)
	return err
}

// GetAISettings retrieves the AI service configuration
func (s *SettingsStore) GetAISettings(ctx context.Context) (*domain.AISettings, error) {
	query := `
		SELECT embedding_provider, embedding_model, embedding_api_key, embedding_base_url,
			   reranker_endpoint, reranker_model, reranker_api_key, updated_at
		FROM ai_settings
		WHERE id = $1
	`

	var settings domain.AISettings
	var embProvider, embModel, embAPIKey, embBaseURL sql.NullString
	var rrEndpoint, rrModel, rrAPIKey sql.NullString

	err := s.db.QueryRowContext(ctx, query, settingsRowID).Scan(
		&embProvider,
		&embModel,
		&embAPIKey,
		&embBaseURL,
		&rrEndpoint,
		&rrModel,
		&rrAPIKey,
		&settings.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		// Empty settings mean no AI services are configured
		return &domain.AISettings{}, nil
	}
	if err != nil {
		return nil, err
	}

	embKey, err := s.openSecret(embAPIKey.String)
	if err != nil {
		return nil, err
	}
	rrKey, err := s.openSecret(rrAPIKey.String)
	if err != nil {
		return nil, err
	}

	settings.Embedding.Provider = domain.AIProvider(embProvider.String)
	settings.Embedding.Model = embModel.String
	settings.Embedding.APIKey = embKey
	settings.Embedding.BaseURL = embBaseURL.String

	settings.Reranker.Endpoint = rrEndpoint.String
	settings.Reranker.Model = rrModel.String
	settings.Reranker.APIKey = rrKey

	return &settings, nil
}

// SaveAISettings persists the AI service configuration
func (s *SettingsStore) SaveAISettings(ctx context.Context, settings *domain.AISettings) error {
	query := `
		INSERT INTO ai_settings (id, embedding_provider, embedding_model, embedding_api_key, embedding_base_url,
								 reranker_endpoint, reranker_model, reranker_api_key, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			embedding_provider = EXCLUDED.embedding_provider,
			embedding_model = EXCLUDED.embedding_model,
			embedding_api_key = EXCLUDED.embedding_api_key,
			embedding_base_url = EXCLUDED.embedding_base_url,
			reranker_endpoint = EXCLUDED.reranker_endpoint,
			reranker_model = EXCLUDED.reranker_model,
			reranker_api_key = EXCLUDED.reranker_api_key,
			updated_at = EXCLUDED.updated_at
	`

	embKey, err := s.sealSecret(settings.Embedding.APIKey)
	if err != nil {
		return err
	}
	rrKey, err := s.sealSecret(settings.Reranker.APIKey)
	if err != nil {
		return err
	}

	settings.UpdatedAt = time.Now()

	_, err = s.db.ExecContext(ctx, query,
		settingsRowID,
		string(settings.Embedding.Provider),
		settings.Embedding.Model,
		embKey,
		settings.Embedding.BaseURL,
		settings.Reranker.Endpoint,
		settings.Reranker.Model,
		rrKey,
		settings.UpdatedAt,
	)
	return err
}
