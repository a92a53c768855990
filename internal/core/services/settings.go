package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driven"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driving"
	"github.com/lexiqa-labs/lexiqa-core/internal/runtime"
)

// Ensure settingsService implements SettingsService
var _ driving.SettingsService = (*settingsService)(nil)

// settingsService implements the SettingsService interface
type settingsService struct {
	settingsStore driven.SettingsStore
	aiFactory     driven.AIServiceFactory
	services      *runtime.Services
	logger        *slog.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(
	settingsStore driven.SettingsStore,
	aiFactory driven.AIServiceFactory,
	services *runtime.Services,
	logger *slog.Logger,
) driving.SettingsService {
	return &settingsService{
		settingsStore: settingsStore,
		aiFactory:     aiFactory,
		services:      services,
		logger:        logger,
	}
}

// GetRetrievalSettings retrieves the effective retrieval settings
func (s *settingsService) GetRetrievalSettings(ctx context.Context) (*domain.RetrievalSettings, error) {
	settings, err := s.settingsStore.GetRetrievalSettings(ctx)
	if err != nil {
		// No saved settings yet, the defaults are the effective settings
		return domain.DefaultRetrievalSettings(), nil
	}
	return settings, nil
}

// UpdateRetrievalSettings applies a partial update
func (s *settingsService) UpdateRetrievalSettings(ctx context.Context, req driving.UpdateRetrievalSettingsRequest) (*domain.RetrievalSettings, error) {
	settings, err := s.settingsStore.GetRetrievalSettings(ctx)
	if err != nil {
		settings = domain.DefaultRetrievalSettings()
	}

	if req.ChunkTargetSize != nil {
		settings.ChunkTargetSize = *req.ChunkTargetSize
	}
	if req.ChunkOverlap != nil {
		settings.ChunkOverlap = *req.ChunkOverlap
	}
	if req.DenseWeight != nil {
		settings.DenseWeight = *req.DenseWeight
	}
	if req.LexicalWeight != nil {
		settings.LexicalWeight = *req.LexicalWeight
	}
	if req.TopK != nil {
		settings.TopK = *req.TopK
	}
	if req.RerankEnabled != nil {
		settings.RerankEnabled = *req.RerankEnabled
	}
	if req.RelevanceThreshold != nil {
		settings.RelevanceThreshold = *req.RelevanceThreshold
	}
	if req.MaxCitations != nil {
		settings.MaxCitations = *req.MaxCitations
	}
	if req.ConfidenceStrategy != nil {
		settings.ConfidenceStrategy = *req.ConfidenceStrategy
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	settings.UpdatedAt = time.Now().UTC()

	if err := s.settingsStore.SaveRetrievalSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("save retrieval settings: %w", err)
	}

	return settings, nil
}

// GetAISettings retrieves the current AI configuration
func (s *settingsService) GetAISettings(ctx context.Context) (*domain.AISettings, error) {
	return s.settingsStore.GetAISettings(ctx)
}

// UpdateAISettings updates AI configuration and hot-reloads services
func (s *settingsService) UpdateAISettings(ctx context.Context, req driving.UpdateAISettingsRequest) (*driving.AISettingsStatus, error) {
	aiSettings, err := s.settingsStore.GetAISettings(ctx)
	if err != nil {
		aiSettings = &domain.AISettings{}
	}

	if req.Embedding != nil {
		aiSettings.Embedding = domain.EmbeddingSettings{
			Provider: req.Embedding.Provider,
			Model:    req.Embedding.Model,
			APIKey:   req.Embedding.APIKey,
			BaseURL:  req.Embedding.BaseURL,
		}
	}

	if req.Reranker != nil {
		aiSettings.Reranker = domain.RerankerSettings{
			Endpoint: req.Reranker.Endpoint,
			Model:    req.Reranker.Model,
			APIKey:   req.Reranker.APIKey,
		}
	}

	if err := aiSettings.Validate(); err != nil {
		return nil, err
	}

	aiSettings.UpdatedAt = time.Now().UTC()

	if err := s.settingsStore.SaveAISettings(ctx, aiSettings); err != nil {
		return nil, fmt.Errorf("save ai settings: %w", err)
	}

	status := &driving.AISettingsStatus{}

	if aiSettings.Embedding.IsConfigured() {
		status.Embedding = s.reloadEmbedding(ctx, aiSettings)
	} else {
		// Explicitly disable
		s.services.SetEmbeddingService(nil)
		status.Embedding = driving.AIServiceStatus{Available: false}
	}

	if aiSettings.Reranker.IsConfigured() {
		status.Reranker = s.reloadReranker(ctx, aiSettings)
	} else {
		s.services.SetReranker(nil)
		status.Reranker = driving.AIServiceStatus{Available: false}
	}

	status.EffectiveRetrievalMode = s.services.Config().EffectiveRetrievalMode()

	return status, nil
}

// GetAIStatus returns the current status of AI services
func (s *settingsService) GetAIStatus(ctx context.Context) (*driving.AISettingsStatus, error) {
	aiSettings, _ := s.settingsStore.GetAISettings(ctx)

	status := &driving.AISettingsStatus{
		EffectiveRetrievalMode: s.services.Config().EffectiveRetrievalMode(),
	}

	if embSvc := s.services.EmbeddingService(); embSvc != nil {
		status.Embedding = driving.AIServiceStatus{
			Available:    true,
			Model:        embSvc.Model(),
			EmbeddingDim: embSvc.Dimensions(),
		}
		if aiSettings != nil {
			status.Embedding.Provider = aiSettings.Embedding.Provider
		}
	}

	if reranker := s.services.Reranker(); reranker != nil {
		status.Reranker = driving.AIServiceStatus{
			Available: true,
			Model:     reranker.Model(),
		}
	}

	return status, nil
}

// TestConnection tests the configured AI services
func (s *settingsService) TestConnection(ctx context.Context) error {
	if embSvc := s.services.EmbeddingService(); embSvc != nil {
		if err := embSvc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding service: %w", err)
		}
	}

	if reranker := s.services.Reranker(); reranker != nil {
		if err := reranker.HealthCheck(ctx); err != nil {
			return fmt.Errorf("reranker: %w", err)
		}
	}

	return nil
}

func (s *settingsService) reloadEmbedding(ctx context.Context, aiSettings *domain.AISettings) driving.AIServiceStatus {
	embSvc, err := s.aiFactory.CreateEmbeddingService(&aiSettings.Embedding)
	if err != nil {
		s.logger.Warn("failed to create embedding service",
			"provider", aiSettings.Embedding.Provider, "error", err)
		return driving.AIServiceStatus{Available: false}
	}
	if err := s.services.ValidateAndSetEmbedding(ctx, embSvc); err != nil {
		s.logger.Warn("embedding service failed validation",
			"provider", aiSettings.Embedding.Provider, "error", err)
		return driving.AIServiceStatus{Available: false}
	}
	return driving.AIServiceStatus{
		Available:    true,
		Provider:     aiSettings.Embedding.Provider,
		Model:        aiSettings.Embedding.Model,
		EmbeddingDim: embSvc.Dimensions(),
	}
}

func (s *settingsService) reloadReranker(ctx context.Context, aiSettings *domain.AISettings) driving.AIServiceStatus {
	reranker, err := s.aiFactory.CreateReranker(&aiSettings.Reranker)
	if err != nil {
		s.logger.Warn("failed to create reranker",
			"endpoint", aiSettings.Reranker.Endpoint, "error", err)
		return driving.AIServiceStatus{Available: false}
	}
	if err := s.services.ValidateAndSetReranker(ctx, reranker); err != nil {
		s.logger.Warn("reranker failed validation",
			"endpoint", aiSettings.Reranker.Endpoint, "error", err)
		return driving.AIServiceStatus{Available: false}
	}
	return driving.AIServiceStatus{
		Available: true,
		Model:     aiSettings.Reranker.Model,
	}
}
