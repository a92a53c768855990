package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driven"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driven/mocks"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driving"
	"github.com/lexiqa-labs/lexiqa-core/internal/runtime"
)

type settingsEnv struct {
	store    *mocks.MockSettingsStore
	factory  *mocks.MockAIServiceFactory
	services *runtime.Services
	svc      driving.SettingsService
}

func newSettingsEnv() *settingsEnv {
	env := &settingsEnv{
		store:    mocks.NewMockSettingsStore(),
		factory:  mocks.NewMockAIServiceFactory(),
		services: runtime.NewServices(domain.NewRuntimeConfig("memory")),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env.svc = NewSettingsService(env.store, env.factory, env.services, logger)
	return env
}

func TestSettingsService_GetRetrievalSettings_Defaults(t *testing.T) {
	env := newSettingsEnv()

	settings, err := env.svc.GetRetrievalSettings(context.Background())
	require.NoError(t, err)

	defaults := domain.DefaultRetrievalSettings()
	assert.Equal(t, defaults.TopK, settings.TopK)
	assert.Equal(t, domain.ConfidenceStrategyEnsemble, settings.ConfidenceStrategy)
}

func TestSettingsService_UpdateRetrievalSettings_Partial(t *testing.T) {
	env := newSettingsEnv()

	topK := 5
	strategy := domain.ConfidenceStrategyBayesian
	updated, err := env.svc.UpdateRetrievalSettings(context.Background(), driving.UpdateRetrievalSettingsRequest{
		TopK:               &topK,
		ConfidenceStrategy: &strategy,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.TopK)
	assert.Equal(t, domain.ConfidenceStrategyBayesian, updated.ConfidenceStrategy)
	// Untouched fields keep their defaults
	assert.Equal(t, domain.DefaultRetrievalSettings().ChunkTargetSize, updated.ChunkTargetSize)

	// The update persists
	persisted, err := env.svc.GetRetrievalSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, persisted.TopK)
}

func TestSettingsService_UpdateRetrievalSettings_Invalid(t *testing.T) {
	env := newSettingsEnv()

	bad := -1
	_, err := env.svc.UpdateRetrievalSettings(context.Background(), driving.UpdateRetrievalSettingsRequest{TopK: &bad})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// Nothing was persisted
	settings, err := env.svc.GetRetrievalSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRetrievalSettings().TopK, settings.TopK, "invalid update must not persist")
}

func TestSettingsService_UpdateAISettings_EnablesEmbedding(t *testing.T) {
	env := newSettingsEnv()

	status, err := env.svc.UpdateAISettings(context.Background(), driving.UpdateAISettingsRequest{
		Embedding: &driving.EmbeddingSettingsInput{
			Provider: domain.AIProviderOpenAI,
			Model:    "text-embedding-3-small",
			APIKey:   "sk-test",
		},
	})
	require.NoError(t, err)
	require.True(t, status.Embedding.Available)
	assert.Equal(t, domain.RetrievalModeHybrid, status.EffectiveRetrievalMode)
	assert.NotNil(t, env.services.EmbeddingService(), "embedding service should be hot-loaded")
	assert.Equal(t, 1, env.factory.CreateEmbeddingCalls)
}

func TestSettingsService_UpdateAISettings_ValidationFailureKeepsServiceOff(t *testing.T) {
	env := newSettingsEnv()
	env.factory.CreateEmbeddingFn = func(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
		svc := mocks.NewMockEmbeddingService()
		svc.SetFailing(true) // health check will fail
		return svc, nil
	}

	status, err := env.svc.UpdateAISettings(context.Background(), driving.UpdateAISettingsRequest{
		Embedding: &driving.EmbeddingSettingsInput{
			Provider: domain.AIProviderOpenAI,
			Model:    "text-embedding-3-small",
			APIKey:   "sk-test",
		},
	})
	require.NoError(t, err, "a failing backend is reported, not an error")
	assert.False(t, status.Embedding.Available)
	assert.Nil(t, env.services.EmbeddingService(), "a service that failed validation must not be installed")
	assert.Equal(t, domain.RetrievalModeLexicalOnly, status.EffectiveRetrievalMode)
}

func TestSettingsService_UpdateAISettings_DisablesEmbedding(t *testing.T) {
	env := newSettingsEnv()
	env.services.SetEmbeddingService(mocks.NewMockEmbeddingService())

	status, err := env.svc.UpdateAISettings(context.Background(), driving.UpdateAISettingsRequest{
		Embedding: &driving.EmbeddingSettingsInput{}, // empty provider clears the service
	})
	require.NoError(t, err)
	assert.False(t, status.Embedding.Available)
	assert.Nil(t, env.services.EmbeddingService(), "embedding service should be cleared")
}

func TestSettingsService_UpdateAISettings_InvalidProvider(t *testing.T) {
	env := newSettingsEnv()

	_, err := env.svc.UpdateAISettings(context.Background(), driving.UpdateAISettingsRequest{
		Embedding: &driving.EmbeddingSettingsInput{
			Provider: "skynet",
			APIKey:   "key",
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidProvider)
}

func TestSettingsService_UpdateAISettings_EnablesReranker(t *testing.T) {
	env := newSettingsEnv()

	status, err := env.svc.UpdateAISettings(context.Background(), driving.UpdateAISettingsRequest{
		Reranker: &driving.RerankerSettingsInput{
			Endpoint: "http://localhost:8081/rerank",
			Model:    "cross-encoder-v2",
		},
	})
	require.NoError(t, err)
	assert.True(t, status.Reranker.Available)
	assert.NotNil(t, env.services.Reranker(), "reranker should be hot-loaded")
}

func TestSettingsService_GetAIStatus(t *testing.T) {
	env := newSettingsEnv()

	status, err := env.svc.GetAIStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, status.Embedding.Available)
	assert.False(t, status.Reranker.Available)
	assert.Equal(t, domain.RetrievalModeLexicalOnly, status.EffectiveRetrievalMode)

	env.services.SetEmbeddingService(mocks.NewMockEmbeddingService())

	status, err = env.svc.GetAIStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Embedding.Available)
	assert.Equal(t, 384, status.Embedding.EmbeddingDim)
	assert.Equal(t, domain.RetrievalModeHybrid, status.EffectiveRetrievalMode)
}

func TestSettingsService_TestConnection(t *testing.T) {
	env := newSettingsEnv()

	// No services configured is a passing test
	require.NoError(t, env.svc.TestConnection(context.Background()))

	failing := mocks.NewMockEmbeddingService()
	failing.SetFailing(true)
	env.services.SetEmbeddingService(failing)

	assert.Error(t, env.svc.TestConnection(context.Background()))
}
