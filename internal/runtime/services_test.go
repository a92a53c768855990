package runtime

import (
	"context"
	"errors"
	"testing"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
	"github.com/lexiqa-labs/lexiqa-core/internal/core/ports/driven/mocks"
)

func TestServices_SetEmbeddingServiceUpdatesFlags(t *testing.T) {
	config := domain.NewRuntimeConfig("memory")
	services := NewServices(config)

	if config.EmbeddingAvailable() {
		t.Error("embedding should be unavailable before any service is set")
	}
	if services.EmbeddingService() != nil {
		t.Error("expected nil embedding service initially")
	}

	services.SetEmbeddingService(mocks.NewMockEmbeddingService())
	if !config.EmbeddingAvailable() {
		t.Error("embedding flag not raised")
	}
	if services.EmbeddingService() == nil {
		t.Error("embedding service not stored")
	}

	services.SetEmbeddingService(nil)
	if config.EmbeddingAvailable() {
		t.Error("embedding flag not cleared")
	}
}

func TestServices_SetRerankerUpdatesFlags(t *testing.T) {
	config := domain.NewRuntimeConfig("memory")
	services := NewServices(config)

	services.SetReranker(mocks.NewMockReranker())
	if !config.RerankerAvailable() {
		t.Error("reranker flag not raised")
	}

	services.SetReranker(nil)
	if config.RerankerAvailable() {
		t.Error("reranker flag not cleared")
	}
}

func TestServices_ValidateAndSetEmbedding(t *testing.T) {
	config := domain.NewRuntimeConfig("memory")
	services := NewServices(config)

	healthy := mocks.NewMockEmbeddingService()
	if err := services.ValidateAndSetEmbedding(context.Background(), healthy); err != nil {
		t.Fatalf("ValidateAndSetEmbedding: %v", err)
	}
	if !config.EmbeddingAvailable() {
		t.Error("healthy service should raise the flag")
	}

	unhealthy := mocks.NewMockEmbeddingService()
	unhealthy.SetFailing(true)
	err := services.ValidateAndSetEmbedding(context.Background(), unhealthy)
	if !errors.Is(err, domain.ErrEmbeddingUnavailable) {
		t.Fatalf("error = %v, want ErrEmbeddingUnavailable", err)
	}
	// Failed validation must not displace the healthy service
	if services.EmbeddingService() != healthy {
		t.Error("failed validation replaced the working service")
	}
}

func TestServices_EffectiveRetrievalMode(t *testing.T) {
	config := domain.NewRuntimeConfig("memory")
	services := NewServices(config)

	if mode := config.EffectiveRetrievalMode(); mode != domain.RetrievalModeLexicalOnly {
		t.Errorf("mode = %s, want lexical without embeddings", mode)
	}

	services.SetEmbeddingService(mocks.NewMockEmbeddingService())
	if mode := config.EffectiveRetrievalMode(); mode != domain.RetrievalModeHybrid {
		t.Errorf("mode = %s, want hybrid with embeddings", mode)
	}
}

func TestServices_Close(t *testing.T) {
	config := domain.NewRuntimeConfig("memory")
	services := NewServices(config)
	services.SetEmbeddingService(mocks.NewMockEmbeddingService())
	services.SetReranker(mocks.NewMockReranker())

	if err := services.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if services.EmbeddingService() != nil || services.Reranker() != nil {
		t.Error("services not cleared on close")
	}
	if config.EmbeddingAvailable() || config.RerankerAvailable() {
		t.Error("capability flags not cleared on close")
	}
}
