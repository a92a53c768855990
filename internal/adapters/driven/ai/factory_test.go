package ai

import (
	"errors"
	"testing"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

func TestFactory_CreateEmbeddingService_NotConfigured(t *testing.T) {
	f := NewFactory()

	svc, err := f.CreateEmbeddingService(nil)
	if err != nil || svc != nil {
		t.Errorf("expected nil, nil for nil settings, got %v, %v", svc, err)
	}

	svc, err = f.CreateEmbeddingService(&domain.EmbeddingSettings{})
	if err != nil || svc != nil {
		t.Errorf("expected nil, nil for empty settings, got %v, %v", svc, err)
	}

	// OpenAI without a key is not configured
	svc, err = f.CreateEmbeddingService(&domain.EmbeddingSettings{Provider: domain.AIProviderOpenAI})
	if err != nil || svc != nil {
		t.Errorf("expected nil, nil for missing API key, got %v, %v", svc, err)
	}
}

func TestFactory_CreateEmbeddingService_OpenAI(t *testing.T) {
	f := NewFactory()

	svc, err := f.CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOpenAI,
		Model:    "text-embedding-3-small",
		APIKey:   "sk-test",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := svc.(*OpenAIEmbedding); !ok {
		t.Errorf("expected an OpenAI adapter, got %T", svc)
	}
}

func TestFactory_CreateEmbeddingService_Ollama(t *testing.T) {
	f := NewFactory()

	// Ollama is self-hosted and needs no API key
	svc, err := f.CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		Model:    "nomic-embed-text",
		BaseURL:  "http://localhost:11434",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := svc.(*OllamaEmbedding); !ok {
		t.Errorf("expected an Ollama adapter, got %T", svc)
	}
}

func TestFactory_CreateEmbeddingService_UnknownProvider(t *testing.T) {
	f := NewFactory()

	_, err := f.CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: "skynet",
		APIKey:   "key",
	})
	if !errors.Is(err, domain.ErrInvalidProvider) {
		t.Errorf("expected ErrInvalidProvider, got %v", err)
	}
}

func TestFactory_CreateReranker(t *testing.T) {
	f := NewFactory()

	svc, err := f.CreateReranker(nil)
	if err != nil || svc != nil {
		t.Errorf("expected nil, nil for nil settings, got %v, %v", svc, err)
	}

	svc, err = f.CreateReranker(&domain.RerankerSettings{})
	if err != nil || svc != nil {
		t.Errorf("expected nil, nil for no endpoint, got %v, %v", svc, err)
	}

	svc, err = f.CreateReranker(&domain.RerankerSettings{
		Endpoint: "http://localhost:8081/rerank",
		Model:    "cross-encoder-v2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := svc.(*HTTPReranker); !ok {
		t.Errorf("expected an HTTP reranker, got %T", svc)
	}
}
