package domain

import (
	"testing"
)

func TestAIProviderConstants(t *testing.T) {
	tests := []struct {
		provider AIProvider
		expected string
	}{
		{AIProviderOpenAI, "openai"},
		{AIProviderOllama, "ollama"},
		{AIProviderVoyage, "voyage"},
		{AIProviderCohere, "cohere"},
	}

	for _, tt := range tests {
		t.Run(string(tt.provider), func(t *testing.T) {
			if string(tt.provider) != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, string(tt.provider))
			}
		})
	}
}

func TestAIProviderRequiresAPIKey(t *testing.T) {
	if AIProviderOllama.RequiresAPIKey() {
		t.Error("expected ollama not to require an API key")
	}
	for _, p := range []AIProvider{AIProviderOpenAI, AIProviderVoyage, AIProviderCohere} {
		if !p.RequiresAPIKey() {
			t.Errorf("expected %s to require an API key", p)
		}
	}
}

func TestAIProviderIsValid(t *testing.T) {
	for _, p := range []AIProvider{AIProviderOpenAI, AIProviderOllama, AIProviderVoyage, AIProviderCohere} {
		if !p.IsValid() {
			t.Errorf("expected %s to be valid", p)
		}
	}
	if AIProvider("gemini").IsValid() {
		t.Error("expected unknown provider to be invalid")
	}
	if AIProvider("").IsValid() {
		t.Error("expected empty provider to be invalid")
	}
}

func TestDefaultRetrievalSettings(t *testing.T) {
	settings := DefaultRetrievalSettings()

	if settings.ChunkTargetSize != 512 {
		t.Errorf("expected ChunkTargetSize 512, got %d", settings.ChunkTargetSize)
	}
	if settings.ChunkOverlap != 50 {
		t.Errorf("expected ChunkOverlap 50, got %d", settings.ChunkOverlap)
	}
	if settings.DenseWeight != 0.7 {
		t.Errorf("expected DenseWeight 0.7, got %f", settings.DenseWeight)
	}
	if settings.LexicalWeight != 0.3 {
		t.Errorf("expected LexicalWeight 0.3, got %f", settings.LexicalWeight)
	}
	if settings.TopK != 10 {
		t.Errorf("expected TopK 10, got %d", settings.TopK)
	}
	if settings.RerankEnabled {
		t.Error("expected reranking to be off by default")
	}
	if settings.MaxCitations != 5 {
		t.Errorf("expected MaxCitations 5, got %d", settings.MaxCitations)
	}
	if settings.ConfidenceStrategy != ConfidenceStrategyEnsemble {
		t.Errorf("expected ensemble strategy, got %s", settings.ConfidenceStrategy)
	}

	if err := settings.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestRetrievalSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RetrievalSettings)
		valid  bool
	}{
		{"defaults", func(s *RetrievalSettings) {}, true},
		{"zero chunk size", func(s *RetrievalSettings) { s.ChunkTargetSize = 0 }, false},
		{"negative overlap", func(s *RetrievalSettings) { s.ChunkOverlap = -1 }, false},
		{"overlap exceeds chunk size", func(s *RetrievalSettings) {
			s.ChunkTargetSize = 100
			s.ChunkOverlap = 100
		}, false},
		{"negative dense weight", func(s *RetrievalSettings) { s.DenseWeight = -0.5 }, false},
		{"negative lexical weight", func(s *RetrievalSettings) { s.LexicalWeight = -0.1 }, false},
		{"both weights zero", func(s *RetrievalSettings) {
			s.DenseWeight = 0
			s.LexicalWeight = 0
		}, false},
		{"lexical only weights", func(s *RetrievalSettings) {
			s.DenseWeight = 0
			s.LexicalWeight = 1
		}, true},
		{"zero top_k", func(s *RetrievalSettings) { s.TopK = 0 }, false},
		{"zero max citations", func(s *RetrievalSettings) { s.MaxCitations = 0 }, false},
		{"threshold above one", func(s *RetrievalSettings) { s.RelevanceThreshold = 1.5 }, false},
		{"threshold below zero", func(s *RetrievalSettings) { s.RelevanceThreshold = -0.1 }, false},
		{"unknown strategy", func(s *RetrievalSettings) { s.ConfidenceStrategy = "vibes" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultRetrievalSettings()
			tt.mutate(settings)

			err := settings.Validate()
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid && err != ErrInvalidInput {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestEmbeddingSettingsIsConfigured(t *testing.T) {
	tests := []struct {
		name       string
		settings   EmbeddingSettings
		configured bool
	}{
		{"empty", EmbeddingSettings{}, false},
		{"openai without key", EmbeddingSettings{Provider: AIProviderOpenAI}, false},
		{"openai with key", EmbeddingSettings{Provider: AIProviderOpenAI, APIKey: "sk-test"}, true},
		{"ollama without key", EmbeddingSettings{Provider: AIProviderOllama, BaseURL: "http://localhost:11434"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.settings.IsConfigured(); got != tt.configured {
				t.Errorf("expected configured=%v, got %v", tt.configured, got)
			}
		})
	}
}

func TestRerankerSettingsIsConfigured(t *testing.T) {
	r := RerankerSettings{}
	if r.IsConfigured() {
		t.Error("expected unconfigured without endpoint")
	}

	r.Endpoint = "http://localhost:8081/rerank"
	if !r.IsConfigured() {
		t.Error("expected configured with endpoint")
	}
}

func TestAISettingsValidate(t *testing.T) {
	settings := &AISettings{}
	if err := settings.Validate(); err != nil {
		t.Errorf("expected empty settings to validate, got %v", err)
	}

	settings.Embedding.Provider = AIProviderVoyage
	if err := settings.Validate(); err != nil {
		t.Errorf("expected known provider to validate, got %v", err)
	}

	settings.Embedding.Provider = "gemini"
	if err := settings.Validate(); err != ErrInvalidProvider {
		t.Errorf("expected ErrInvalidProvider, got %v", err)
	}
}
