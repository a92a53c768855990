package driven

import (
	"context"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

// SettingsStore persists retrieval and AI settings
type SettingsStore interface {
	// GetRetrievalSettings retrieves the retrieval tuning parameters.
	// Returns domain.ErrNotFound if none were ever saved.
	GetRetrievalSettings(ctx context.Context) (*domain.RetrievalSettings, error)

	// SaveRetrievalSettings persists retrieval tuning parameters
	SaveRetrievalSettings(ctx context.Context, settings *domain.RetrievalSettings) error

	// GetAISettings retrieves the AI service configuration
	GetAISettings(ctx context.Context) (*domain.AISettings, error)

	// SaveAISettings persists the AI service configuration
	SaveAISettings(ctx context.Context, settings *domain.AISettings) error
}
