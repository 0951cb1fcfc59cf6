package storage

import "github.com/julianstephens/habitual/internal/models"

// Provider persists the whole tracker state. The core loads once and saves
// after every mutation; providers never see partial updates.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// State
	LoadState() (models.State, error)
	SaveState(models.State) error

	// Utils
	GetConfigPath() string
}
