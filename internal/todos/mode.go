package todos

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/worktravel/internal/model"
	"github.com/idilsaglam/worktravel/internal/store"
)

// ModeStore holds the active category, persisted on its own key.
type ModeStore struct {
	backend store.Backend
	logger  *log.Logger

	mu   sync.Mutex
	mode model.Category
}

// NewModeStore starts in Work mode.
func NewModeStore(b store.Backend, opts ...Option) *ModeStore {
	o := buildOptions(opts)
	return &ModeStore{backend: b, logger: o.logger, mode: model.Work}
}

// LoadMode reads the persisted mode. Absent or malformed values load as
// Work.
func (m *ModeStore) LoadMode(ctx context.Context) (model.Category, error) {
	raw, ok, err := m.backend.Get(ctx, KeyWorking)
	if err != nil {
		return model.Work, fmt.Errorf("load mode: %w", err)
	}
	mode := model.Work
	if ok && strings.TrimSpace(raw) != "" {
		decoded, err := DecodeMode(raw)
		if err != nil {
			m.logger.Warn("discarding unreadable mode", "key", KeyWorking, "err", err)
		} else {
			mode = decoded
		}
	}
	m.mu.Lock()
	m.mode = mode
	m.mu.Unlock()
	return mode, nil
}

// SetMode switches the active category and persists it immediately.
func (m *ModeStore) SetMode(ctx context.Context, mode model.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mode = mode
	if err := m.backend.Set(ctx, KeyWorking, EncodeMode(mode)); err != nil {
		m.logger.Error("write failed", "key", KeyWorking, "err", err)
		return fmt.Errorf("persist mode: %w", err)
	}
	return nil
}

// Mode returns the active category.
func (m *ModeStore) Mode() model.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}
