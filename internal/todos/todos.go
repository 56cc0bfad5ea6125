package todos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/worktravel/internal/model"
	"github.com/idilsaglam/worktravel/internal/store"
)

var (
	ErrEmptyText = errors.New("empty text")
	ErrNotFound  = errors.New("no such record")
)

// Confirmer gates deletion. Returning false cancels it.
type Confirmer interface {
	Confirm(ctx context.Context, r model.Record) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, r model.Record) bool

func (f ConfirmFunc) Confirm(ctx context.Context, r model.Record) bool { return f(ctx, r) }

// AlwaysConfirm skips the prompt.
var AlwaysConfirm = ConfirmFunc(func(context.Context, model.Record) bool { return true })

// Store is the in-memory mapping mirrored to a Backend.
type Store struct {
	backend store.Backend
	ids     IDGenerator
	logger  *log.Logger

	mu      sync.Mutex
	records map[string]model.Record
	editing map[string]bool
}

// Option configures a Store or ModeStore.
type Option func(*options)

type options struct {
	ids    IDGenerator
	logger *log.Logger
}

func WithIDGenerator(g IDGenerator) Option { return func(o *options) { o.ids = g } }

func WithLogger(l *log.Logger) Option { return func(o *options) { o.logger = l } }

func buildOptions(opts []Option) options {
	o := options{ids: &MillisIDs{}, logger: log.Default()}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// New returns an empty Store. Call Load to hydrate it.
func New(b store.Backend, opts ...Option) *Store {
	o := buildOptions(opts)
	return &Store{
		backend: b,
		ids:     o.ids,
		logger:  o.logger,
		records: map[string]model.Record{},
		editing: map[string]bool{},
	}
}

// Load replaces the in-memory mapping with the persisted one and returns
// a copy of it. Absent data loads as empty. Data that does not decode
// also loads as empty; the next write overwrites it.
func (s *Store) Load(ctx context.Context) (map[string]model.Record, error) {
	raw, ok, err := s.backend.Get(ctx, KeyToDos)
	if err != nil {
		return nil, fmt.Errorf("load todos: %w", err)
	}
	records := map[string]model.Record{}
	if ok && strings.TrimSpace(raw) != "" {
		decoded, err := DecodeRecords(raw)
		if err != nil {
			s.logger.Warn("discarding unreadable todos", "key", KeyToDos, "err", err)
		} else {
			records = decoded
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	s.editing = map[string]bool{}
	s.logger.Debug("loaded todos", "count", len(records))
	return copyRecords(records), nil
}

// Add inserts a record under category. Text is trimmed; empty text adds
// nothing and returns ErrEmptyText. Ids already in the mapping are skipped,
// so a loaded record is never overwritten.
func (s *Store) Add(ctx context.Context, text string, category model.Category) (model.Record, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Record{}, ErrEmptyText
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.ids.NewID()
	for {
		if _, taken := s.records[id]; !taken {
			break
		}
		id = s.ids.NewID()
	}
	r := model.Record{ID: id, Text: text, Category: category}
	s.records[r.ID] = r
	return r, s.persistLocked(ctx)
}

// ToggleComplete flips the completed flag of id.
func (s *Store) ToggleComplete(ctx context.Context, id string) (model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok {
		return model.Record{}, fmt.Errorf("toggle %s: %w", id, ErrNotFound)
	}
	r.Completed = !r.Completed
	s.records[id] = r
	return r, s.persistLocked(ctx)
}

// UpdateText overwrites the text of id as given and ends editing.
func (s *Store) UpdateText(ctx context.Context, id, text string) (model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok {
		return model.Record{}, fmt.Errorf("update %s: %w", id, ErrNotFound)
	}
	r.Text = text
	s.records[id] = r
	delete(s.editing, id)
	return r, s.persistLocked(ctx)
}

// SetEditing marks id as being edited. Nothing is written.
func (s *Store) SetEditing(id string, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return fmt.Errorf("edit %s: %w", id, ErrNotFound)
	}
	if on {
		s.editing[id] = true
	} else {
		delete(s.editing, id)
	}
	return nil
}

// Editing reports whether id is being edited.
func (s *Store) Editing(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editing[id]
}

// Delete removes id once confirm agrees. It reports whether a record was
// removed; an unknown id or a cancelled prompt removes nothing.
func (s *Store) Delete(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	r, ok := s.Get(id)
	if !ok {
		return false, nil
	}
	// The lock is not held while prompting.
	if confirm == nil || !confirm.Confirm(ctx, r) {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return false, nil
	}
	delete(s.records, id)
	delete(s.editing, id)
	return true, s.persistLocked(ctx)
}

// Restore puts back a deleted record with its text, category and completion.
// It keeps the old id when that id is still free, otherwise a new one is
// generated. Empty text returns ErrEmptyText.
func (s *Store) Restore(ctx context.Context, r model.Record) (model.Record, error) {
	if strings.TrimSpace(r.Text) == "" {
		return model.Record{}, ErrEmptyText
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.records[r.ID]; r.ID == "" || taken {
		r.ID = s.ids.NewID()
		for {
			if _, taken := s.records[r.ID]; !taken {
				break
			}
			r.ID = s.ids.NewID()
		}
	}
	s.records[r.ID] = r
	return r, s.persistLocked(ctx)
}

// Get returns the record for id.
func (s *Store) Get(id string) (model.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	return r, ok
}

// Len returns the number of records across both categories.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Records returns a copy of the mapping.
func (s *Store) Records() map[string]model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyRecords(s.records)
}

// Visible returns the records shown under mode, in display order.
func (s *Store) Visible(mode model.Category) []model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Visible(s.records, mode)
}

// persistLocked writes the whole mapping. The in-memory change stands
// even when the write fails.
func (s *Store) persistLocked(ctx context.Context) error {
	raw, err := EncodeRecords(s.records)
	if err != nil {
		return fmt.Errorf("persist todos: %w", err)
	}
	if err := s.backend.Set(ctx, KeyToDos, raw); err != nil {
		s.logger.Error("write failed", "key", KeyToDos, "err", err)
		return fmt.Errorf("persist todos: %w", err)
	}
	return nil
}

func copyRecords(in map[string]model.Record) map[string]model.Record {
	out := make(map[string]model.Record, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
