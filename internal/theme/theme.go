// Package theme keeps the light/dark preference. A Theme starts from the
// persisted choice, falls back to the environment's signal when nothing is
// stored, and persists and applies every change.
package theme

import (
	"context"
	"fmt"
	"sync"
)

// Mode is the persisted value of the preference.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ParseMode accepts "dark" and "light"; ok is false for anything else.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case Dark, Light:
		return Mode(s), true
	}
	return "", false
}

// ModeOf maps a dark flag onto its Mode.
func ModeOf(dark bool) Mode {
	if dark {
		return Dark
	}
	return Light
}

// Storage persists the preference. Load reports ok=false when nothing
// has been saved yet.
type Storage interface {
	Load(ctx context.Context) (m Mode, ok bool, err error)
	Save(ctx context.Context, m Mode) error
}

// PrefersDark is the environment's light/dark signal, consulted when the
// storage holds no preference.
type PrefersDark func(ctx context.Context) bool

// Theme is the preference of one viewer: a browser, or the terminal user.
type Theme struct {
	storage Storage
	prefers PrefersDark
	apply   func(Mode)

	mu   sync.Mutex
	dark bool
}

// Option customizes a Theme.
type Option func(*Theme)

// WithApply registers fn to reflect the mode onto the root element (or
// whatever the viewer styles from). It runs on Mount and on every change.
func WithApply(fn func(Mode)) Option {
	return func(t *Theme) { t.apply = fn }
}

// New returns a light Theme; call Mount to load the real preference.
func New(storage Storage, prefers PrefersDark, opts ...Option) *Theme {
	t := &Theme{storage: storage, prefers: prefers, apply: func(Mode) {}}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Mount initializes the flag from storage, or from the environment when
// nothing is stored, and applies it. Mount does not persist anything.
func (t *Theme) Mount(ctx context.Context) error {
	m, ok, err := t.storage.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading theme: %w", err)
	}

	t.mu.Lock()
	if ok {
		t.dark = m == Dark
	} else {
		t.dark = t.prefers != nil && t.prefers(ctx)
	}
	mode := ModeOf(t.dark)
	t.mu.Unlock()

	t.apply(mode)
	return nil
}

// Toggle flips the flag, persists it and applies it.
func (t *Theme) Toggle(ctx context.Context) (Mode, error) {
	t.mu.Lock()
	t.dark = !t.dark
	mode := ModeOf(t.dark)
	t.mu.Unlock()

	return mode, t.changed(ctx, mode)
}

// Set forces a mode, persisting and applying it.
func (t *Theme) Set(ctx context.Context, m Mode) error {
	t.mu.Lock()
	t.dark = m == Dark
	t.mu.Unlock()

	return t.changed(ctx, ModeOf(m == Dark))
}

func (t *Theme) changed(ctx context.Context, m Mode) error {
	t.apply(m)
	if err := t.storage.Save(ctx, m); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	return nil
}

func (t *Theme) IsDark() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dark
}

// Mode returns the current mode, the value of the data-theme attribute.
func (t *Theme) Mode() Mode {
	return ModeOf(t.IsDark())
}

// MemoryStorage keeps the preference in memory.
type MemoryStorage struct {
	mu    sync.Mutex
	mode  Mode
	saved bool
}

func (s *MemoryStorage) Load(context.Context) (Mode, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode, s.saved, nil
}

func (s *MemoryStorage) Save(_ context.Context, m Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode, s.saved = m, true
	return nil
}
