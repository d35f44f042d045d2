package settings

import (
	"os"
	"sync"

	"sparkcalc/sparkos/calc"

	"go.uber.org/zap"
)

// Store holds the live settings. It is safe for concurrent use: frontends
// read it from their event loop while Watch reloads it from another
// goroutine.
type Store struct {
	path string
	log  *zap.Logger

	mu   sync.RWMutex
	cur  Settings
	subs []func(Settings)
}

// Open loads path into a new Store. An empty path keeps everything in
// memory.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{path: path, log: log, cur: Default()}
	if path == "" {
		return s, nil
	}
	cur, err := Load(path)
	if err != nil {
		return nil, err
	}
	s.cur = cur
	return s, nil
}

// Path returns the backing file, or "" for an in-memory store.
func (s *Store) Path() string { return s.path }

// Get returns a copy of the current settings.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// AngleUnit implements calc.AngleSource.
func (s *Store) AngleUnit() calc.AngleUnit {
	return s.Get().Angle()
}

// Subscribe registers fn to run after every change. fn runs on the
// goroutine that made the change and must not call Update.
func (s *Store) Subscribe(fn func(Settings)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Update applies fn, validates the result and saves it. Subscribers are
// notified when anything changed.
func (s *Store) Update(fn func(*Settings)) error {
	s.mu.Lock()
	next := s.cur
	fn(&next)
	if err := next.Validate(); err != nil {
		s.mu.Unlock()
		return err
	}
	changed := next != s.cur
	s.cur = next
	subs := append([](func(Settings))(nil), s.subs...)
	s.mu.Unlock()

	if !changed {
		return nil
	}
	if s.path != "" {
		if err := next.Save(s.path); err != nil {
			return err
		}
	}
	s.notify(subs, next)
	return nil
}

// Reload re-reads the backing file. An empty file is treated as a write in
// progress and ignored.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	if fi, err := os.Stat(s.path); err == nil && fi.Size() == 0 {
		return nil
	}
	next, err := Load(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	changed := next != s.cur
	s.cur = next
	subs := append([](func(Settings))(nil), s.subs...)
	s.mu.Unlock()

	if changed {
		s.log.Info("settings reloaded",
			zap.String("theme", string(next.Theme)),
			zap.String("angle", next.AngleUnit),
			zap.Bool("drawer", next.DrawerOpen))
		s.notify(subs, next)
	}
	return nil
}

func (s *Store) notify(subs []func(Settings), cur Settings) {
	for _, fn := range subs {
		fn(cur)
	}
}
