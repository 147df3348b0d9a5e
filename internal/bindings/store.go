package bindings

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var ErrNotFound = errors.New("bindings file not found")

const watchDebounce = 100 * time.Millisecond

// Store persists a File at a fixed path. The format follows the file
// extension (toml, yaml, json).
type Store struct {
	path    string
	mu      sync.Mutex
	watcher *viper.Viper
	written []byte // contents of our own last Save
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads and validates the bindings file.
func (s *Store) Load() (*File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := viper.New()
	v.SetConfigFile(s.path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("read bindings %s: %w", s.path, err)
	}
	return s.decode(v)
}

// LoadOrDefault is Load, falling back to Default when the file is missing.
func (s *Store) LoadOrDefault() (*File, error) {
	f, err := s.Load()
	if errors.Is(err, ErrNotFound) {
		log.Printf("No bindings at %s, using built-in defaults", s.path)
		return Default(), nil
	}
	return f, err
}

func (s *Store) decode(v *viper.Viper) (*File, error) {
	var f File
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("decode bindings %s: %w", s.path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid bindings %s: %w", s.path, err)
	}
	return &f, nil
}

// Save validates f and writes it, replacing any existing file.
func (s *Store) Save(f *File) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("invalid bindings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create bindings dir: %w", err)
		}
	}

	v := viper.New()
	v.Set("joysticks", f.encode())
	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write bindings %s: %w", s.path, err)
	}
	s.written, _ = os.ReadFile(s.path)
	log.Printf("Bindings saved to %s", s.path)
	return nil
}

// Watch calls fn with the new contents each time the file changes on disk.
// Bursts of events are coalesced, and invalid contents are logged and
// skipped.
func (s *Store) Watch(fn func(*File)) error {
	v := viper.New()
	v.SetConfigFile(s.path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("watch bindings %s: %w", s.path, err)
	}

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	reload := func() {
		if s.isOwnWrite() {
			return
		}
		f, err := s.Load()
		if err != nil {
			log.Printf("Ignoring bindings change: %v", err)
			return
		}
		log.Printf("Bindings reloaded from %s", s.path)
		fn(f)
	}

	v.OnConfigChange(func(fsnotify.Event) {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(watchDebounce, reload)
	})
	v.WatchConfig()

	s.mu.Lock()
	s.watcher = v
	s.mu.Unlock()
	return nil
}

// isOwnWrite reports whether the file still holds what Save last wrote.
func (s *Store) isOwnWrite() bool {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.written != nil && bytes.Equal(data, s.written)
}

func (f *File) encode() []map[string]any {
	out := make([]map[string]any, 0, len(f.Joysticks))
	for _, jb := range f.Joysticks {
		out = append(out, map[string]any{
			"mode":       jb.Mode,
			"keyboard":   jb.Keyboard.encode(),
			"controller": jb.Controller.encode(),
		})
	}
	return out
}

func (p Profile) encode() map[string]any {
	buttons := make([]map[string]any, 0, len(p.Buttons))
	for _, b := range p.Buttons {
		buttons = append(buttons, b.encode())
	}
	axes := make([]map[string]any, 0, len(p.Axes))
	for _, a := range p.Axes {
		axes = append(axes, a.encode())
	}
	analogs := make([]map[string]any, 0, len(p.Analogs))
	for _, a := range p.Analogs {
		analogs = append(analogs, map[string]any{
			"x":          a.X.encode(),
			"y":          a.Y.encode(),
			"button":     a.Button.encode(),
			"controller": a.Controller,
		})
	}
	return map[string]any{
		"buttons": buttons,
		"axes":    axes,
		"analogs": analogs,
	}
}

func (b ButtonBinding) encode() map[string]any {
	return map[string]any{"key": b.Key, "controller": b.Controller}
}

func (a AxisBinding) encode() map[string]any {
	return map[string]any{
		"positive":   a.Positive.encode(),
		"negative":   a.Negative.encode(),
		"controller": a.Controller,
	}
}
