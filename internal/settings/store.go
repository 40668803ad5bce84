package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Mirror persists a copy of the settings document outside the file. The
// store falls back to it when the file is missing, so an edited
// configuration survives loss of the YAML file.
type Mirror interface {
	GetSetting(key, defaultVal string) string
	SetSetting(key, value string) error
}

const mirrorKey = "settings_yaml"

// Store holds the live settings document and serializes updates
type Store struct {
	mu      sync.RWMutex
	path    string
	mirror  Mirror
	current *Settings
}

// NewStore loads settings from path, from the mirror copy when the file is
// missing, or from defaults. mirror may be nil.
func NewStore(path string, mirror Mirror) (*Store, error) {
	s := &Store{path: path, mirror: mirror}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		cur, err := Load(path)
		if err != nil {
			return nil, err
		}
		s.current = cur
	case errors.Is(statErr, fs.ErrNotExist):
		if mirror != nil {
			if doc := mirror.GetSetting(mirrorKey, ""); doc != "" {
				cur, err := parse([]byte(doc))
				if err != nil {
					return nil, fmt.Errorf("settings mirror: %w", err)
				}
				s.current = cur
				break
			}
		}
		s.current = Defaults()
	default:
		return nil, statErr
	}
	return s, nil
}

// Current returns the live settings. Callers must treat the value as
// read-only; Update swaps in a new document.
func (s *Store) Current() *Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update validates next, persists it to the file and mirror, and makes it
// the live document.
func (s *Store) Update(next *Settings) error {
	next.normalize()
	if err := next.Validate(); err != nil {
		return err
	}

	if s.path != "" {
		if err := next.Save(s.path); err != nil {
			return err
		}
	}
	if s.mirror != nil {
		data, err := yaml.Marshal(next)
		if err != nil {
			return fmt.Errorf("marshal settings: %w", err)
		}
		if err := s.mirror.SetSetting(mirrorKey, string(data)); err != nil {
			return fmt.Errorf("mirror settings: %w", err)
		}
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
	return nil
}

// Clone returns a deep copy of the current settings for safe editing
func (s *Store) Clone() (*Settings, error) {
	cur := s.Current()
	data, err := yaml.Marshal(cur)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

func parse(data []byte) (*Settings, error) {
	out := Defaults()
	if err := yaml.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	out.normalize()
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}
