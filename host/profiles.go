package host

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tarmac-project/hord"
	"github.com/tarmac-project/hord/drivers/hashmap"

	"github.com/calvinmclean/stickkeys/joystick"
)

const profileKeyPrefix = "profile."

// ProfileStore keeps named calibration profiles in a local key/value
// store, persisted to disk when a filename is configured.
type ProfileStore struct {
	db hord.Database
}

// OpenProfiles opens (or creates) the profile store. An empty filename
// keeps profiles in memory only.
func OpenProfiles(filename string) (*ProfileStore, error) {
	if filename != "" {
		if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
			return nil, fmt.Errorf("create profiles directory: %w", err)
		}
	}

	db, err := hashmap.Dial(hashmap.Config{Filename: filename})
	if err != nil {
		return nil, fmt.Errorf("open profile store: %w", err)
	}
	if err := db.Setup(); err != nil {
		return nil, fmt.Errorf("set up profile store: %w", err)
	}

	return &ProfileStore{db: db}, nil
}

// Save stores cal under name, replacing any existing profile.
func (s *ProfileStore) Save(name string, cal joystick.Calibration) error {
	if name == "" {
		return fmt.Errorf("profile name is empty")
	}
	if err := cal.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(cal)
	if err != nil {
		return err
	}
	return s.db.Set(profileKeyPrefix+name, data)
}

// Get returns the named profile.
func (s *ProfileStore) Get(name string) (joystick.Calibration, error) {
	data, err := s.db.Get(profileKeyPrefix + name)
	if err != nil {
		return joystick.Calibration{}, fmt.Errorf("profile %q: %w", name, err)
	}

	var cal joystick.Calibration
	if err := json.Unmarshal(data, &cal); err != nil {
		return joystick.Calibration{}, fmt.Errorf("profile %q: %w", name, err)
	}
	return cal, nil
}

// List returns all profile names, sorted.
func (s *ProfileStore) List() ([]string, error) {
	keys, err := s.db.Keys()
	if err != nil {
		return nil, err
	}

	var names []string
	for _, k := range keys {
		if name, ok := strings.CutPrefix(k, profileKeyPrefix); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the named profile.
func (s *ProfileStore) Delete(name string) error {
	return s.db.Delete(profileKeyPrefix + name)
}

func (s *ProfileStore) Close() {
	s.db.Close()
}
