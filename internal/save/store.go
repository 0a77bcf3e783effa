package save

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/g1tyx/fairies-and-unicorns/internal/game"
)

// Store is the on-disk save file under the data dir.
type Store struct {
	mu   sync.RWMutex
	path string
}

func NewStore(dataDir, file string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	if file == "" {
		file = "save.json"
	}
	return &Store{path: filepath.Join(dataDir, file)}, nil
}

// Path is where the save document lives on disk.
func (s *Store) Path() string {
	return s.path
}

// Load reads the save document. ok is false when no save exists yet.
func (s *Store) Load() (Doc, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Doc{}, false, nil
		}
		return Doc{}, false, err
	}
	d, err := Decode(b)
	if err != nil {
		return Doc{}, false, err
	}
	return d, true, nil
}

// Save writes the state as the current save document. Callers bump
// SaveCount and LastSaveTime first; the store only serializes.
func (s *Store) Save(st *game.State) error {
	b, err := Encode(st)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.WriteFile(s.path, b, 0o644)
}
