package solo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/iplsim/auction-backend/internal/auction"
)

// Store persists one JSON snapshot per room code so a detached session
// survives a restart, mirroring what the server never needs to do.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(code string) string {
	return filepath.Join(s.dir, "auction_"+code+".json")
}

func (s *Store) Save(st auction.State) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(s.path(st.RoomID), data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load restores a saved room. The second return is false when no
// snapshot exists for the code.
func (s *Store) Load(code string) (auction.State, bool, error) {
	data, err := os.ReadFile(s.path(code))
	if errors.Is(err, fs.ErrNotExist) {
		return auction.State{}, false, nil
	}
	if err != nil {
		return auction.State{}, false, fmt.Errorf("read snapshot: %w", err)
	}

	var st auction.State
	if err := json.Unmarshal(data, &st); err != nil {
		return auction.State{}, false, fmt.Errorf("decode snapshot: %w", err)
	}
	// The pool is static config, not part of the record.
	st.Pool = auction.Players
	return st, true, nil
}
