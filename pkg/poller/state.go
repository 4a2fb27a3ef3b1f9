package poller

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"
)

// State is the watcher's locally persisted data: the saved bearer token and
// the advisory reviewed flags keyed by order id. Reviewed flags are UI
// state only; the server never sees them.
type State struct {
	path string

	mu   sync.Mutex
	data stateData
}

type stateData struct {
	Token    string          `json:"token,omitempty"`
	Reviewed map[string]bool `json:"reviewed"`
}

// LoadState reads the state file, returning an empty state when the file
// does not exist yet.
func LoadState(path string) (*State, error) {
	s := &State{
		path: path,
		data: stateData{Reviewed: make(map[string]bool)},
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, err
	}
	if s.data.Reviewed == nil {
		s.data.Reviewed = make(map[string]bool)
	}
	return s, nil
}

func (s *State) save() error {
	raw, err := json.MarshalIndent(&s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}

// Token returns the saved bearer token, if any.
func (s *State) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Token
}

// SetToken saves the bearer token for the next run.
func (s *State) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Token = token
	return s.save()
}

// Reviewed reports whether the operator marked the order as handled.
func (s *State) Reviewed(orderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Reviewed[orderID]
}

// SetReviewed toggles the handled flag for an order. Clearing the flag
// removes the entry entirely.
func (s *State) SetReviewed(orderID string, done bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if done {
		s.data.Reviewed[orderID] = true
	} else {
		delete(s.data.Reviewed, orderID)
	}
	return s.save()
}
