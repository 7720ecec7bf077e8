// Package suppress remembers answers the user asked not to be asked again
// for. Entries are keyed by a BLAKE3 hash of the request's visible content.
package suppress

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/zeebo/blake3"

	"github.com/wieslawsoltes/NativeMessageBox/internal/core"
)

// Entry is one remembered answer.
type Entry struct {
	Button core.ButtonID `json:"button"`
	Input  *string       `json:"input,omitempty"`
	Saved  time.Time     `json:"saved"`
}

// Store is a JSON file of entries.
type Store struct {
	path string
	now  func() time.Time

	mu      sync.Mutex
	entries map[string]Entry
}

// Open loads the store at path. A missing file is an empty store.
func Open(path string) (*Store, error) {
	s := &Store{path: path, now: time.Now, entries: make(map[string]Entry)}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read suppress store: %w", err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		return nil, fmt.Errorf("failed to parse suppress store: %w", err)
	}
	if s.entries == nil {
		s.entries = make(map[string]Entry)
	}
	return s, nil
}

// Key hashes what makes two requests "the same question": title, message,
// buttons, verification text and input mode.
func Key(req *core.Request) string {
	h := blake3.New()
	field := func(s string) {
		fmt.Fprintf(h, "%d:%s;", len(s), s)
	}
	field(req.Title)
	field(req.Message)
	field(req.VerificationText)
	field(req.InputMode().String())
	for _, b := range req.EffectiveButtons() {
		field(b.ID.String())
		field(b.Label)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Lookup returns the remembered answer for req.
func (s *Store) Lookup(req *core.Request) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[Key(req)]
	return e, ok
}

// Remember stores the answer in res when the user ticked the verification
// checkbox. It reports whether anything was stored.
func (s *Store) Remember(req *core.Request, res *core.Result) (bool, error) {
	if !req.VerificationRequested() || !res.CheckboxChecked || res.Status != core.StatusOK {
		return false, nil
	}
	e := Entry{Button: res.Button, Saved: s.now().UTC()}
	if res.InputValue != nil {
		v := res.Input()
		e.Input = &v
	}
	s.mu.Lock()
	s.entries[Key(req)] = e
	s.mu.Unlock()
	return true, s.save()
}

// Forget drops the answer for req.
func (s *Store) Forget(req *core.Request) error {
	s.mu.Lock()
	delete(s.entries, Key(req))
	s.mu.Unlock()
	return s.save()
}

// Len returns the number of remembered answers.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) save() error {
	s.mu.Lock()
	payload, err := json.MarshalIndent(s.entries, "", "  ")
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to encode suppress store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("failed to save suppress store: %w", err)
	}
	return nil
}
