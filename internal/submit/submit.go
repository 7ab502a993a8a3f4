// Package submit persists submitted form values.
package submit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Submission is one submitted form.
type Submission struct {
	ID          string            `json:"id"`
	SubmittedAt time.Time         `json:"submitted_at"`
	Values      map[string]string `json:"values"` // field name -> display value
	Raw         map[string]string `json:"raw"`    // field name -> raw value
}

// Store manages submission persistence.
type Store struct {
	mu          sync.RWMutex
	filePath    string
	submissions []Submission
	now         func() time.Time
}

// NewStore creates a new submission store.
func NewStore(filePath string) *Store {
	return &Store{
		filePath: filePath,
		now:      time.Now,
	}
}

// Load loads submissions from the file.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// Nothing submitted yet
			return nil
		}
		return err
	}

	return json.Unmarshal(data, &s.submissions)
}

// save writes submissions to the file (must be called with lock held).
func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.submissions, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0644)
}

// Add records a submission and saves the file. The maps are copied.
func (s *Store) Add(values, raw map[string]string) (Submission, error) {
	sub := Submission{
		ID:          uuid.NewString(),
		SubmittedAt: s.now().UTC(),
		Values:      copyMap(values),
		Raw:         copyMap(raw),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions = append(s.submissions, sub)
	if err := s.save(); err != nil {
		s.submissions = s.submissions[:len(s.submissions)-1]
		return Submission{}, err
	}
	return sub, nil
}

// Get returns the submission with the given id.
func (s *Store) Get(id string) (Submission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sub := range s.submissions {
		if sub.ID == id {
			return sub, true
		}
	}
	return Submission{}, false
}

// Last returns the most recent submission.
func (s *Store) Last() (Submission, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.submissions) == 0 {
		return Submission{}, false
	}
	return s.submissions[len(s.submissions)-1], true
}

// Count returns the number of stored submissions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.submissions)
}

// GetAll returns all submissions, oldest first.
func (s *Store) GetAll() []Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy
	result := make([]Submission, len(s.submissions))
	copy(result, s.submissions)
	return result
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
