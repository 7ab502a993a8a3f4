// Package state manages application state for maskform.
package state

import (
	"sync"
	"time"
)

// Field is the host's view of one form field: the values it last reported
// and whether its mask is fully filled.
type Field struct {
	Name     string
	Label    string
	Mask     string
	Display  string // value as shown, "" while untouched
	Raw      string // entered characters without literals
	Complete bool
}

// State holds the application state.
type State struct {
	mu sync.RWMutex

	fields map[string]*Field // keyed by field name
	order  []string

	// Selection state
	selectedField string

	message       string
	lastSubmitID  string
	lastSubmitted time.Time
}

// New creates a new State.
func New() *State {
	return &State{
		fields: make(map[string]*Field),
	}
}

// UpdateFields replaces the field list. Values of fields that keep their
// name are carried over.
func (s *State) UpdateFields(fields []*Field) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.fields
	s.fields = make(map[string]*Field, len(fields))
	s.order = s.order[:0]

	for _, f := range fields {
		if prev, ok := old[f.Name]; ok && f.Raw == "" && f.Display == "" {
			f.Raw = prev.Raw
			f.Display = prev.Display
			f.Complete = prev.Complete
		}
		s.fields[f.Name] = f
		s.order = append(s.order, f.Name)
	}

	// Validate selection
	if _, ok := s.fields[s.selectedField]; !ok {
		s.selectedField = ""
	}
}

// GetFields returns all fields in form order.
func (s *State) GetFields() []*Field {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fields := make([]*Field, 0, len(s.order))
	for _, name := range s.order {
		fields = append(fields, s.fields[name])
	}
	return fields
}

// GetField returns a specific field by name.
func (s *State) GetField(name string) *Field {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fields[name]
}

// SetValue records a field's reported values. Unknown names are ignored.
func (s *State) SetValue(name, display, raw string, complete bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := s.fields[name]; ok {
		f.Display = display
		f.Raw = raw
		f.Complete = complete
	}
}

// Values returns display values keyed by field name.
func (s *State) Values() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := make(map[string]string, len(s.fields))
	for name, f := range s.fields {
		values[name] = f.Display
	}
	return values
}

// RawValues returns raw values keyed by field name.
func (s *State) RawValues() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := make(map[string]string, len(s.fields))
	for name, f := range s.fields {
		values[name] = f.Raw
	}
	return values
}

// GetSelectedField returns the focused field.
func (s *State) GetSelectedField() *Field {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fields[s.selectedField]
}

// GetSelectedFieldName returns the name of the focused field.
func (s *State) GetSelectedFieldName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedField
}

// SetSelectedField sets the focused field by name.
func (s *State) SetSelectedField(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.fields[name]; ok {
		s.selectedField = name
	}
}

// SelectFirst selects the first field if none is selected.
func (s *State) SelectFirst() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.fields[s.selectedField]; ok {
		return
	}
	if len(s.order) > 0 {
		s.selectedField = s.order[0]
	}
}

// SelectNext moves focus to the next field, wrapping at the end.
func (s *State) SelectNext() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.order) == 0 {
		return
	}
	idx := s.findFieldIndex(s.selectedField)
	s.selectedField = s.order[(idx+1)%len(s.order)]
}

// SelectPrev moves focus to the previous field, wrapping at the start.
func (s *State) SelectPrev() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.order) == 0 {
		return
	}
	idx := s.findFieldIndex(s.selectedField)
	s.selectedField = s.order[(idx-1+len(s.order))%len(s.order)]
}

// findFieldIndex finds the index of a field by name (must be called with lock held).
func (s *State) findFieldIndex(name string) int {
	for i, n := range s.order {
		if n == name {
			return i
		}
	}
	return 0
}

// FieldCount returns the number of fields.
func (s *State) FieldCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fields)
}

// CompleteCount returns the number of fully filled fields.
func (s *State) CompleteCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, f := range s.fields {
		if f.Complete {
			count++
		}
	}
	return count
}

// SetMessage sets the status line message.
func (s *State) SetMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = msg
}

// Message returns the status line message.
func (s *State) Message() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.message
}

// MarkSubmitted records a successful submission.
func (s *State) MarkSubmitted(id string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSubmitID = id
	s.lastSubmitted = at
}

// LastSubmitted returns the last submission id and time, if any.
func (s *State) LastSubmitted() (string, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSubmitID, s.lastSubmitted, s.lastSubmitID != ""
}
