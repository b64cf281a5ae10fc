package quiz

// AnsweredSet is the monotonically growing set of completed question ids.
// Membership gates re-activation: once a question id is recorded it can never
// trigger again, regardless of any subsequent sequence of seeks.
type AnsweredSet struct {
	ids map[string]struct{}
}

// NewAnsweredSet returns an empty answered set.
func NewAnsweredSet() *AnsweredSet {
	return &AnsweredSet{ids: make(map[string]struct{})}
}

// Add records a question id as answered. Adding an already present id is a no-op.
func (s *AnsweredSet) Add(id string) {
	s.ids[id] = struct{}{}
}

// Has reports whether the question id has been answered.
func (s *AnsweredSet) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Size returns the number of answered questions.
func (s *AnsweredSet) Size() int {
	return len(s.ids)
}
