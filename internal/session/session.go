// Package session holds the per-user, in-memory state that the original
// dashboard kept in ambient browser globals: the signed-in identity and the
// set of mood activities completed this session. It is passed explicitly
// into every component that needs it and cleared through Reset.
package session

import "sync"

// State is session-scoped mutable state. All engine mutation funnels
// through its mutex; the components themselves assume single-threaded
// callback execution, the way the original event loop did.
type State struct {
	mu sync.Mutex

	userID    int
	completed map[int]bool // mood activity ids completed this session
}

// New returns an empty session for the given user.
func New(userID int) *State {
	return &State{
		userID:    userID,
		completed: make(map[int]bool),
	}
}

// Lock serializes an engine mutation. Callers hold it for the duration of
// one event callback (user input, timer tick, network response).
func (s *State) Lock()   { s.mu.Lock() }
func (s *State) Unlock() { s.mu.Unlock() }

// UserID returns the session identity. Zero means unauthenticated.
func (s *State) UserID() int { return s.userID }

// MarkCompleted records an activity as done for this session.
func (s *State) MarkCompleted(activityID int) {
	s.completed[activityID] = true
}

// IsCompleted reports whether an activity was already done this session.
func (s *State) IsCompleted(activityID int) bool {
	return s.completed[activityID]
}

// CompletedIDs returns the completed activity ids, for the read model.
func (s *State) CompletedIDs() []int {
	ids := make([]int, 0, len(s.completed))
	for id := range s.completed {
		ids = append(ids, id)
	}
	return ids
}

// Reset clears the completed set. The identity stays; it belongs to the
// login, not to the mood session.
func (s *State) Reset() {
	s.completed = make(map[int]bool)
}
