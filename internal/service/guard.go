package service

import "sync"

// submissionGuard rejects a second submission for the same user and event
// while the first is still being processed
type submissionGuard struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

func newSubmissionGuard() *submissionGuard {
	return &submissionGuard{inflight: make(map[string]struct{})}
}

// acquire marks (userID, eventID) as in flight. The returned release func
// must be called when the submission finishes.
func (g *submissionGuard) acquire(userID, eventID string) (release func(), err error) {
	key := userID + "|" + eventID

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inflight[key]; busy {
		return nil, ErrSubmissionInProgress
	}
	g.inflight[key] = struct{}{}

	return func() {
		g.mu.Lock()
		delete(g.inflight, key)
		g.mu.Unlock()
	}, nil
}
