package client

import "sync"

// Session holds the signed-in identity and token. It is safe for concurrent
// use; subscribers are notified whenever it changes, which lets several
// consumers of one client stay in sync the way browser tabs do.
type Session struct {
	mu   sync.RWMutex
	user *User
	tok  string

	subs []chan struct{}
}

func NewSession() *Session {
	return &Session{}
}

// Set replaces the session identity and notifies subscribers.
func (s *Session) Set(user *User, token string) {
	s.mu.Lock()
	s.user = user
	s.tok = token
	s.mu.Unlock()
	s.notify()
}

// Clear signs the session out and notifies subscribers.
func (s *Session) Clear() {
	s.Set(nil, "")
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tok
}

// User returns a copy of the signed-in user, or nil.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tok != ""
}

// Subscribe returns a channel that receives a signal after every session
// change. The channel has a buffer of one; a slow consumer coalesces
// notifications rather than blocking the writer.
func (s *Session) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

func (s *Session) notify() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
