package auth

import (
	"context"
	"sync"
)

// Session is the client-side auth gateway. It holds the current account and
// an explicit subscription list, so nothing in the app depends on ambient
// global auth state. Subscribers are called immediately with the state at
// subscription time, then again on every sign-in/sign-out.
type Session struct {
	svc *Service

	mu      sync.Mutex
	current *Account
	subs    map[int]func(*Account)
	nextSub int
}

var _ Gateway = (*Session)(nil)

func NewSession(svc *Service) *Session {
	return &Session{
		svc:  svc,
		subs: make(map[int]func(*Account)),
	}
}

func (s *Session) SignUp(ctx context.Context, email, password string) (*Account, error) {
	acct, err := s.svc.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s.setAccount(acct)

	return acct, nil
}

func (s *Session) SignIn(ctx context.Context, email, password string) (*Account, error) {
	acct, err := s.svc.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s.setAccount(acct)

	return acct, nil
}

func (s *Session) SignOut() {
	s.setAccount(nil)
}

func (s *Session) CurrentAccount() *Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current
}

// OnAccountChanged registers cb and fires it once with the current state so
// a guard can resolve its pending phase. The returned function removes the
// subscription; callers own that lifecycle.
func (s *Session) OnAccountChanged(cb func(*Account)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = cb
	current := s.current
	s.mu.Unlock()

	cb(current)

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Session) setAccount(acct *Account) {
	s.mu.Lock()
	s.current = acct

	subs := make([]func(*Account), 0, len(s.subs))
	for _, cb := range s.subs {
		subs = append(subs, cb)
	}
	s.mu.Unlock()

	// Callbacks run outside the lock; a subscriber may unsubscribe from
	// within its own callback.
	for _, cb := range subs {
		cb(acct)
	}
}
