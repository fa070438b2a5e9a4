// Package store holds the session and task state shared by dashboard
// handlers. Each store is an observable container driven by a pure reducer.
package store

import (
	"context"
	"sync"

	"github.com/intellixel001/suvashpanel/internal/apiclient"
)

// Status is the fetch lifecycle of a store.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// Kind identifies an action.
type Kind string

const (
	KindPending   Kind = "pending"
	KindFulfilled Kind = "fulfilled"
	KindRejected  Kind = "rejected"
	KindSetUser   Kind = "set_user"
	KindLogout    Kind = "logout"
)

// Reducer computes the next state. It must not modify its inputs.
type Reducer[S any, A any] func(state S, action A) S

// Store serialises dispatches and notifies listeners after each one.
type Store[S any, A any] struct {
	mu        sync.RWMutex
	state     S
	reduce    Reducer[S, A]
	listeners []listener[S]
	nextID    int
}

type listener[S any] struct {
	id int
	fn func(S)
}

// New builds a Store holding initial.
func New[S any, A any](initial S, reduce Reducer[S, A]) *Store[S, A] {
	return &Store[S, A]{state: initial, reduce: reduce}
}

// GetState returns the current state.
func (s *Store[S, A]) GetState() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies action and returns the resulting state. Listeners run
// after the lock is released.
func (s *Store[S, A]) Dispatch(action A) S {
	s.mu.Lock()
	next := s.reduce(s.state, action)
	s.state = next
	listeners := make([]listener[S], len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l.fn(next)
	}
	return next
}

// Subscribe registers fn for every future state. The returned func removes it.
func (s *Store[S, A]) Subscribe(fn func(S)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener[S]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, l := range s.listeners {
				if l.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// Getter is the part of the API client the stores need.
type Getter interface {
	Get(ctx context.Context, path string) (apiclient.Payload, error)
}
