// Package session resolves who is calling and whether they may use the
// dashboard yet.
package session

import (
	"context"

	"github.com/xavierca1/coachflow/internal/usecase"
)

// State is where a caller is in the session lifecycle:
//
//	Unauthenticated -> Authenticated -> OnboardingIncomplete -> Ready
//
// Sign-out is the client dropping its token, which puts the next request
// back at Unauthenticated.
type State string

const (
	Unauthenticated      State = "unauthenticated"
	Authenticated        State = "authenticated"
	OnboardingIncomplete State = "onboarding_incomplete"
	Ready                State = "ready"
)

type Session struct {
	UserID      string `json:"user_id,omitempty"`
	Email       string `json:"email,omitempty"`
	AccessToken string `json:"-"`
	State       State  `json:"state"`
}

func Anonymous() Session {
	return Session{State: Unauthenticated}
}

func (s Session) Principal() usecase.Principal {
	return usecase.Principal{UserID: s.UserID, Email: s.Email, AccessToken: s.AccessToken}
}

func (s Session) IsAuthenticated() bool {
	return s.State != Unauthenticated && s.UserID != ""
}

type ctxKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the request's session, or an anonymous one.
func FromContext(ctx context.Context) Session {
	if s, ok := ctx.Value(ctxKey{}).(Session); ok {
		return s
	}
	return Anonymous()
}
