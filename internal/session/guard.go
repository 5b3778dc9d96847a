package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/xavierca1/coachflow/internal/usecase"
)

// OnboardingPath is where a caller without a business profile is sent.
const OnboardingPath = "/business-onboarding"

type ProfileLookup interface {
	Completed(ctx context.Context, p usecase.Principal) (bool, error)
}

type Decision int

const (
	Allow Decision = iota
	RequireAuth
	RequireOnboarding
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RequireAuth:
		return "require_auth"
	case RequireOnboarding:
		return "require_onboarding"
	}
	return "unknown"
}

// Guard decides per request whether a session may reach a path. The
// profile is looked up on every request; only positive answers are cached,
// for ttl, so a profile completed elsewhere is seen on the next request.
type Guard struct {
	lookup ProfileLookup
	exempt map[string]bool
	ttl    time.Duration
	log    zerolog.Logger
	now    func() time.Time

	mu    sync.Mutex
	ready map[string]time.Time
}

func NewGuard(lookup ProfileLookup, ttl time.Duration, log zerolog.Logger, exemptPaths ...string) *Guard {
	exempt := make(map[string]bool, len(exemptPaths))
	for _, p := range exemptPaths {
		exempt[p] = true
	}
	return &Guard{
		lookup: lookup,
		exempt: exempt,
		ttl:    ttl,
		log:    log,
		now:    time.Now,
		ready:  make(map[string]time.Time),
	}
}

// Resolve advances an authenticated session to OnboardingIncomplete or
// Ready. A failed lookup leaves it Authenticated and returns the error.
func (g *Guard) Resolve(ctx context.Context, s Session) (Session, error) {
	if !s.IsAuthenticated() {
		return Anonymous(), nil
	}
	if g.cachedReady(s.UserID) {
		s.State = Ready
		return s, nil
	}

	done, err := g.lookup.Completed(ctx, s.Principal())
	if err != nil {
		s.State = Authenticated
		return s, err
	}
	if !done {
		s.State = OnboardingIncomplete
		return s, nil
	}
	g.MarkReady(s.UserID)
	s.State = Ready
	return s, nil
}

// Decide resolves the session and applies the policy for path. When the
// profile lookup fails the request is let through so a flaky backend never
// locks users out of their dashboard.
func (g *Guard) Decide(ctx context.Context, path string, s Session) (Session, Decision) {
	if !s.IsAuthenticated() {
		return Anonymous(), RequireAuth
	}

	resolved, err := g.Resolve(ctx, s)
	if err != nil {
		g.log.Warn().Err(err).Str("user_id", s.UserID).Msg("onboarding check failed, allowing request")
		return resolved, Allow
	}
	if g.exempt[path] || resolved.State == Ready {
		return resolved, Allow
	}
	return resolved, RequireOnboarding
}

// MarkReady records that userID finished onboarding.
func (g *Guard) MarkReady(userID string) {
	if g.ttl <= 0 {
		return
	}
	g.mu.Lock()
	g.ready[userID] = g.now().Add(g.ttl)
	g.mu.Unlock()
}

func (g *Guard) cachedReady(userID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	exp, ok := g.ready[userID]
	if !ok {
		return false
	}
	if !g.now().Before(exp) {
		delete(g.ready, userID)
		return false
	}
	return true
}

// Sweep forgets expired ready entries and returns how many it dropped.
func (g *Guard) Sweep() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()
	n := 0
	for userID, exp := range g.ready {
		if !now.Before(exp) {
			delete(g.ready, userID)
			n++
		}
	}
	return n
}
