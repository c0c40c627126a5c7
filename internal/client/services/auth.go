// Package services contains application services for the Tshwane Transit
// client. This file defines the authentication service: sign-in, sign-up,
// sign-out and the startup restore of a persisted session.
package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/GiftMothusi/tshwane-transit-cli/internal/client/api"
	"github.com/GiftMothusi/tshwane-transit-cli/internal/client/models"
	"github.com/GiftMothusi/tshwane-transit-cli/internal/client/session"
	"github.com/GiftMothusi/tshwane-transit-cli/internal/logging"
)

// AuthService drives the session lifecycle.
//
// Contract:
//   - Restore: resume a previously persisted session without user
//     interaction; called exactly once at startup, never fails visibly.
//   - SignIn/SignUp: authenticate against the server, persist the session,
//     then update in-memory state. On failure the prior session, if any,
//     is left untouched.
//   - SignOut: terminate the local session unconditionally; the remote
//     invalidation call is best-effort and its failure is never surfaced.
//
// Session-mutating operations are serialized, so overlapping calls from the
// UI cannot interleave their storage and state updates.
type AuthService interface {
	Restore(ctx context.Context)
	SignIn(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, reg api.Registration) error
	SignOut(ctx context.Context)
	IsAuthenticated() bool
	CurrentUser() *models.UserProfile
}

type authService struct {
	client api.Client
	store  *session.Store
	logger logging.Logger

	// serializes Restore/SignIn/SignUp/SignOut
	mu sync.Mutex
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store.
func NewAuthService(client api.Client, store *session.Store, logger logging.Logger) AuthService {
	return &authService{client: client, store: store, logger: logger}
}

// Restore reads the persisted session. If a complete record is found, the
// credential is attached to future requests and the state becomes
// authenticated; otherwise the state stays anonymous. Either way the
// restoring flag is lowered before returning.
func (a *authService) Restore(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	defer a.store.EndRestore()

	profile, credential := a.store.Load(ctx)
	if profile == nil || credential == "" {
		a.logger.Info(ctx, "no stored session found")
		return
	}

	a.client.SetCredential(credential)
	a.store.SetSession(profile, credential)
	a.logger.Info(ctx, "restored stored session", "user_id", profile.ID)
}

// SignIn exchanges credentials for a session. The session is persisted
// before the in-memory state is updated; a persistence failure fails the
// whole call so memory and storage cannot diverge across a restart.
func (a *authService) SignIn(ctx context.Context, email, password string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	profile, token, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	return a.adoptSession(ctx, profile, token)
}

// SignUp creates an account and signs in with the issued session. The caller
// is responsible for checking that the password confirmation matches; the
// server re-validates in any case.
func (a *authService) SignUp(ctx context.Context, reg api.Registration) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	profile, token, err := a.client.Register(ctx, reg)
	if err != nil {
		return err
	}

	return a.adoptSession(ctx, profile, token)
}

func (a *authService) adoptSession(ctx context.Context, profile *models.UserProfile, token string) error {
	if err := a.store.Save(ctx, profile, token); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	a.client.SetCredential(token)
	a.store.SetSession(profile, token)
	a.logger.Info(ctx, "signed in", "user_id", profile.ID)
	return nil
}

// SignOut terminates the session. Local state and storage are cleared no
// matter what the server says: the remote invalidation call is made with the
// credential still attached, and any failure is logged and swallowed so the
// user is never stuck authenticated without connectivity.
func (a *authService) SignOut(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.store.Clear(ctx); err != nil {
		a.logger.Warn(ctx, "clearing stored session failed", "error", err)
	}

	if err := a.client.Logout(ctx); err != nil {
		a.logger.Warn(ctx, "remote logout failed, local session is terminated anyway", "error", err)
	}

	a.client.ClearCredential()
	a.store.ClearSession()
	a.logger.Info(ctx, "signed out")
}

// IsAuthenticated reports whether a user is currently signed in.
func (a *authService) IsAuthenticated() bool {
	return a.store.Current().IsAuthenticated()
}

// CurrentUser returns the signed-in user's profile, or nil.
func (a *authService) CurrentUser() *models.UserProfile {
	return a.store.Current().Profile
}
