package app

import (
	"context"

	"sidekick/internal/sidekick"
)

// Session is the document store of the signed-in user. A new Session is
// created whenever the identity changes, so the store is always keyed to
// the current user.
type Session struct {
	UserID string // empty for the guest session
	Store  *sidekick.DocumentStore
}

// Key returns the storage key of the session's document.
func (s *Session) Key() string { return s.Store.Key() }

// Guest reports whether no user is signed in.
func (s *Session) Guest() bool { return s.UserID == "" }

// documentKey picks the key for userID. Single-user installations keep the
// legacy unscoped key whatever the identity.
func (a *SidekickApp) documentKey(userID string) string {
	if a.cfg.SingleUser {
		return sidekick.LegacyStorageKey
	}
	return sidekick.StorageKey(userID)
}

// SignIn opens the document of userID and makes it the current session.
// The previous session is dropped; its last state is already persisted.
func (a *SidekickApp) SignIn(ctx context.Context, userID string) *Session {
	key := a.documentKey(userID)
	a.session = &Session{
		UserID: userID,
		Store:  sidekick.NewDocumentStore(ctx, a.storage, a.logger, key),
	}
	a.logger.Info("session started", "user", userID, "key", key)
	return a.session
}

// SignOut returns to the guest session.
func (a *SidekickApp) SignOut(ctx context.Context) *Session {
	a.logger.Info("session ended", "user", a.session.UserID)
	return a.SignIn(ctx, "")
}

// Session returns the current session.
func (a *SidekickApp) Session() *Session { return a.session }
