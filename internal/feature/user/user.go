// Package user tracks the authenticated user and their preferences.
package user

import (
	"context"

	"github.com/comixed/comixed-client/internal/domain"
	"github.com/comixed/comixed-client/pkg/effect"
	"github.com/comixed/comixed-client/pkg/store"
)

// FeatureKey names the slice.
const FeatureKey = "user"

// State is the user slice. Initializing stays true until the first load
// finishes either way.
type State struct {
	Busy          bool
	Initializing  bool
	Authenticated bool
	User          *domain.User
}

// Feature registers the slice with a store.
var Feature = store.Feature[*State]{
	Key:     FeatureKey,
	Initial: func() *State { return &State{Initializing: true} },
	Reduce:  reduce,
}

func reduce(s *State, action store.Action) *State {
	switch a := action.(type) {
	case LoadCurrentUser, SaveUserPreference:
		next := *s
		next.Busy = true
		return &next
	case CurrentUserLoaded:
		u := a.User
		return &State{Authenticated: true, User: &u}
	case LoadCurrentUserFailed:
		return &State{}
	case SaveUserPreferenceFailed:
		next := *s
		next.Busy = false
		return &next
	case LogoutUser:
		return &State{}
	}
	return s
}

var (
	// SelectState returns the whole slice.
	SelectState = store.Select(Feature, func(s *State) *State { return s })

	// SelectUser returns the current user, or nil.
	SelectUser = store.Select(Feature, func(s *State) *domain.User { return s.User })

	// SelectIsAdmin reports whether the current user is an administrator.
	SelectIsAdmin = store.Derive(SelectUser, func(u *domain.User) bool { return u != nil && u.IsAdmin() })
)

// Preference returns the current user's preference or def.
func Preference(st store.State, name, def string) string {
	u := SelectUser.Get(st)
	if u == nil {
		return def
	}
	return u.Preference(name, def)
}

// Message keys.
const (
	KeyLoadFailed           = "user.load-failed"
	KeySavePreferenceFailed = "user.save-preference-failed"
)

// Service is the user REST surface.
type Service interface {
	LoadCurrentUser(ctx context.Context) (domain.User, error)
	SaveUserPreference(ctx context.Context, name, value string) (domain.User, error)
}

// Effects returns the user pipelines bound to svc.
func Effects(svc Service) []effect.Effect {
	return []effect.Effect{
		&effect.Pipeline[LoadCurrentUser, domain.User]{
			Operation: "load-current-user",
			Call: func(ctx context.Context, _ LoadCurrentUser) (domain.User, error) {
				return svc.LoadCurrentUser(ctx)
			},
			Success: func(_ LoadCurrentUser, u domain.User) store.Action { return CurrentUserLoaded{User: u} },
			Failure: func(_ LoadCurrentUser, err error) store.Action {
				return LoadCurrentUserFailed{Err: err}
			},
			AlertKey: KeyLoadFailed,
		},
		&effect.Pipeline[SaveUserPreference, domain.User]{
			Operation: "save-user-preference",
			Call: func(ctx context.Context, a SaveUserPreference) (domain.User, error) {
				return svc.SaveUserPreference(ctx, a.Name, a.Value)
			},
			Success: func(_ SaveUserPreference, u domain.User) store.Action { return CurrentUserLoaded{User: u} },
			Failure: func(a SaveUserPreference, err error) store.Action {
				return SaveUserPreferenceFailed{Name: a.Name, Err: err}
			},
			AlertKey:    KeySavePreferenceFailed,
			AlertParams: func(a SaveUserPreference) map[string]any { return map[string]any{"name": a.Name} },
		},
	}
}
