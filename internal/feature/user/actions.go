package user

import "github.com/comixed/comixed-client/internal/domain"

// LoadCurrentUser requests the authenticated user.
type LoadCurrentUser struct{}

// CurrentUserLoaded carries the user.
type CurrentUserLoaded struct {
	User domain.User
}

// LoadCurrentUserFailed reports a failed load. The user is treated as
// logged out.
type LoadCurrentUserFailed struct {
	Err error
}

// SaveUserPreference stores one preference.
type SaveUserPreference struct {
	Name  string
	Value string
}

// SaveUserPreferenceFailed reports a failed save.
type SaveUserPreferenceFailed struct {
	Name string
	Err  error
}

// LogoutUser forgets the current user locally.
type LogoutUser struct{}

func (LoadCurrentUser) Type() string          { return "[User] load current user" }
func (CurrentUserLoaded) Type() string        { return "[User] current user loaded" }
func (LoadCurrentUserFailed) Type() string    { return "[User] load current user failed" }
func (SaveUserPreference) Type() string       { return "[User] save preference" }
func (SaveUserPreferenceFailed) Type() string { return "[User] save preference failed" }
func (LogoutUser) Type() string               { return "[User] logout" }
