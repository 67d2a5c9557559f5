package hostauth

// UserIdentity adapts a User row into the Identity and UserRecord interfaces.
type UserIdentity struct {
	user *User
}

// NewIdentityFromUser returns a UserRecord adapter for the provided user.
func NewIdentityFromUser(user *User) UserRecord {
	if user == nil {
		return nil
	}
	return UserIdentity{user: user}
}

// ID returns the user's numeric host ID.
func (u UserIdentity) ID() int64 {
	if u.user == nil {
		return 0
	}
	return u.user.ID
}

// Login returns the user's login name.
func (u UserIdentity) Login() string {
	if u.user == nil {
		return ""
	}
	return u.user.UserLogin
}

// DisplayName returns the user's display name, falling back to the login.
func (u UserIdentity) DisplayName() string {
	if u.user == nil {
		return ""
	}
	if u.user.DisplayName != "" {
		return u.user.DisplayName
	}
	return u.user.UserLogin
}

// Email returns the user's email address.
func (u UserIdentity) Email() string {
	if u.user == nil {
		return ""
	}
	return u.user.Email
}

// PasswordHash returns the stored password hash.
func (u UserIdentity) PasswordHash() string {
	if u.user == nil {
		return ""
	}
	return u.user.PasswordHash
}

var _ UserRecord = (*UserIdentity)(nil)
