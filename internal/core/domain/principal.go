package domain

// Principal is the identity a request acts as. The zero value is anonymous.
type Principal struct {
	UserID        int64
	Username      string
	Authenticated bool
}

// Anonymous returns the principal of an unauthenticated request.
func Anonymous() Principal {
	return Principal{}
}

// AuthenticatedAs returns the principal for a logged-in user.
func AuthenticatedAs(userID int64, username string) Principal {
	return Principal{UserID: userID, Username: username, Authenticated: true}
}

// Owns reports whether the principal is the authenticated owner of t.
func (p Principal) Owns(t *Task) bool {
	return p.Authenticated && t.OwnedBy(p.UserID)
}
