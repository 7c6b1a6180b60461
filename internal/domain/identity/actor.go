package identity

// Capabilities are the two escalating capability tiers checked by workflow
// guards. Admin implies volunteer-level access.
type Capabilities struct {
	IsVolunteer bool
	IsAdmin     bool
}

// Actor is the acting identity for a single operation. It is threaded
// explicitly through every use case command; no ambient current-user state
// exists anywhere in the engine.
type Actor struct {
	UserID            uint
	SupportIdentityID uint
	Name              string
	Email             string
	Capabilities      Capabilities
}

// IsAuthenticated reports whether the actor is backed by a logged-in user.
func (a Actor) IsAuthenticated() bool {
	return a.UserID != 0
}

// IsVolunteer reports whether the actor holds at least volunteer capability.
func (a Actor) IsVolunteer() bool {
	return a.Capabilities.IsVolunteer || a.Capabilities.IsAdmin
}

// IsAdmin reports whether the actor holds admin capability.
func (a Actor) IsAdmin() bool {
	return a.Capabilities.IsAdmin
}
