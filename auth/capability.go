package auth

// Capability is the authorization outcome for one mutating request, computed
// once and passed down instead of re-reading claims per check.
type Capability int

const (
	CapabilityNone Capability = iota
	CapabilityOwner
	CapabilityAdmin
)

// Authorize resolves the capability of an actor against a resource owner.
// Admin wins over ownership so admin actions skip the owner-scoped delete.
func Authorize(actorRole string, actorID, ownerID string) Capability {
	if actorRole == RoleAdmin {
		return CapabilityAdmin
	}
	if actorID != "" && actorID == ownerID {
		return CapabilityOwner
	}
	return CapabilityNone
}
