package identity

import "context"

type Repository interface {
	Save(ctx context.Context, si *SupportIdentity) error
	Update(ctx context.Context, si *SupportIdentity) error
	GetByID(ctx context.Context, id uint) (*SupportIdentity, error)
	// GetByName matches the identity name exactly (case-sensitive).
	GetByName(ctx context.Context, name string) (*SupportIdentity, error)
	GetByUserID(ctx context.Context, userID uint) (*SupportIdentity, error)
}

// CapabilityOracle resolves capability flags for an acting identity. The
// actual authentication layer is an external collaborator; the workflow core
// only consumes this query interface.
type CapabilityOracle interface {
	Capabilities(ctx context.Context, userID uint) (Capabilities, error)
	// FallbackAdminActor returns an administrative actor used when a commit
	// author has no registered user to act as.
	FallbackAdminActor(ctx context.Context) (Actor, error)
}
