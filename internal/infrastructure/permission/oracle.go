package permission

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/cesy/support-board/internal/domain/identity"
	"github.com/cesy/support-board/internal/shared/logger"
)

const (
	RoleVolunteer = "support_volunteer"
	RoleAdmin     = "support_admin"

	resourceTickets = "code_tickets"
	actionWorkflow  = "workflow"
	actionAdmin     = "admin"
)

// rbacModel is the embedded casbin model: role-based with role inheritance,
// so granting support_admin implies support_volunteer.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

var _ identity.CapabilityOracle = (*Oracle)(nil)

// Oracle answers capability questions for acting users and provides the
// fallback administrative actor used by commit auto-linking.
type Oracle struct {
	enforcer         *casbin.Enforcer
	identities       identity.Repository
	directory        UserDirectory
	fallbackIdentity string
	mu               sync.RWMutex
	logger           logger.Interface
}

// UserDirectory resolves a user's email address for the fallback actor.
type UserDirectory interface {
	EmailForUser(ctx context.Context, userID uint) (string, error)
}

func NewOracle(
	db *gorm.DB,
	identities identity.Repository,
	directory UserDirectory,
	fallbackIdentity string,
	log logger.Interface,
) (*Oracle, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := casbinmodel.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	o := &Oracle{
		enforcer:         enforcer,
		identities:       identities,
		directory:        directory,
		fallbackIdentity: fallbackIdentity,
		logger:           log,
	}
	if err := o.seedRolePolicies(); err != nil {
		return nil, err
	}
	return o, nil
}

// seedRolePolicies installs the two role grants and the admin-implies-
// volunteer inheritance. Idempotent.
func (o *Oracle) seedRolePolicies() error {
	if _, err := o.enforcer.AddPolicy(RoleVolunteer, resourceTickets, actionWorkflow); err != nil {
		return fmt.Errorf("failed to seed volunteer policy: %w", err)
	}
	if _, err := o.enforcer.AddPolicy(RoleAdmin, resourceTickets, actionAdmin); err != nil {
		return fmt.Errorf("failed to seed admin policy: %w", err)
	}
	if _, err := o.enforcer.AddGroupingPolicy(RoleAdmin, RoleVolunteer); err != nil {
		return fmt.Errorf("failed to seed role inheritance: %w", err)
	}
	return o.enforcer.SavePolicy()
}

func (o *Oracle) Capabilities(ctx context.Context, userID uint) (identity.Capabilities, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	sub := strconv.FormatUint(uint64(userID), 10)

	volunteer, err := o.enforcer.Enforce(sub, resourceTickets, actionWorkflow)
	if err != nil {
		o.logger.Errorw("capability check failed", "user_id", userID, "error", err)
		return identity.Capabilities{}, fmt.Errorf("capability check failed: %w", err)
	}
	admin, err := o.enforcer.Enforce(sub, resourceTickets, actionAdmin)
	if err != nil {
		o.logger.Errorw("capability check failed", "user_id", userID, "error", err)
		return identity.Capabilities{}, fmt.Errorf("capability check failed: %w", err)
	}

	return identity.Capabilities{IsVolunteer: volunteer, IsAdmin: admin}, nil
}

// FallbackAdminActor returns the administrative actor used when a commit
// author has no registered user to act as.
func (o *Oracle) FallbackAdminActor(ctx context.Context) (identity.Actor, error) {
	ident, err := o.identities.GetByName(ctx, o.fallbackIdentity)
	if err != nil {
		return identity.Actor{}, fmt.Errorf("fallback admin identity %q: %w", o.fallbackIdentity, err)
	}

	actor := identity.Actor{
		SupportIdentityID: ident.ID(),
		Name:              ident.Name(),
		Capabilities:      identity.Capabilities{IsVolunteer: true, IsAdmin: true},
	}
	if userID := ident.UserID(); userID != nil {
		actor.UserID = *userID
		if email, err := o.directory.EmailForUser(ctx, *userID); err == nil {
			actor.Email = email
		}
	}
	return actor, nil
}

// GrantRole assigns a role to a user. Used by the admin CLI.
func (o *Oracle) GrantRole(userID uint, role string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	sub := strconv.FormatUint(uint64(userID), 10)
	if _, err := o.enforcer.AddRoleForUser(sub, role); err != nil {
		return fmt.Errorf("failed to grant role: %w", err)
	}
	return o.enforcer.SavePolicy()
}

// RevokeRole removes a role from a user. Used by the admin CLI.
func (o *Oracle) RevokeRole(userID uint, role string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	sub := strconv.FormatUint(uint64(userID), 10)
	if _, err := o.enforcer.DeleteRoleForUser(sub, role); err != nil {
		return fmt.Errorf("failed to revoke role: %w", err)
	}
	return o.enforcer.SavePolicy()
}
