package permission

import (
	"fmt"

	"github.com/kimono-rental/kimono/internal/shared/constants"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

// Resources and actions checked by the HTTP layer.
const (
	ResourcePlan        = "plan"
	ResourceTag         = "tag"
	ResourceTagCategory = "tag_category"

	ActionRead   = "read"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// DefaultPolicies is the built-in permission set. Admins inherit merchant
// permissions on top of their own.
var DefaultPolicies = [][]string{
	{constants.RoleMerchant, ResourcePlan, ActionRead},
	{constants.RoleMerchant, ResourcePlan, ActionCreate},
	{constants.RoleMerchant, ResourcePlan, ActionUpdate},
	{constants.RoleMerchant, ResourcePlan, ActionDelete},
	{constants.RoleMerchant, ResourceTag, ActionRead},
	{constants.RoleMerchant, ResourceTagCategory, ActionRead},

	{constants.RoleAdmin, ResourceTag, "*"},
	{constants.RoleAdmin, ResourceTagCategory, "*"},
}

// InitDefaultPolicies adds any missing default policy. Existing rows are left
// alone so operators can extend the set in the database.
func InitDefaultPolicies(e *Enforcer, log logger.Interface) error {
	for _, policy := range DefaultPolicies {
		if err := e.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}
	if err := e.AddRoleInheritance(constants.RoleAdmin, constants.RoleMerchant); err != nil {
		return err
	}

	log.Infow("default permissions initialized", "policies", len(DefaultPolicies))
	return nil
}
