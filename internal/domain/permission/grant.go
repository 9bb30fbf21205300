package permission

import (
	"fmt"

	vo "github.com/reque-io/reque/internal/domain/permission/value_objects"
	"github.com/reque-io/reque/internal/shared/authorization"
)

// Grant is one role -> resource -> action triple. Grants are declared in the
// policy bootstrap file and mirrored into the policy store; they carry no
// database identity of their own.
type Grant struct {
	role     authorization.UserRole
	resource vo.Resource
	action   vo.Action
}

func NewGrant(role, resource, action string) (*Grant, error) {
	r := authorization.UserRole(role)
	if !r.IsValid() {
		return nil, fmt.Errorf("unknown role: %s", role)
	}

	res, err := vo.NewResource(resource)
	if err != nil {
		return nil, err
	}

	act, err := vo.NewAction(action)
	if err != nil {
		return nil, err
	}

	return &Grant{role: r, resource: res, action: act}, nil
}

func (g *Grant) Role() authorization.UserRole {
	return g.role
}

func (g *Grant) Resource() vo.Resource {
	return g.resource
}

func (g *Grant) Action() vo.Action {
	return g.action
}

// Code is the compact resource:action form used in logs and API responses.
func (g *Grant) Code() string {
	return fmt.Sprintf("%s:%s", g.resource, g.action)
}

// Rule is the triple in the order the policy store expects.
func (g *Grant) Rule() []string {
	return []string{g.role.String(), g.resource.String(), g.action.String()}
}
