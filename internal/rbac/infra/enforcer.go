package infra

import "github.com/casbin/casbin/v2"

// NewEnforcer loads the RBAC model only; grouping and permission policies
// are fed per tenant by rbac.Service.LoadCompanyPolicy.
func NewEnforcer(modelPath string) (*casbin.Enforcer, error) {
	return casbin.NewEnforcer(modelPath)
}
