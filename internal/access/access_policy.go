package access

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	ResourceProduct             = "product"
	ResourceCommissionException = "commission_exception"
	ResourceCustomer            = "customer"
	ResourceSale                = "sale"
	ResourceLot                 = "lot"
	ResourceGoal                = "goal"
	ResourceUser                = "user"
	ResourceTeam                = "team"
	ResourceAudit               = "audit"
)

const (
	ActionRead   = "read"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionExport = "export"
	ActionClose  = "close"
	ActionPay    = "pay"
	ActionAttach = "attach"
	ActionAll    = "*"
)

const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && (r.act == p.act || p.act == "*")
`

// Sale rules past the route level (which track a role may move, which
// attachment kinds it may upload) are checked by the sale service.
var defaultPolicy = [][]string{
	{string(RoleSeller), ResourceProduct, ActionRead},
	{string(RoleSeller), ResourceCustomer, ActionRead},
	{string(RoleSeller), ResourceSale, ActionRead},
	{string(RoleSeller), ResourceSale, ActionCreate},
	{string(RoleSeller), ResourceSale, ActionUpdate},
	{string(RoleSeller), ResourceSale, ActionAttach},
	{string(RoleSeller), ResourceSale, ActionExport},
	{string(RoleSeller), ResourceLot, ActionRead},
	{string(RoleSeller), ResourceLot, ActionExport},
	{string(RoleSeller), ResourceGoal, ActionRead},

	{string(RoleLawyer), ResourceProduct, ActionRead},
	{string(RoleLawyer), ResourceCustomer, ActionRead},
	{string(RoleLawyer), ResourceSale, ActionRead},
	{string(RoleLawyer), ResourceSale, ActionUpdate},
	{string(RoleLawyer), ResourceSale, ActionAttach},
	{string(RoleLawyer), ResourceSale, ActionExport},
	{string(RoleLawyer), ResourceGoal, ActionRead},

	{string(RoleFinance), ResourceProduct, ActionRead},
	{string(RoleFinance), ResourceCustomer, ActionRead},
	{string(RoleFinance), ResourceSale, ActionRead},
	{string(RoleFinance), ResourceSale, ActionUpdate},
	{string(RoleFinance), ResourceSale, ActionAttach},
	{string(RoleFinance), ResourceSale, ActionExport},
	{string(RoleFinance), ResourceLot, ActionRead},
	{string(RoleFinance), ResourceLot, ActionExport},
	{string(RoleFinance), ResourceLot, ActionClose},
	{string(RoleFinance), ResourceLot, ActionPay},
	{string(RoleFinance), ResourceLot, ActionAttach},
	{string(RoleFinance), ResourceGoal, ActionRead},
	{string(RoleFinance), ResourceUser, ActionRead},

	{string(RoleManager), ResourceProduct, ActionAll},
	{string(RoleManager), ResourceCommissionException, ActionAll},
	{string(RoleManager), ResourceCustomer, ActionAll},
	{string(RoleManager), ResourceSale, ActionAll},
	{string(RoleManager), ResourceLot, ActionRead},
	{string(RoleManager), ResourceLot, ActionExport},
	{string(RoleManager), ResourceLot, ActionClose},
	{string(RoleManager), ResourceLot, ActionPay},
	{string(RoleManager), ResourceLot, ActionAttach},
	{string(RoleManager), ResourceGoal, ActionAll},
	{string(RoleManager), ResourceAudit, ActionRead},
	{string(RoleManager), ResourceUser, ActionRead},
	{string(RoleManager), ResourceTeam, ActionRead},

	{string(RoleAdmin), ResourceLot, ActionDelete},
	{string(RoleAdmin), ResourceUser, ActionAll},
	{string(RoleAdmin), ResourceTeam, ActionAll},
}

var defaultGrouping = [][]string{
	{string(RoleAdmin), string(RoleManager)},
}

// NewEnforcer builds an enforcer from the in-code model and loads the
// default role policy.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	if _, err := e.AddPolicies(defaultPolicy); err != nil {
		return nil, err
	}
	if _, err := e.AddGroupingPolicies(defaultGrouping); err != nil {
		return nil, err
	}
	return e, nil
}
