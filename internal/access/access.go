// Package access holds the single permission table for the whole API.
// Authorization used to be the scattered concern of every dashboard route;
// here it is one lookup keyed by (role, status, action), evaluated fresh on
// every request with no hidden state.
package access

import "github.com/starboy1402/garments-tracker-api/internal/users"

type Action string

const (
	PlaceOrder      Action = "place-order"
	CancelOwnOrder  Action = "cancel-own-order"
	ViewOwnOrders   Action = "view-own-orders"
	ManageProducts  Action = "manage-products"
	ReviewOrders    Action = "review-orders"
	TrackProduction Action = "track-production"
	ManageUsers     Action = "manage-users"
	ToggleHome      Action = "toggle-home"
	ViewAllOrders   Action = "view-all-orders"
	ViewAnalytics   Action = "view-analytics"
)

type rule struct {
	roles           map[users.Role]bool
	requireApproved bool
}

func roles(rs ...users.Role) map[users.Role]bool {
	m := make(map[users.Role]bool, len(rs))
	for _, r := range rs {
		m[r] = true
	}
	return m
}

var table = map[Action]rule{
	// Ordering is the one action gated on approval state as well as role: a
	// pending or suspended account can browse but never transact.
	PlaceOrder:     {roles: roles(users.RoleBuyer), requireApproved: true},
	CancelOwnOrder: {roles: roles(users.RoleBuyer)},
	ViewOwnOrders:  {roles: roles(users.RoleBuyer)},

	ManageProducts:  {roles: roles(users.RoleManager, users.RoleAdmin)},
	ReviewOrders:    {roles: roles(users.RoleManager, users.RoleAdmin)},
	TrackProduction: {roles: roles(users.RoleManager, users.RoleAdmin)},

	ManageUsers:   {roles: roles(users.RoleAdmin)},
	ToggleHome:    {roles: roles(users.RoleAdmin)},
	ViewAllOrders: {roles: roles(users.RoleAdmin)},
	ViewAnalytics: {roles: roles(users.RoleAdmin)},
}

// Can reports whether a user with the given role and approval status may
// perform the action. Unknown actions are denied.
func Can(role users.Role, status users.Status, a Action) bool {
	r, ok := table[a]
	if !ok || !r.roles[role] {
		return false
	}
	if r.requireApproved && status != users.StatusApproved {
		return false
	}
	return true
}
