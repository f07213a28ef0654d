package enum

import "net/http"

// Action names an operation selected by the "action" query parameter.
type Action string

const (
	ActionNone                Action = ""
	ActionCreate              Action = "create"
	ActionUpdate              Action = "update"
	ActionDelete              Action = "delete"
	ActionStatus              Action = "status"
	ActionAssign              Action = "assign"
	ActionAssignFabricators   Action = "assign-fabricators"
	ActionAssignDistributors  Action = "assign-distributors"
	ActionUnassignFabricator  Action = "unassign-fabricator"
	ActionUnassignDistributor Action = "unassign-distributor"
)

// ActionSet declares, per HTTP verb, which actions a resource accepts.
// ActionNone in a verb's list means the action parameter may be omitted.
type ActionSet map[string][]Action

// Resolve returns the action for verb or false when the pair is not declared
func (s ActionSet) Resolve(verb, raw string) (Action, bool) {
	for _, a := range s[verb] {
		if string(a) == raw {
			return a, true
		}
	}
	return "", false
}

// Pairs enumerates every declared (verb, action) pair
func (s ActionSet) Pairs() [][2]string {
	var out [][2]string
	for _, verb := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		for _, a := range s[verb] {
			out = append(out, [2]string{verb, string(a)})
		}
	}
	return out
}

var (
	FabricatorAdminActions = ActionSet{
		http.MethodPatch:  {ActionStatus, ActionAssign, ActionUpdate},
		http.MethodDelete: {ActionDelete},
	}

	MarketingRepActions = ActionSet{
		http.MethodPost:   {ActionCreate, ActionAssignFabricators, ActionAssignDistributors},
		http.MethodDelete: {ActionDelete, ActionUnassignFabricator, ActionUnassignDistributor},
	}
)
