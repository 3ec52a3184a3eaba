package policy

import "fmt"

// Actor is the authenticated principal (or the anonymous zero value) a
// request acts as.
type Actor struct {
	ID            string
	Authenticated bool
	IsAdmin       bool
	IsSuperuser   bool
	IsPlayer      bool
}

// Anonymous is the actor for unauthenticated requests.
var Anonymous = Actor{}

type Action string

const (
	ActionCreate             Action = "create"
	ActionRead               Action = "read"
	ActionUpdate             Action = "update"
	ActionDelete             Action = "delete"
	ActionLogin              Action = "login"
	ActionToggleSubscription Action = "toggle_subscription"
)

type Resource string

const (
	ResourceUser        Resource = "user"
	ResourceTeam        Resource = "team"
	ResourceLeague      Resource = "league"
	ResourceSeason      Resource = "season"
	ResourceMatch       Resource = "match"
	ResourcePlayerStats Resource = "player_stats"
	ResourceTeamStats   Resource = "team_stats"
)

// Decision is the outcome of an authorization check. A deny always carries
// a reason suitable for the response body.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(format string, args ...any) Decision {
	return Decision{Allowed: false, Reason: fmt.Sprintf(format, args...)}
}

// Authorize evaluates whether an actor may perform an action on a resource
// kind. Rules are checked in order; the first match decides.
func Authorize(actor Actor, action Action, resource Resource) Decision {
	// 1. Anonymous actors may only register, log in, or read leagues.
	if !actor.Authenticated {
		if action == ActionLogin {
			return allow()
		}
		if action == ActionCreate && resource == ResourceUser {
			return allow()
		}
		if action == ActionRead && resource == ResourceLeague {
			return allow()
		}
		return deny("authentication required")
	}

	// 2. Subscription toggling is reserved for superusers.
	if action == ActionToggleSubscription {
		if actor.IsSuperuser {
			return allow()
		}
		return deny("only superusers may change subscriptions")
	}

	// 3. Deletes are reserved for superusers.
	if action == ActionDelete {
		if actor.IsSuperuser {
			return allow()
		}
		return deny("only superusers may delete %s records", resource)
	}

	// 4. Leagues are world-readable but superuser-writable.
	if resource == ResourceLeague && (action == ActionCreate || action == ActionUpdate) {
		if actor.IsSuperuser {
			return allow()
		}
		return deny("only superusers may modify leagues")
	}

	// 5. Everything else is open to authenticated users.
	return allow()
}
