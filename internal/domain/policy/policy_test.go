package policy

import "testing"

func TestAuthorize(t *testing.T) {
	member := Actor{ID: "u1", Authenticated: true}
	super := Actor{ID: "root", Authenticated: true, IsSuperuser: true}

	cases := []struct {
		name     string
		actor    Actor
		action   Action
		resource Resource
		allowed  bool
	}{
		{"anonymous register", Anonymous, ActionCreate, ResourceUser, true},
		{"anonymous login", Anonymous, ActionLogin, ResourceUser, true},
		{"anonymous read league", Anonymous, ActionRead, ResourceLeague, true},
		{"anonymous read team", Anonymous, ActionRead, ResourceTeam, false},
		{"anonymous create team", Anonymous, ActionCreate, ResourceTeam, false},
		{"anonymous delete league", Anonymous, ActionDelete, ResourceLeague, false},

		{"member toggle subscription", member, ActionToggleSubscription, ResourceUser, false},
		{"superuser toggle subscription", super, ActionToggleSubscription, ResourceUser, true},

		{"member delete team", member, ActionDelete, ResourceTeam, false},
		{"member delete own user", member, ActionDelete, ResourceUser, false},
		{"superuser delete team", super, ActionDelete, ResourceTeam, true},
		{"superuser delete league", super, ActionDelete, ResourceLeague, true},

		{"member create league", member, ActionCreate, ResourceLeague, false},
		{"member update league", member, ActionUpdate, ResourceLeague, false},
		{"member read league", member, ActionRead, ResourceLeague, true},
		{"superuser create league", super, ActionCreate, ResourceLeague, true},

		{"member create team", member, ActionCreate, ResourceTeam, true},
		{"member update match", member, ActionUpdate, ResourceMatch, true},
		{"member read player stats", member, ActionRead, ResourcePlayerStats, true},
		{"member create team stats", member, ActionCreate, ResourceTeamStats, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision := Authorize(tc.actor, tc.action, tc.resource)
			if decision.Allowed != tc.allowed {
				t.Fatalf("Authorize(%+v, %s, %s) allowed=%v, want %v (reason %q)",
					tc.actor, tc.action, tc.resource, decision.Allowed, tc.allowed, decision.Reason)
			}
			if !decision.Allowed && decision.Reason == "" {
				t.Fatal("deny decision must carry a reason")
			}
		})
	}
}

func TestDenyPrecedenceOverGeneralAllow(t *testing.T) {
	admin := Actor{ID: "staff", Authenticated: true, IsAdmin: true}

	// Admin without superuser still cannot delete or toggle subscriptions.
	if d := Authorize(admin, ActionDelete, ResourceMatch); d.Allowed {
		t.Fatal("admin delete should be denied")
	}
	if d := Authorize(admin, ActionToggleSubscription, ResourceUser); d.Allowed {
		t.Fatal("admin subscription toggle should be denied")
	}
	if d := Authorize(admin, ActionCreate, ResourceMatch); !d.Allowed {
		t.Fatalf("admin create should be allowed, got %q", d.Reason)
	}
}
