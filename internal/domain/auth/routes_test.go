package auth

import "testing"

func TestCanAccessRoute(t *testing.T) {
	cases := []struct {
		route string
		role  Role
		want  bool
	}{
		{RouteEmployees, RoleAdmin, true},
		{RouteEmployees, RoleHRManager, true},
		{RouteEmployees, RoleEmployee, false},
		{RouteEmployees, RoleTeamLead, false},
		{RouteAttendance, RoleEmployee, true},
		{RouteAttendance, RoleTeamLead, true},
		{RouteLeave, RoleEmployee, true},
		{RouteLeave, RoleHRManager, true},
		{RouteTasks, RoleEmployee, true},
		{RouteTasks, RoleTeamLead, true},
		{RouteSettings, RoleEmployee, true},
		{RouteProfile, RoleEmployee, true},
		{RouteProfile, RoleAdmin, false},
	}

	for _, tc := range cases {
		if got := CanAccessRoute(tc.route, tc.role); got != tc.want {
			t.Fatalf("CanAccessRoute(%s, %s) = %v, want %v", tc.route, tc.role, got, tc.want)
		}
	}
}

func TestUnknownRouteDenied(t *testing.T) {
	for _, role := range Roles() {
		if CanAccessRoute("/payroll", role) {
			t.Fatalf("unmapped route should be denied for %s", role)
		}
	}
}

func TestUnknownRoleDeniedEverywhere(t *testing.T) {
	for route := range routePermissions {
		if CanAccessRoute(route, Role("guest")) {
			t.Fatalf("unknown role should be denied route %s", route)
		}
	}
}

func TestAccessibleRoutes(t *testing.T) {
	routes := AccessibleRoutes(RoleEmployee)
	want := map[string]bool{
		RouteDashboard:  true,
		RouteAttendance: true,
		RouteLeave:      true,
		RouteTasks:      true,
		RouteReports:    true,
		RouteSettings:   true,
		RouteProfile:    true,
	}
	if len(routes) != len(want) {
		t.Fatalf("employee routes = %v", routes)
	}
	for _, route := range routes {
		if !want[route] {
			t.Fatalf("unexpected employee route %s", route)
		}
	}
}
