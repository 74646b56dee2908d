package auth

// Logical view identifiers used by the route guard.
const (
	RouteDashboard  = "/dashboard"
	RouteEmployees  = "/employees"
	RouteAttendance = "/attendance"
	RouteLeave      = "/leave"
	RouteTasks      = "/tasks"
	RouteReports    = "/reports"
	RouteSettings   = "/settings"
	RouteProfile    = "/profile"
)

// routePermissions maps each route to the tokens sufficient to enter it; any
// one token grants access. Routes absent from the map are denied, matching
// the fail-closed permission checker rather than allowing by default.
var routePermissions = map[string][]string{
	RouteDashboard:  {PermEmployeeView, PermAttendanceView, PermReportsAll, PermReportsHR, PermReportsTeam, PermReportsOwn},
	RouteEmployees:  {PermEmployeeView, PermEmployeeAdd, PermEmployeeEdit},
	RouteAttendance: {PermAttendanceView, PermAttendanceViewTeam, PermAttendanceMarkOwn},
	RouteLeave:      {PermLeaveFullControl, PermLeaveApproveReject, PermLeaveApproveTeam, PermLeaveApply},
	RouteTasks:      {PermEmployeeView, PermReportsTeam, PermReportsOwn},
	RouteReports:    {PermReportsAll, PermReportsHR, PermReportsTeam, PermReportsOwn},
	RouteSettings:   {PermThemeSystem, PermThemeHR, PermThemeSelf},
	RouteProfile:    {PermEmployeeEditOwn},
}

// CanAccessRoute reports whether the role may enter the given logical view.
// Unknown routes and unknown roles are denied.
func CanAccessRoute(routeID string, role Role) bool {
	required, ok := routePermissions[routeID]
	if !ok {
		return false
	}
	return NewChecker(role).HasAny(required...)
}

// AccessibleRoutes returns the routes the role may enter, used to build
// navigation entries.
func AccessibleRoutes(role Role) []string {
	ordered := []string{
		RouteDashboard,
		RouteEmployees,
		RouteAttendance,
		RouteLeave,
		RouteTasks,
		RouteReports,
		RouteSettings,
		RouteProfile,
	}
	var out []string
	for _, route := range ordered {
		if CanAccessRoute(route, role) {
			out = append(out, route)
		}
	}
	return out
}
