package auth

// Capability tokens, grouped by module prefix. Tokens are static: none are
// created or destroyed at runtime.
const (
	PermEmployeeView    = "employee:view"
	PermEmployeeAdd     = "employee:add"
	PermEmployeeEdit    = "employee:edit"
	PermEmployeeDelete  = "employee:delete"
	PermEmployeeEditOwn = "employee:edit_own"

	PermAttendanceView     = "attendance:view"
	PermAttendanceEdit     = "attendance:edit"
	PermAttendanceDelete   = "attendance:delete"
	PermAttendanceExport   = "attendance:export"
	PermAttendanceViewTeam = "attendance:view_team"
	PermAttendanceMarkOwn  = "attendance:mark_own"

	PermLeaveFullControl   = "leave:full_control"
	PermLeaveApproveReject = "leave:approve_reject"
	PermLeaveApproveTeam   = "leave:approve_team"
	PermLeaveApply         = "leave:apply"

	PermChatbotConfigure = "chatbot:configure"
	PermChatbotUse       = "chatbot:use"

	PermReportsAll  = "reports:all"
	PermReportsHR   = "reports:hr_org"
	PermReportsTeam = "reports:team"
	PermReportsOwn  = "reports:own"

	PermThemeSystem = "theme:system"
	PermThemeHR     = "theme:hr_panel"
	PermThemeSelf   = "theme:self"

	PermSystemDatabase     = "system:database"
	PermSystemIntegrations = "system:integrations"
	PermSystemRoles        = "system:roles"
	PermSystemLeavePolicy  = "system:leave_policy"
	PermSystemWorkingHours = "system:working_hours"
)

var DefaultPermissions = []string{
	PermEmployeeView,
	PermEmployeeAdd,
	PermEmployeeEdit,
	PermEmployeeDelete,
	PermEmployeeEditOwn,
	PermAttendanceView,
	PermAttendanceEdit,
	PermAttendanceDelete,
	PermAttendanceExport,
	PermAttendanceViewTeam,
	PermAttendanceMarkOwn,
	PermLeaveFullControl,
	PermLeaveApproveReject,
	PermLeaveApproveTeam,
	PermLeaveApply,
	PermChatbotConfigure,
	PermChatbotUse,
	PermReportsAll,
	PermReportsHR,
	PermReportsTeam,
	PermReportsOwn,
	PermThemeSystem,
	PermThemeHR,
	PermThemeSelf,
	PermSystemDatabase,
	PermSystemIntegrations,
	PermSystemRoles,
	PermSystemLeavePolicy,
	PermSystemWorkingHours,
}

// RolePermissions is the fixed role→capability table. Every role holds a
// non-empty set.
var RolePermissions = map[Role][]string{
	RoleAdmin: {
		PermEmployeeView,
		PermEmployeeAdd,
		PermEmployeeEdit,
		PermEmployeeDelete,
		PermAttendanceView,
		PermAttendanceEdit,
		PermAttendanceDelete,
		PermAttendanceExport,
		PermLeaveFullControl,
		PermChatbotConfigure,
		PermChatbotUse,
		PermReportsAll,
		PermThemeSystem,
		PermSystemDatabase,
		PermSystemIntegrations,
		PermSystemRoles,
		PermSystemLeavePolicy,
		PermSystemWorkingHours,
	},
	RoleHRManager: {
		PermEmployeeView,
		PermEmployeeAdd,
		PermEmployeeEdit,
		PermAttendanceView,
		PermAttendanceExport,
		PermLeaveApproveReject,
		PermChatbotUse,
		PermReportsHR,
		PermThemeHR,
		PermSystemLeavePolicy,
		PermSystemWorkingHours,
	},
	RoleTeamLead: {
		PermAttendanceViewTeam,
		PermLeaveApproveTeam,
		PermChatbotUse,
		PermReportsTeam,
		PermThemeSelf,
	},
	RoleEmployee: {
		PermEmployeeEditOwn,
		PermAttendanceMarkOwn,
		PermLeaveApply,
		PermChatbotUse,
		PermReportsOwn,
		PermThemeSelf,
	},
}
