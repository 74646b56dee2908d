package auth

// FeatureFlags is the set of UI affordances derived from a role. It is
// advisory: views use it to decide what to render, enforcement stays with the
// backend and the route guard.
type FeatureFlags struct {
	ShowEmployees  bool `json:"showEmployees"`
	ShowAttendance bool `json:"showAttendance"`
	ShowLeave      bool `json:"showLeave"`
	ShowTasks      bool `json:"showTasks"`
	ShowReports    bool `json:"showReports"`
	ShowSettings   bool `json:"showSettings"`

	CanAddEmployee    bool `json:"canAddEmployee"`
	CanEditEmployee   bool `json:"canEditEmployee"`
	CanDeleteEmployee bool `json:"canDeleteEmployee"`
	CanEditOwnProfile bool `json:"canEditOwnProfile"`

	CanViewAllAttendance  bool `json:"canViewAllAttendance"`
	CanEditAttendance     bool `json:"canEditAttendance"`
	CanExportAttendance   bool `json:"canExportAttendance"`
	CanViewTeamAttendance bool `json:"canViewTeamAttendance"`
	CanMarkOwnAttendance  bool `json:"canMarkOwnAttendance"`

	CanManageAllLeave     bool `json:"canManageAllLeave"`
	CanApproveRejectLeave bool `json:"canApproveRejectLeave"`
	CanApproveTeamLeave   bool `json:"canApproveTeamLeave"`
	CanApplyLeave         bool `json:"canApplyLeave"`

	CanConfigureChatbot bool `json:"canConfigureChatbot"`
	CanUseChatbot       bool `json:"canUseChatbot"`

	CanViewAllReports  bool `json:"canViewAllReports"`
	CanViewHRReports   bool `json:"canViewHRReports"`
	CanViewTeamReports bool `json:"canViewTeamReports"`
	CanViewOwnReports  bool `json:"canViewOwnReports"`

	CanChangeSystemTheme bool `json:"canChangeSystemTheme"`
	CanChangeHRTheme     bool `json:"canChangeHRTheme"`
	CanChangeSelfTheme   bool `json:"canChangeSelfTheme"`

	CanAccessDatabase    bool `json:"canAccessDatabase"`
	CanManageIntegration bool `json:"canManageIntegrations"`
	CanManageRoles       bool `json:"canManageRoles"`
	CanManageLeavePolicy bool `json:"canManageLeavePolicy"`
	CanManageWorkHours   bool `json:"canManageWorkingHours"`
}

// Features resolves the full affordance set for a role. Pure function of the
// role's capability table.
func Features(role Role) FeatureFlags {
	c := NewChecker(role)
	return FeatureFlags{
		ShowEmployees:  c.HasAny(PermEmployeeView, PermEmployeeAdd, PermEmployeeEdit),
		ShowAttendance: c.HasAny(PermAttendanceView, PermAttendanceViewTeam, PermAttendanceMarkOwn),
		ShowLeave:      c.HasAny(PermLeaveFullControl, PermLeaveApproveReject, PermLeaveApproveTeam, PermLeaveApply),
		ShowTasks:      c.HasAny(PermEmployeeView, PermReportsTeam, PermReportsOwn),
		ShowReports:    c.HasAny(PermReportsAll, PermReportsHR, PermReportsTeam, PermReportsOwn),
		ShowSettings:   c.HasAny(PermThemeSystem, PermThemeHR, PermThemeSelf),

		CanAddEmployee:    c.Has(PermEmployeeAdd),
		CanEditEmployee:   c.Has(PermEmployeeEdit),
		CanDeleteEmployee: c.Has(PermEmployeeDelete),
		CanEditOwnProfile: c.Has(PermEmployeeEditOwn),

		CanViewAllAttendance:  c.Has(PermAttendanceView),
		CanEditAttendance:     c.Has(PermAttendanceEdit),
		CanExportAttendance:   c.Has(PermAttendanceExport),
		CanViewTeamAttendance: c.Has(PermAttendanceViewTeam),
		CanMarkOwnAttendance:  c.Has(PermAttendanceMarkOwn),

		CanManageAllLeave:     c.Has(PermLeaveFullControl),
		CanApproveRejectLeave: c.Has(PermLeaveApproveReject),
		CanApproveTeamLeave:   c.Has(PermLeaveApproveTeam),
		CanApplyLeave:         c.Has(PermLeaveApply),

		CanConfigureChatbot: c.Has(PermChatbotConfigure),
		CanUseChatbot:       c.Has(PermChatbotUse),

		CanViewAllReports:  c.Has(PermReportsAll),
		CanViewHRReports:   c.Has(PermReportsHR),
		CanViewTeamReports: c.Has(PermReportsTeam),
		CanViewOwnReports:  c.Has(PermReportsOwn),

		CanChangeSystemTheme: c.Has(PermThemeSystem),
		CanChangeHRTheme:     c.Has(PermThemeHR),
		CanChangeSelfTheme:   c.Has(PermThemeSelf),

		CanAccessDatabase:    c.Has(PermSystemDatabase),
		CanManageIntegration: c.Has(PermSystemIntegrations),
		CanManageRoles:       c.Has(PermSystemRoles),
		CanManageLeavePolicy: c.Has(PermSystemLeavePolicy),
		CanManageWorkHours:   c.Has(PermSystemWorkingHours),
	}
}
